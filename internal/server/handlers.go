package server

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/drawspec/pkg/buildinfo"
	"github.com/matzehuels/drawspec/pkg/cache"
	"github.com/matzehuels/drawspec/pkg/errors"
	dsio "github.com/matzehuels/drawspec/pkg/io"
	"github.com/matzehuels/drawspec/pkg/pipeline"
	"github.com/matzehuels/drawspec/pkg/render/sink"
	"github.com/matzehuels/drawspec/pkg/store"
)

// warningsHeader carries the number of style fallbacks on render responses.
const warningsHeader = "X-Drawspec-Warnings"

// contentTypes maps output formats to media types.
var contentTypes = map[string]string{
	sink.FormatSVG:  "image/svg+xml",
	sink.FormatPNG:  "image/png",
	sink.FormatPDF:  "application/pdf",
	sink.FormatDOT:  "text/vnd.graphviz",
	sink.FormatJSON: "application/json",
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

type createSceneResponse struct {
	ID       string `json:"id"`
	DocHash  string `json:"doc_hash"`
	Ops      int    `json:"ops"`
	Warnings int    `json:"warnings"`
}

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	raw, opts, err := s.readRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	sc, err := s.runner.Compile(r.Context(), raw, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := errors.ValidateFormat(format, sink.Formats); err != nil {
		s.writeError(w, err)
		return
	}
	raw, opts, err := s.readRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	opts.Formats = []string{format}

	res, err := s.runner.Execute(r.Context(), raw, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set(warningsHeader, strconv.Itoa(len(res.Scene.Warnings)))
	writeBytes(w, format, res.Artifacts[format])
}

func (s *Server) handleCreateScene(w http.ResponseWriter, r *http.Request) {
	raw, opts, err := s.readRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	sc, err := s.runner.Compile(r.Context(), raw, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	rec, err := store.NewRecord(sc.Page.Name, cache.Hash(raw), sc)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.store.Put(r.Context(), rec); err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Location", "/v1/scenes/"+rec.ID)
	writeJSON(w, http.StatusCreated, createSceneResponse{
		ID:       rec.ID,
		DocHash:  rec.DocHash,
		Ops:      len(sc.Ops),
		Warnings: len(sc.Warnings),
	})
}

func (s *Server) handleGetScene(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" || format == sink.FormatJSON {
		writeBytes(w, sink.FormatJSON, rec.Scene)
		return
	}
	if err := errors.ValidateFormat(format, sink.Formats); err != nil {
		s.writeError(w, err)
		return
	}

	sc, err := rec.Decode()
	if err != nil {
		s.writeError(w, err)
		return
	}
	opts, err := s.options(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	opts.Formats = []string{format}
	artifacts, err := s.runner.Render(r.Context(), sc, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeBytes(w, format, artifacts[format])
}

// readRequest reads the document body and the request options.
func (s *Server) readRequest(r *http.Request) ([]byte, pipeline.Options, error) {
	opts, err := s.options(r)
	if err != nil {
		return nil, opts, err
	}
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, opts, err
		}
		return nil, opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body")
	}
	if len(raw) == 0 {
		return nil, opts, errors.New(errors.ErrCodeInvalidDocument, "empty request body")
	}
	return raw, opts, nil
}

// options merges query parameters over the server defaults.
func (s *Server) options(r *http.Request) (pipeline.Options, error) {
	opts := s.defaults
	opts.Formats = append([]string(nil), s.defaults.Formats...)
	q := r.URL.Query()

	if mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err == nil && mt == "application/toml" {
		opts.DocFormat = dsio.FormatTOML
	}
	if f := q.Get("doc_format"); f != "" {
		opts.DocFormat = dsio.Format(f)
	}
	if v := q.Get("margin"); v != "" {
		m, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "margin %q is not a number", v)
		}
		opts.Margin = &m
	}
	if v := q.Get("auto_fit"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "auto_fit %q is not a boolean", v)
		}
		opts.AutoFit = &b
	}
	if v := q.Get("anchor"); v != "" {
		opts.Anchor = v
	}
	if v := q.Get("y_axis"); v != "" {
		opts.YAxis = v
	}
	if v := q.Get("scale"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "scale %q is not a number", v)
		}
		opts.Scale = f
	}
	if v := q.Get("title"); v != "" {
		opts.Title, _ = strconv.ParseBool(v)
	}
	return opts, nil
}

// statusFor maps an error to an HTTP status.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidQuantity, errors.ErrCodeInvalidColor,
		errors.ErrCodeInvalidDocument, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeUnknownShapeReference, errors.ErrCodeDuplicateShapeID:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeBytes(w http.ResponseWriter, format string, data []byte) {
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
