package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/drawspec/pkg/geom"
	dsio "github.com/matzehuels/drawspec/pkg/io"
	"github.com/matzehuels/drawspec/pkg/scene"
	"github.com/matzehuels/drawspec/pkg/style"
	"github.com/matzehuels/drawspec/pkg/units"
)

const testDoc = `{
  "page": {"name": "flow"},
  "shapes": [
    {"id": "a", "x": 0, "y": 0, "width": 96, "height": 48, "text": "A"},
    {"id": "b", "x": 192, "y": 0, "width": 96, "height": 48, "fill": "#00FF00"}
  ],
  "connectors": [{"id": "ab", "from": "a", "to": "b", "arrow": "arrow"}]
}`

const fallbackDoc = `{
  "shapes": [{"id": "a", "x": 0, "y": 0, "width": 10, "height": 10, "pattern": "wavy"}]
}`

const badDoc = `{
  "shapes": [{"id": "a", "x": 0, "y": 0, "width": 10, "height": 10}],
  "connectors": [{"from": "a", "to": "ghost"}]
}`

// setup writes a config without a persistent cache and returns the temp
// directory and the config path.
func setup(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.toml")
	content := fmt.Sprintf("[cache]\nbackend = \"none\"\ndir = %q\n", filepath.Join(dir, "cache"))
	if err := os.WriteFile(cfg, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir, cfg
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := New(io.Discard, LogInfo).RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	var got []string
	for _, cmd := range root.Commands() {
		got = append(got, cmd.Name())
	}
	want := []string{"cache", "compile", "completion", "inspect", "render", "serve", "validate"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("subcommands mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"svg", []string{"svg"}},
		{"svg, png ,pdf", []string{"svg", "png", "pdf"}},
		{"svg,,dot", []string{"svg", "dot"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, parseFormats(tt.in)); diff != "" {
				t.Errorf("parseFormats(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		format string
		single bool
		want   string
	}{
		{"derived from input", "", "docs/flow.json", "svg", true, "docs/flow.svg"},
		{"stdin", "", "-", "png", true, "drawspec.png"},
		{"explicit single", "out/diagram.svg", "flow.json", "svg", true, "out/diagram.svg"},
		{"explicit multi strips format ext", "out/diagram.svg", "flow.json", "pdf", false, "out/diagram.pdf"},
		{"explicit multi keeps other ext", "out/diagram.v2", "flow.json", "dot", false, "out/diagram.v2.dot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.output, tt.input, tt.format, tt.single); got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompileCommand(t *testing.T) {
	dir, cfg := setup(t)
	first := writeFile(t, dir, "flow.json", testDoc)
	second := writeFile(t, dir, "warn.json", fallbackDoc)

	if _, err := execute(t, "--config", cfg, "compile", first, second); err != nil {
		t.Fatalf("compile: %v", err)
	}

	tests := []struct {
		path         string
		wantShapes   []string
		wantWarnings int
	}{
		{filepath.Join(dir, "flow.scene.json"), []string{"a", "b"}, 0},
		{filepath.Join(dir, "warn.scene.json"), []string{"a"}, 1},
	}
	for _, tt := range tests {
		t.Run(filepath.Base(tt.path), func(t *testing.T) {
			f, err := os.Open(tt.path)
			if err != nil {
				t.Fatalf("scene not written: %v", err)
			}
			defer f.Close()
			s, err := dsio.ReadScene(f)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.wantShapes, s.Shapes()); diff != "" {
				t.Errorf("shapes mismatch (-want +got):\n%s", diff)
			}
			if len(s.Warnings) != tt.wantWarnings {
				t.Errorf("warnings = %d, want %d", len(s.Warnings), tt.wantWarnings)
			}
		})
	}
}

func TestCompileCommandErrors(t *testing.T) {
	dir, cfg := setup(t)
	good := writeFile(t, dir, "good.json", testDoc)
	bad := writeFile(t, dir, "bad.json", badDoc)
	yaml := writeFile(t, dir, "doc.yaml", testDoc)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"one failure", []string{"compile", good, bad}, "1 of 2 documents failed"},
		{"output with several inputs", []string{"compile", "-o", "x.json", good, bad}, "--output requires a single input"},
		{"unknown extension", []string{"compile", yaml}, "unsupported document extension"},
		{"no inputs", []string{"compile"}, "requires at least 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, append([]string{"--config", cfg}, tt.args...)...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestValidateCommand(t *testing.T) {
	dir, cfg := setup(t)
	good := writeFile(t, dir, "good.json", testDoc)
	warn := writeFile(t, dir, "warn.json", fallbackDoc)
	bad := writeFile(t, dir, "bad.json", badDoc)

	if _, err := execute(t, "--config", cfg, "validate", good, warn); err != nil {
		t.Errorf("validate with fallbacks only: %v", err)
	}
	_, err := execute(t, "--config", cfg, "validate", good, bad)
	if err == nil || !strings.Contains(err.Error(), "1 of 2 documents invalid") {
		t.Errorf("err = %v, want 1 of 2 documents invalid", err)
	}
	_, err = execute(t, "--config", cfg, "validate", "--anchor", "middle", good)
	if err == nil {
		t.Error("validate accepted an unknown anchor")
	}
}

func TestRenderCommand(t *testing.T) {
	dir, cfg := setup(t)
	input := writeFile(t, dir, "flow.json", testDoc)

	if _, err := execute(t, "--config", cfg, "render", input, "-f", "svg,dot"); err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, name := range []string{"flow.svg", "flow.dot"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}

	_, err := execute(t, "--config", cfg, "render", input, "-f", "gif")
	if err == nil || !strings.Contains(err.Error(), "invalid format") {
		t.Errorf("err = %v, want invalid format", err)
	}
}

func TestInspectPlain(t *testing.T) {
	dir, cfg := setup(t)
	input := writeFile(t, dir, "flow.json", testDoc)

	out, err := execute(t, "--config", cfg, "inspect", "--plain", input)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	for _, want := range []string{"create_rectangle", "create_polyline", "set_fill_style", "ab"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestCachePath(t *testing.T) {
	dir, cfg := setup(t)

	out, err := execute(t, "--config", cfg, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := strings.TrimSpace(out), filepath.Join(dir, "cache"); got != want {
		t.Errorf("cache path = %q, want %q", got, want)
	}
}

func TestCompletionCommand(t *testing.T) {
	_, cfg := setup(t)

	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, err := execute(t, "--config", cfg, "completion", shell)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out, "drawspec") {
				t.Errorf("%s completion does not mention drawspec", shell)
			}
		})
	}

	if _, err := execute(t, "--config", cfg, "completion", "tcsh"); err == nil {
		t.Error("completion tcsh: expected error")
	}
}

func TestCompleteFormats(t *testing.T) {
	tests := []struct {
		in    string
		first string
	}{
		{"", "svg"},
		{"s", "svg"},
		{"svg,", "svg,svg"},
		{"svg,png,p", "svg,png,svg"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, _ := completeFormats(nil, nil, tt.in)
			if len(got) != 5 {
				t.Fatalf("completeFormats(%q) returned %d values, want 5", tt.in, len(got))
			}
			if got[0] != tt.first {
				t.Errorf("completeFormats(%q)[0] = %q, want %q", tt.in, got[0], tt.first)
			}
		})
	}
}

func TestConfigErrors(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "config.toml", "[cache]\nbackend = \"memcached\"\n")

	if _, err := execute(t, "--config", bad, "cache", "path"); err == nil {
		t.Error("invalid cache backend accepted")
	}
	if _, err := execute(t, "--config", filepath.Join(dir, "missing.toml"), "cache", "path"); err == nil {
		t.Error("missing explicit config accepted")
	}
}

func TestDescribeOp(t *testing.T) {
	red := units.Color{R: 255}
	tests := []struct {
		name        string
		op          scene.Op
		wantTarget  string
		wantSummary string
	}{
		{
			name:        "rectangle",
			op:          scene.CreateRectangle{ID: "a", Rect: geom.Rect{Min: geom.Point{X: 1, Y: 2}, Max: geom.Point{X: 3, Y: 3}}},
			wantTarget:  "a",
			wantSummary: "1,2 2x1 in",
		},
		{
			name:        "rotated rectangle",
			op:          scene.CreateRectangle{ID: "a", Rect: geom.Rect{Max: geom.Point{X: 1, Y: 1}}, RotationDeg: 45},
			wantTarget:  "a",
			wantSummary: "0,0 1x1 in rot 45.0°",
		},
		{
			name:        "polyline",
			op:          scene.CreatePolyline{ID: "ab", Points: []geom.Point{{}, {X: 1}, {X: 1, Y: 1}}},
			wantTarget:  "ab",
			wantSummary: "3 points",
		},
		{
			name:        "hidden label",
			op:          scene.SetTextLabel{Target: "a", Text: "A", Color: red, SizePt: 12, Transparency: style.Invisible},
			wantTarget:  "a",
			wantSummary: `"A" #ff0000 12pt hidden`,
		},
		{
			name:        "solid fill",
			op:          scene.SetFillStyle{Target: "b", Fill: scene.FillSolid, Color: red},
			wantTarget:  "b",
			wantSummary: "solid #ff0000",
		},
		{
			name: "gradient fill",
			op: scene.SetFillStyle{Target: "b", Fill: scene.FillGradient, Stops: []scene.Stop{
				{Offset: 0, Color: red}, {Offset: 1, Color: units.White},
			}},
			wantTarget:  "b",
			wantSummary: "gradient #ff0000 → #ffffff",
		},
		{
			name:        "stroke with arrow",
			op:          scene.SetStrokeStyle{Target: "ab", Color: units.Black, WeightPt: 1, Pattern: int(style.PatternDashed), EndArrow: int(style.ArrowArrow)},
			wantTarget:  "ab",
			wantSummary: "#000000 1pt dashed arrow end",
		},
		{
			name:        "z order",
			op:          scene.SetZOrder{Target: "a", Rank: 2},
			wantTarget:  "a",
			wantSummary: "rank 2",
		},
		{
			name:        "resize",
			op:          scene.ResizeCanvas{Width: 4, Height: 2.5, Origin: geom.Point{X: -0.5, Y: 0}},
			wantSummary: "4x2.5 in origin -0.5,0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, summary := describeOp(tt.op)
			if target != tt.wantTarget {
				t.Errorf("target = %q, want %q", target, tt.wantTarget)
			}
			if summary != tt.wantSummary {
				t.Errorf("summary = %q, want %q", summary, tt.wantSummary)
			}
		})
	}
}

func testScene(n int) *scene.Scene {
	s := &scene.Scene{Page: scene.Page{Name: "browse"}}
	for i := 0; i < n; i++ {
		s.Ops = append(s.Ops, scene.SetZOrder{Target: fmt.Sprintf("s%d", i), Rank: i})
	}
	return s
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func TestOpsModelNavigation(t *testing.T) {
	tests := []struct {
		name       string
		keys       []string
		wantCursor int
		wantOffset int
	}{
		{"start", nil, 0, 0},
		{"down twice", []string{"down", "j"}, 2, 0},
		{"clamped at top", []string{"up", "k"}, 0, 0},
		{"end scrolls", []string{"G"}, 29, 15},
		{"end then home", []string{"G", "g"}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m tea.Model = newOpsModel(testScene(30))
			for _, k := range tt.keys {
				m, _ = m.Update(keyMsg(k))
			}
			om := m.(opsModel)
			if om.cursor != tt.wantCursor || om.offset != tt.wantOffset {
				t.Errorf("cursor, offset = %d, %d, want %d, %d", om.cursor, om.offset, tt.wantCursor, tt.wantOffset)
			}
		})
	}
}

func TestOpsModelQuitAndDetail(t *testing.T) {
	m := newOpsModel(testScene(3))

	if _, cmd := m.Update(keyMsg("q")); cmd == nil {
		t.Error("q should return a quit command")
	}

	next, _ := m.Update(keyMsg("enter"))
	view := next.View()
	if !strings.Contains(view, "browse") {
		t.Error("view missing page name")
	}
	if !strings.Contains(view, `"rank"`) {
		t.Error("detail pane missing op JSON")
	}
}

func TestOpsModelEmpty(t *testing.T) {
	m := newOpsModel(&scene.Scene{})
	m.move(1)
	if !strings.Contains(m.View(), "no operations") {
		t.Error("empty scene view should say no operations")
	}
}
