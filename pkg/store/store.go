// Package store persists compiled scenes so they can be fetched by id.
//
// Two backends implement [Store]:
//   - [MemoryStore]: in-process map for development and tests
//   - [MongoStore]: a MongoDB collection for multi-instance deployments
//
// # Usage
//
//	rec, err := store.NewRecord("flow", docHash, s)
//	if err != nil {
//	    return err
//	}
//	if err := st.Put(ctx, rec); err != nil {
//	    return err
//	}
//	rec, err = st.Get(ctx, rec.ID) // NOT_FOUND when missing
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/drawspec/pkg/errors"
	"github.com/matzehuels/drawspec/pkg/scene"
)

// Record is a stored scene. The scene is kept in its JSON encoding so
// every backend stores the same bytes.
type Record struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name,omitempty" bson:"name,omitempty"`
	DocHash   string    `json:"doc_hash" bson:"doc_hash"`
	Scene     []byte    `json:"-" bson:"scene"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// NewRecord encodes s into a record with a fresh id.
func NewRecord(name, docHash string, s *scene.Scene) (*Record, error) {
	data, err := scene.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode scene")
	}
	return &Record{
		ID:        uuid.NewString(),
		Name:      name,
		DocHash:   docHash,
		Scene:     data,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Decode returns the stored scene.
func (r *Record) Decode() (*scene.Scene, error) {
	s, err := scene.Unmarshal(r.Scene)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode stored scene %s", r.ID)
	}
	return s, nil
}

// Store is the interface for scene storage backends.
type Store interface {
	// Get retrieves a record by id. A missing record is a NOT_FOUND error.
	Get(ctx context.Context, id string) (*Record, error)

	// Put stores a record, replacing any record with the same id.
	// An empty id is filled in.
	Put(ctx context.Context, rec *Record) error

	// Delete removes a record. Deleting a missing record is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "scene %q not found", id)
}

func prepare(rec *Record) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
}
