package store

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/drawspec/pkg/errors"
	"github.com/matzehuels/drawspec/pkg/geom"
	"github.com/matzehuels/drawspec/pkg/scene"
)

func testScene() *scene.Scene {
	return &scene.Scene{
		Page: scene.Page{Name: "flow", Width: 8.5, Height: 11},
		Ops: []scene.Op{
			scene.CreateRectangle{ID: "a", Rect: geom.RectFromCorner(0, 0, 1, 1)},
			scene.SetZOrder{Target: "a", Rank: 0},
		},
	}
}

func TestNewRecord(t *testing.T) {
	rec, err := NewRecord("flow", "abc", testScene())
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}
	if rec.ID == "" || rec.CreatedAt.IsZero() {
		t.Errorf("record = %+v, want id and timestamp", rec)
	}

	s, err := rec.Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff([]string{"a"}, s.Shapes()); diff != "" {
		t.Errorf("shapes mismatch (-want +got):\n%s", diff)
	}

	other, _ := NewRecord("flow", "abc", testScene())
	if other.ID == rec.ID {
		t.Error("records should get distinct ids")
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	defer st.Close(ctx)

	rec, err := NewRecord("flow", "abc", testScene())
	if err != nil {
		t.Fatal(err)
	}
	if err := st.Put(ctx, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := st.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if diff := cmp.Diff(rec, got); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}

	// Returned records are copies.
	got.Scene[0] = 'x'
	again, _ := st.Get(ctx, rec.ID)
	if again.Scene[0] == 'x' {
		t.Error("Get should return a copy of the scene bytes")
	}

	if err := st.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := st.Get(ctx, rec.ID); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get after Delete = %v, want NOT_FOUND", err)
	}
	if err := st.Delete(ctx, rec.ID); err != nil {
		t.Errorf("Delete of missing record: %v", err)
	}
}

func TestMemoryStoreFillsID(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	rec := &Record{DocHash: "abc", Scene: []byte(`{}`)}
	if err := st.Put(ctx, rec); err != nil {
		t.Fatal(err)
	}
	if rec.ID == "" {
		t.Error("Put should assign an id")
	}
	if st.Len() != 1 {
		t.Errorf("Len() = %d, want 1", st.Len())
	}
}

func TestNewMongoStoreRequiresURI(t *testing.T) {
	_, err := NewMongoStore(context.Background(), MongoConfig{})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}
