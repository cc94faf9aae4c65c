package diagram

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/drawspec/pkg/errors"
)

func TestValueJSON(t *testing.T) {
	tests := []struct {
		in   string
		want Value
	}{
		{`100`, "100"},
		{`2.5`, "2.5"},
		{`1e2`, "100"},
		{`1.5E1`, "15"},
		{`-0.25`, "-0.25"},
		{`"50mm"`, "50mm"},
		{`null`, ""},
	}
	for _, tt := range tests {
		var v Value
		if err := json.Unmarshal([]byte(tt.in), &v); err != nil {
			t.Fatalf("Unmarshal(%s) error = %v", tt.in, err)
		}
		if v != tt.want {
			t.Errorf("Unmarshal(%s) = %q, want %q", tt.in, v, tt.want)
		}
	}

	var v Value
	if err := json.Unmarshal([]byte(`true`), &v); err == nil {
		t.Error("expected error for boolean quantity")
	}
}

func TestValueTOML(t *testing.T) {
	var doc struct {
		A Value `toml:"a"`
		B Value `toml:"b"`
		C Value `toml:"c"`
	}
	if _, err := toml.Decode("a = 96\nb = 1.5\nc = \"2in\"\n", &doc); err != nil {
		t.Fatal(err)
	}
	if doc.A != "96" || doc.B != "1.5" || doc.C != "2in" {
		t.Errorf("got %+v", doc)
	}
}

func TestValueResolve(t *testing.T) {
	in, err := Value("96").Length("0")
	if err != nil || in != 1 {
		t.Errorf("Length(96) = %v, %v", in, err)
	}
	in, err = Value("").Length("2in")
	if err != nil || in != 2 {
		t.Errorf("Length(default) = %v, %v", in, err)
	}
	pt, err := Value("").Weight("1pt")
	if err != nil || pt != 1 {
		t.Errorf("Weight(default) = %v, %v", pt, err)
	}
	if _, err := Value("-1").Length("0"); !errors.Is(err, errors.ErrCodeInvalidQuantity) {
		t.Errorf("expected INVALID_QUANTITY, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	shapes := []Shape{{ID: "a"}, {ID: "b"}}
	tests := []struct {
		name     string
		doc      Document
		wantCode errors.Code
	}{
		{name: "valid", doc: Document{Shapes: shapes, Connectors: []Connector{{ID: "c", From: "a", To: "b"}}}},
		{name: "points", doc: Document{Connectors: []Connector{{ID: "c", Points: []Point{{"0", "0"}, {"1", "1"}}}}}},
		{
			name:     "duplicate shape",
			doc:      Document{Shapes: []Shape{{ID: "a"}, {ID: "a"}}},
			wantCode: errors.ErrCodeDuplicateShapeID,
		},
		{
			name:     "connector reuses shape id",
			doc:      Document{Shapes: shapes, Connectors: []Connector{{ID: "a", From: "a", To: "b"}}},
			wantCode: errors.ErrCodeDuplicateShapeID,
		},
		{
			name:     "empty id",
			doc:      Document{Shapes: []Shape{{ID: ""}}},
			wantCode: errors.ErrCodeInvalidDocument,
		},
		{
			name:     "half pair",
			doc:      Document{Shapes: shapes, Connectors: []Connector{{ID: "c", From: "a"}}},
			wantCode: errors.ErrCodeInvalidDocument,
		},
		{
			name:     "pair and points",
			doc:      Document{Shapes: shapes, Connectors: []Connector{{ID: "c", From: "a", To: "b", Points: []Point{{"0", "0"}, {"1", "1"}}}}},
			wantCode: errors.ErrCodeInvalidDocument,
		},
		{
			name:     "single point",
			doc:      Document{Connectors: []Connector{{ID: "c", Points: []Point{{"0", "0"}}}}},
			wantCode: errors.ErrCodeInvalidDocument,
		},
		{
			name:     "bad page name",
			doc:      Document{Page: Page{Name: "../etc"}},
			wantCode: errors.ErrCodeInvalidPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.doc.Validate()
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("Validate() error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	doc := Document{Connectors: []Connector{{ID: "keep"}, {}}}
	doc.Normalize()
	if doc.Connectors[0].ID != "keep" {
		t.Errorf("Normalize() changed explicit id to %q", doc.Connectors[0].ID)
	}
	if !strings.HasPrefix(doc.Connectors[1].ID, "connector-") {
		t.Errorf("Normalize() id = %q", doc.Connectors[1].ID)
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	build := func() Document {
		return Document{
			Page: Page{Name: "flow"},
			Connectors: []Connector{
				{From: "a", To: "b"},
				{From: "a", To: "b"},
				{From: "b", To: "c"},
			},
		}
	}
	first, second := build(), build()
	first.Normalize()
	second.Normalize()

	seen := map[string]bool{}
	for i := range first.Connectors {
		a, b := first.Connectors[i].ID, second.Connectors[i].ID
		if a != b {
			t.Errorf("connector %d: ids differ across runs: %q vs %q", i, a, b)
		}
		if seen[a] {
			t.Errorf("connector %d: duplicate generated id %q", i, a)
		}
		seen[a] = true
	}
	if err := first.Validate(); err != nil {
		t.Errorf("Validate() after Normalize() = %v", err)
	}
}

func TestSchemaDefaults(t *testing.T) {
	if SchemaV1.Convention().Anchor.String() != "top-left" || !SchemaV1.AutoFit() {
		t.Error("schema v1 should be top-left anchored with auto-fit")
	}
	if SchemaV2.Convention().Anchor.String() != "center" || SchemaV2.AutoFit() {
		t.Error("schema v2 should be center anchored without auto-fit")
	}
}
