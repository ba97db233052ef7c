package registry

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRegister_SortedAndDeduplicated(t *testing.T) {
	r := New()
	r.Register("room", "patient")
	r.Register("admission", "patient", "")

	kinds := r.Kinds()
	want := []string{"admission", "patient", "room"}
	if len(kinds) != len(want) {
		t.Fatalf("expected %d kinds, got %d: %v", len(want), len(kinds), kinds)
	}
	for i, k := range want {
		if kinds[i] != k {
			t.Errorf("kinds[%d] = %q, want %q", i, kinds[i], k)
		}
	}
}

func TestSchemaHandler(t *testing.T) {
	r := New()
	r.Register("patient", "admission")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/schema", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := r.SchemaHandler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Collections []string `json:"collections"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(body.Collections) != 2 {
		t.Fatalf("expected 2 collections, got %v", body.Collections)
	}
	if body.Collections[0] != "admission" || body.Collections[1] != "patient" {
		t.Errorf("expected sorted collections, got %v", body.Collections)
	}
}
