package pharmacy

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func TestHandler_Validate(t *testing.T) {
	svc, _, _ := newTestService()
	h := NewHandler(svc)
	stockItem(t, svc, "paracetamol", 10)

	e := echo.New()
	body := `{"prescription":{"patient_id":"` + uuid.NewString() + `","items":[{"drug":"paracetamol"},{"drug":"obat-langka"}]}}`
	req := httptest.NewRequest(http.MethodPost, "/pharmacy/validate", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Validate(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var result ValidationResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if result.Status != StatusOutOfStock {
		t.Errorf("expected out_of_stock_external, got %s", result.Status)
	}
	if len(result.OutOfStock) != 1 || result.OutOfStock[0] != "obat-langka" {
		t.Errorf("unexpected out_of_stock: %v", result.OutOfStock)
	}
}

func TestHandler_Validate_AppliesToStored(t *testing.T) {
	svc, _, rx := newTestService()
	h := NewHandler(svc)
	stockItem(t, svc, "amoxicillin", 3)

	p := &Prescription{PatientID: uuid.New(), Items: []PrescriptionItem{{Drug: "amoxicillin"}}}
	if err := svc.CreatePrescription(context.Background(), p); err != nil {
		t.Fatalf("create: %v", err)
	}

	e := echo.New()
	body := `{"prescription":{"items":[{"drug":"amoxicillin"}]},"prescription_id":"` + p.ID.String() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/pharmacy/validate", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Validate(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rx.prescriptions[p.ID].Status != StatusValidated {
		t.Errorf("expected stored prescription validated, got %s", rx.prescriptions[p.ID].Status)
	}
}

func TestHandler_TransitionStatus_Conflict(t *testing.T) {
	svc, _, _ := newTestService()
	h := NewHandler(svc)

	p := &Prescription{PatientID: uuid.New()}
	if err := svc.CreatePrescription(context.Background(), p); err != nil {
		t.Fatalf("create: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/prescriptions/"+p.ID.String()+"/status", strings.NewReader(`{"status":"dispensed"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(p.ID.String())

	err := h.TransitionStatus(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusConflict {
		t.Fatalf("expected 409 for draft -> dispensed, got %v", err)
	}
}
