package ward

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

func setupHandler(t *testing.T) (*Handler, *Service) {
	t.Helper()
	svc, _, _ := newTestService()
	return NewHandler(svc), svc
}

func TestHandler_Admit_FullRoomReturns409(t *testing.T) {
	h, svc := setupHandler(t)
	seedRoom(t, svc, "W-1", 1)

	e := echo.New()
	admit := func() (*httptest.ResponseRecorder, error) {
		body := `{"patient_id":"` + uuid.NewString() + `","room_code":"W-1"}`
		req := httptest.NewRequest(http.MethodPost, "/admissions", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		return rec, h.Admit(e.NewContext(req, rec))
	}

	rec, err := admit()
	if err != nil {
		t.Fatalf("first admit: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	_, err = admit()
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusConflict {
		t.Fatalf("expected 409 for full room, got %v", err)
	}
}

func TestHandler_Admit_UnknownRoomReturns404(t *testing.T) {
	h, _ := setupHandler(t)
	e := echo.New()

	body := `{"patient_id":"` + uuid.NewString() + `","room_code":"missing"}`
	req := httptest.NewRequest(http.MethodPost, "/admissions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := h.Admit(e.NewContext(req, rec))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown room, got %v", err)
	}
}

func TestHandler_Discharge_SecondCallReturns409(t *testing.T) {
	h, svc := setupHandler(t)
	seedRoom(t, svc, "W-2", 1)

	a := &Admission{PatientID: uuid.New(), RoomCode: "W-2"}
	if err := svc.Admit(context.Background(), a); err != nil {
		t.Fatalf("admit: %v", err)
	}

	e := echo.New()
	discharge := func() (*httptest.ResponseRecorder, error) {
		req := httptest.NewRequest(http.MethodPost, "/admissions/"+a.ID.String()+"/discharge", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(a.ID.String())
		return rec, h.Discharge(c)
	}

	rec, err := discharge()
	if err != nil {
		t.Fatalf("first discharge: %v", err)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("expected status ok, got %v", resp)
	}

	_, err = discharge()
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusConflict {
		t.Fatalf("expected 409 for double discharge, got %v", err)
	}
}

func TestHandler_Occupancy(t *testing.T) {
	h, svc := setupHandler(t)
	seedRoom(t, svc, "W-3", 2)
	if err := svc.Admit(context.Background(), &Admission{PatientID: uuid.New(), RoomCode: "W-3"}); err != nil {
		t.Fatalf("admit: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/dashboard/bor", nil)
	rec := httptest.NewRecorder()
	if err := h.Occupancy(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp struct {
		TotalBeds int     `json:"total_beds"`
		Occupied  int     `json:"occupied"`
		BOR       float64 `json:"bor"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.TotalBeds != 2 || resp.Occupied != 1 || resp.BOR != 50 {
		t.Errorf("unexpected report: %+v", resp)
	}
}

func TestHandler_GetRoomByCodeFallback(t *testing.T) {
	h, svc := setupHandler(t)
	seedRoom(t, svc, "ICU-1", 2)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/rooms/ICU-1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("ICU-1")

	if err := h.GetRoom(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var r Room
	if err := json.Unmarshal(rec.Body.Bytes(), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if r.Code != "ICU-1" {
		t.Errorf("expected room ICU-1, got %s", r.Code)
	}
}
