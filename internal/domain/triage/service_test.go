package triage

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rsrujukan/hospital/internal/domain/audit"
)

// -- Mock Repository --

type mockRepo struct {
	events map[uuid.UUID]*Event
}

func newMockRepo() *mockRepo {
	return &mockRepo{events: make(map[uuid.UUID]*Event)}
}

func (m *mockRepo) Create(_ context.Context, e *Event) error {
	e.ID = uuid.New()
	e.CreatedAt = time.Now()
	m.events[e.ID] = e
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Event, error) {
	e, ok := m.events[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return e, nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Event, int, error) {
	var result []*Event
	for _, e := range m.events {
		result = append(result, e)
	}
	return result, len(result), nil
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*Event, int, error) {
	var result []*Event
	for _, e := range m.events {
		if e.PatientID == patientID {
			result = append(result, e)
		}
	}
	return result, len(result), nil
}

type mockAuditRepo struct {
	entries []*audit.Entry
}

func (m *mockAuditRepo) Create(_ context.Context, e *audit.Entry) error {
	m.entries = append(m.entries, e)
	return nil
}

func (m *mockAuditRepo) GetByID(_ context.Context, id uuid.UUID) (*audit.Entry, error) {
	return nil, fmt.Errorf("not found")
}

func (m *mockAuditRepo) List(_ context.Context, limit, offset int) ([]*audit.Entry, int, error) {
	return m.entries, len(m.entries), nil
}

func (m *mockAuditRepo) Search(_ context.Context, _ map[string]string, limit, offset int) ([]*audit.Entry, int, error) {
	return m.entries, len(m.entries), nil
}

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	rec := audit.NewRecorder(&mockAuditRepo{}, zerolog.Nop())
	return NewService(repo, rec), repo
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func vitals(pairs map[string]float64) map[string]*float64 {
	out := make(map[string]*float64, len(pairs))
	for k, v := range pairs {
		out[k] = floatPtr(v)
	}
	return out
}

// -- Tests --

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		gcs    *int
		vitals map[string]*float64
		want   bool
	}{
		{"no data", nil, nil, false},
		{"normal gcs", intPtr(15), nil, false},
		{"gcs at threshold", intPtr(8), nil, true},
		{"gcs below threshold", intPtr(3), nil, true},
		{"gcs just above threshold", intPtr(9), nil, false},
		{"normal spo2", nil, vitals(map[string]float64{"spo2": 98}), false},
		{"spo2 at boundary", nil, vitals(map[string]float64{"spo2": 90}), false},
		{"low spo2", nil, vitals(map[string]float64{"spo2": 85}), true},
		{"null spo2 reading", nil, map[string]*float64{"spo2": nil}, false},
		{"other vitals ignored", nil, vitals(map[string]float64{"nadi": 40, "temp": 41}), false},
		{"both critical", intPtr(6), vitals(map[string]float64{"spo2": 80}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.gcs, tt.vitals); got != tt.want {
				t.Errorf("Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCreateEvent_CriticalGrantsConsent(t *testing.T) {
	svc, repo := newTestService()

	e := &Event{
		PatientID:  uuid.New(),
		GCS:        intPtr(6),
		VitalSigns: vitals(map[string]float64{"spo2": 95}),
	}
	res, err := svc.CreateEvent(context.Background(), e)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !res.Critical {
		t.Error("expected critical result")
	}
	if !res.Consent {
		t.Error("expected consent to be granted automatically")
	}

	stored := repo.events[res.ID]
	if !stored.ConsentEmergencyProtocol {
		t.Error("expected stored event to carry consent")
	}
	found := false
	for _, f := range stored.CriticalFlags {
		if f == FlagAutoConsent {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %s flag, got %v", FlagAutoConsent, stored.CriticalFlags)
	}
}

func TestCreateEvent_CriticalWithPriorConsent(t *testing.T) {
	svc, repo := newTestService()

	e := &Event{
		PatientID:                uuid.New(),
		VitalSigns:               vitals(map[string]float64{"spo2": 82}),
		ConsentEmergencyProtocol: true,
	}
	res, err := svc.CreateEvent(context.Background(), e)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !res.Critical || !res.Consent {
		t.Errorf("expected critical with consent, got %+v", res)
	}

	// Consent was already given, so no auto-consent flag.
	stored := repo.events[res.ID]
	for _, f := range stored.CriticalFlags {
		if f == FlagAutoConsent {
			t.Error("did not expect auto-consent flag when consent was explicit")
		}
	}
}

func TestCreateEvent_NonCritical(t *testing.T) {
	svc, repo := newTestService()

	e := &Event{
		PatientID:  uuid.New(),
		GCS:        intPtr(15),
		VitalSigns: vitals(map[string]float64{"spo2": 99}),
	}
	res, err := svc.CreateEvent(context.Background(), e)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if res.Critical {
		t.Error("expected non-critical result")
	}
	if res.Consent {
		t.Error("expected consent to remain false")
	}
	if got := repo.events[res.ID]; got.ConsentEmergencyProtocol {
		t.Error("expected stored consent false")
	}
}

func TestCreateEvent_NullSpo2NotCritical(t *testing.T) {
	svc, repo := newTestService()

	// A monitor that could not take the reading reports spo2 as JSON null.
	// That must not read as spo2=0 and trigger the emergency protocol.
	body := fmt.Sprintf(`{"patient_id":%q,"vital_signs":{"spo2":null,"nadi":72}}`, uuid.New())
	var e Event
	if err := json.Unmarshal([]byte(body), &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if spo2, ok := e.VitalSigns["spo2"]; !ok || spo2 != nil {
		t.Fatalf("expected spo2 key present with nil value, got %v", e.VitalSigns)
	}

	res, err := svc.CreateEvent(context.Background(), &e)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if res.Critical {
		t.Error("expected non-critical result for null spo2")
	}
	if res.Consent {
		t.Error("expected no auto-granted consent for null spo2")
	}
	stored := repo.events[res.ID]
	if stored.ConsentEmergencyProtocol {
		t.Error("expected stored consent false")
	}
	for _, f := range stored.CriticalFlags {
		if f == FlagAutoConsent {
			t.Error("did not expect auto-consent flag for null spo2")
		}
	}
}

func TestCreateEvent_MissingPatient(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.CreateEvent(context.Background(), &Event{}); err == nil {
		t.Fatal("expected error for missing patient_id")
	}
}
