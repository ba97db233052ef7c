package main

import (
	"testing"

	"github.com/rsrujukan/hospital/internal/platform/registry"
)

func TestRegisterEntityKinds(t *testing.T) {
	reg := registry.New()
	registerEntityKinds(reg)

	want := []string{
		"admission",
		"auditlog",
		"governmentreport",
		"insuranceclaim",
		"inventoryitem",
		"laborder",
		"labresult",
		"patient",
		"payrollrecord",
		"prescription",
		"procedure",
		"room",
		"shift",
		"staff",
		"triageevent",
	}

	got := reg.Kinds()
	if len(got) != len(want) {
		t.Fatalf("got %d kinds %v, want %d", len(got), got, len(want))
	}
	for i, k := range want {
		if got[i] != k {
			t.Errorf("kinds[%d] = %q, want %q", i, got[i], k)
		}
	}
}
