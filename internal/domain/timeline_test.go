package domain

import "testing"

func TestDemandEvent_Thermal(t *testing.T) {
	cases := []struct {
		kind    string
		thermal bool
	}{
		{EventSink, true},
		{EventBath, true},
		{EventShower, true},
		{EventDishwasher, false},
		{EventWashingMachine, false},
	}
	for _, c := range cases {
		e := DemandEvent{Kind: c.kind}
		if got := e.Thermal(); got != c.thermal {
			t.Errorf("%s: Thermal() = %v, want %v", c.kind, got, c.thermal)
		}
	}
}

func TestDemandEvent_ActiveAt(t *testing.T) {
	e := DemandEvent{Kind: EventSink, StartMin: 420, EndMin: 440}

	if !e.ActiveAt(420) {
		t.Error("start minute should be inside the window")
	}
	if !e.ActiveAt(439) {
		t.Error("last minute before the end should be inside the window")
	}
	if e.ActiveAt(440) {
		t.Error("end minute is exclusive")
	}
	if e.ActiveAt(419) {
		t.Error("minute before the start should be outside the window")
	}
}
