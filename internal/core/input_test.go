package core

import "testing"

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if !f.Empty() || f.Has(ActionConfirm) {
		t.Fatal("zero InputFrame should be empty")
	}

	f.Set(ActionConfirm)
	f.Set(ActionDeal)
	if !f.Has(ActionConfirm) || !f.Has(ActionDeal) {
		t.Error("Set actions should be reported by Has")
	}
	if f.Has(ActionNoDeal) {
		t.Error("Has(ActionNoDeal) = true, expected false")
	}

	f.Clear()
	if !f.Empty() {
		t.Errorf("after Clear, frame has %d actions", len(f.Actions))
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		a    Action
		want string
	}{
		{ActionConfirm, "Confirm"},
		{ActionDeal, "Deal"},
		{ActionNoDeal, "NoDeal"},
		{ActionCycle, "Cycle"},
		{Action(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.a.String(); got != tt.want {
			t.Errorf("Action(%d).String() = %q, want %q", tt.a, got, tt.want)
		}
	}
}
