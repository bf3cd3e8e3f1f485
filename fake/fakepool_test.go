package fake_test

import (
	"testing"

	"github.com/momentics/parambuf/api"
	"github.com/momentics/parambuf/fake"
)

func TestRecordingPool(t *testing.T) {
	p := fake.NewRecordingPool(2)
	s := p.Rent(3)
	if len(s) != 5 {
		t.Fatalf("expected 5 slots, got %d", len(s))
	}
	for i, v := range s {
		if v == nil {
			t.Fatalf("slot %d not pre-filled", i)
		}
	}
	s[0] = &api.Parameter{Name: "@mine"}
	p.Return(s)
	p.Return(s)
	p.Return(make([]*api.Parameter, 5))

	r := p.Last()
	if got := r.Changed(); len(got) != 1 || got[0] != 0 {
		t.Errorf("Changed() = %v", got)
	}
	if !r.IntactFrom(1) || r.IntactFrom(0) {
		t.Errorf("IntactFrom mismatch")
	}
	if p.Rents() != 1 || p.Returns() != 3 || p.DoubleReturns() != 1 || p.ForeignReturns() != 1 {
		t.Errorf("rents=%d returns=%d doubles=%d foreign=%d",
			p.Rents(), p.Returns(), p.DoubleReturns(), p.ForeignReturns())
	}
	if p.Outstanding() != 0 {
		t.Errorf("expected no outstanding rentals")
	}

	short := fake.NewRecordingPool(-3)
	if got := short.Rent(2); len(got) != 0 {
		t.Errorf("expected empty undersized array, got %d", len(got))
	}
}
