package param_test

import (
	"testing"

	"github.com/momentics/parambuf/api"
	"github.com/momentics/parambuf/param"
)

func TestResetOrBuild_ReusesExisting(t *testing.T) {
	f := param.NewFactory()
	existing := &api.Parameter{Name: "@old", Value: "stale", Size: 99, Direction: api.DirectionReturnValue}
	got := f.ResetOrBuild(existing, "@id", 5, api.DbTypeBigInt, 8, api.DirectionInputOutput)
	if got != existing {
		t.Fatalf("expected existing object to be reused")
	}
	want := api.Parameter{Name: "@id", Value: 5, DbType: api.DbTypeBigInt, Size: 8, Direction: api.DirectionInputOutput}
	if *got != want {
		t.Errorf("got %+v, want %+v", *got, want)
	}
}

func TestResetOrBuild_BuildsNew(t *testing.T) {
	f := param.NewFactory()
	p := f.Build("@name", nil, api.DbTypeNVarChar, 50, api.DirectionOutput)
	if p == nil || p.Name != "@name" || p.Value != nil || p.Size != 50 || p.Direction != api.DirectionOutput {
		t.Errorf("unexpected parameter %+v", p)
	}
}

func TestRelease(t *testing.T) {
	f := param.NewFactory()
	p := f.Build("@a", 1, api.DbTypeInt, 4, api.DirectionInput)
	f.Release(p)
	if p.Name != "" || p.Value != nil {
		t.Errorf("released parameter not cleared: %+v", *p)
	}
	f.Release(nil)

	plain := param.NewFactoryWithPool(nil)
	q := plain.Build("@b", 2, api.DbTypeInt, 4, api.DirectionInput)
	if q.Name != "@b" {
		t.Errorf("unexpected parameter %+v", *q)
	}
	plain.Release(q)
}
