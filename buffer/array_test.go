package buffer_test

import (
	"errors"
	"testing"

	"github.com/momentics/parambuf/api"
	"github.com/momentics/parambuf/buffer"
	"github.com/momentics/parambuf/fake"
	"github.com/momentics/parambuf/param"
)

func newParam(name string, v any) *api.Parameter {
	return &api.Parameter{Name: name, Value: v, DbType: api.DbTypeInt}
}

func TestArrayBuffer_SentinelAfterView(t *testing.T) {
	fp := fake.NewRecordingPool(2)
	b, err := buffer.NewArrayBuffer(fp, param.NewFactory(), 3)
	if err != nil {
		t.Fatalf("NewArrayBuffer: %v", err)
	}
	rental := fp.Last()
	original := rental.Snapshot[1]

	if err := b.Append(newParam("@a", 1)); err != nil {
		t.Fatalf("Append: %v", err)
	}
	arr := b.Array()
	if len(arr) != 5 {
		t.Fatalf("expected backing array of 5, got %d", len(arr))
	}
	if arr[0].Name != "@a" {
		t.Errorf("expected @a at 0, got %s", arr[0].Name)
	}
	if arr[1] != nil {
		t.Errorf("expected nil sentinel at 1, got %v", arr[1])
	}

	// Idempotent view.
	_ = b.Array()
	if arr[1] != nil {
		t.Errorf("sentinel disappeared after second view")
	}

	// Next append writes the sentinel slot and moves the obligation forward.
	if err := b.Append(newParam("@b", 2)); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if arr[1].Name != "@b" {
		t.Errorf("expected @b at 1, got %v", arr[1])
	}
	if arr[2] != rental.Snapshot[2] {
		t.Errorf("slot 2 touched before view")
	}
	_ = b.Array()
	if arr[2] != nil {
		t.Errorf("expected sentinel at 2")
	}

	b.Dispose()
	if !rental.IntactFrom(2) {
		t.Errorf("foreign slots changed: %v", rental.Changed())
	}
	if rental.Final[1] == original {
		t.Errorf("slot 1 should hold the appended parameter, not the stale one")
	}
}

func TestArrayBuffer_NoSentinelWhenStorageExact(t *testing.T) {
	fp := fake.NewRecordingPool(0)
	b, err := buffer.NewArrayBuffer(fp, param.NewFactory(), 2)
	if err != nil {
		t.Fatalf("NewArrayBuffer: %v", err)
	}
	_ = b.Append(newParam("@a", 1))
	_ = b.Append(newParam("@b", 2))
	arr := b.Array()
	if len(arr) != 2 || arr[0] == nil || arr[1] == nil {
		t.Fatalf("unexpected array %v", arr)
	}
	b.Dispose()
	if fp.Returns() != 1 {
		t.Errorf("expected one return, got %d", fp.Returns())
	}
}

func TestArrayBuffer_EmptyViewShadowsSlotZero(t *testing.T) {
	fp := fake.NewRecordingPool(1)
	b, _ := buffer.NewArrayBuffer(fp, param.NewFactory(), 1)
	arr := b.Array()
	if arr[0] != nil {
		t.Errorf("expected sentinel at 0 for empty buffer")
	}
	b.Dispose()
	if changed := fp.Last().Changed(); len(changed) != 0 {
		t.Errorf("empty buffer changed slots %v", changed)
	}
}

func TestArrayBuffer_ResetRestoresShadow(t *testing.T) {
	fp := fake.NewRecordingPool(4)
	b, _ := buffer.NewArrayBuffer(fp, param.NewFactory(), 2)
	rental := fp.Last()

	_ = b.Append(newParam("@a", 1))
	arr := b.Array()
	b.Reset()
	if b.Len() != 0 {
		t.Errorf("expected length 0, got %d", b.Len())
	}
	if arr[1] != rental.Snapshot[1] {
		t.Errorf("reset did not restore shadowed slot")
	}
	_ = b.Array()
	if arr[0] != nil {
		t.Errorf("expected sentinel at 0 after reset")
	}
	b.Dispose()
	if !rental.IntactFrom(1) {
		t.Errorf("foreign slots changed: %v", rental.Changed())
	}
}

func TestArrayBuffer_AppendValueReusesSlotObject(t *testing.T) {
	fp := fake.NewRecordingPool(1)
	b, _ := buffer.NewArrayBuffer(fp, param.NewFactory(), 2)
	rental := fp.Last()
	_ = b.Array() // shadows slot 0

	if err := b.AppendValue("@id", 42, api.DbTypeInt, 4, api.DirectionInput); err != nil {
		t.Fatalf("AppendValue: %v", err)
	}
	arr := b.Array()
	if arr[0] != rental.Snapshot[0] {
		t.Errorf("factory should have reused the shadowed object")
	}
	if arr[0].Name != "@id" || arr[0].Value != 42 || arr[0].Size != 4 {
		t.Errorf("unexpected parameter %+v", *arr[0])
	}
	b.Dispose()
}

func TestArrayBuffer_CapacityExceeded(t *testing.T) {
	fp := fake.NewRecordingPool(3)
	b, _ := buffer.NewArrayBuffer(fp, param.NewFactory(), 1)
	defer b.Dispose()

	if err := b.Append(newParam("@a", 1)); err != nil {
		t.Fatalf("Append: %v", err)
	}
	_ = b.Array()
	err := b.Append(newParam("@b", 2))
	if !errors.Is(err, api.ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
	if err := b.AppendValue("@c", 3, api.DbTypeInt, 0, api.DirectionInput); !errors.Is(err, api.ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
	if b.Len() != 1 {
		t.Errorf("failed append changed length to %d", b.Len())
	}
	if arr := b.Array(); arr[1] != nil {
		t.Errorf("failed append disturbed the sentinel")
	}
}

func TestArrayBuffer_AppendNil(t *testing.T) {
	fp := fake.NewRecordingPool(1)
	b, _ := buffer.NewArrayBuffer(fp, param.NewFactory(), 2)
	defer b.Dispose()
	if err := b.Append(nil); !errors.Is(err, api.ErrValueIsNull) {
		t.Fatalf("expected ErrValueIsNull, got %v", err)
	}
	if b.Len() != 0 {
		t.Errorf("length changed on failed append")
	}
}
