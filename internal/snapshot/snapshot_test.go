package snapshot

import (
	"context"
	"errors"
	"testing"

	"boltstore/internal/domain"
)

func TestEncodeEmptyIsList(t *testing.T) {
	for _, lines := range [][]domain.CartLine{nil, {}} {
		data, err := Encode(lines)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		if string(data) != "[]" {
			t.Fatalf("expected [], got %s", data)
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	in := []domain.CartLine{
		{ProductID: "p1", Title: "Widget", UnitPrice: 9.99, ImageRef: "img1", Quantity: 2},
		{ProductID: "p2", Title: "Gadget", UnitPrice: 5, Quantity: 1},
	}
	data, err := Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d lines, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("line %d mismatch: %+v != %+v", i, out[i], in[i])
		}
	}
}

func TestDecodeCorruptPayload(t *testing.T) {
	for _, payload := range []string{"{broken", `{"items":1}`, `[{"quantity":"x"}]`} {
		_, err := Decode([]byte(payload))
		if !errors.Is(err, domain.ErrSnapshotCorrupt) {
			t.Fatalf("payload %q: expected ErrSnapshotCorrupt, got %v", payload, err)
		}
	}
}

func TestMemorySlotPresenceSemantics(t *testing.T) {
	ctx := context.Background()
	slots := NewMemory()
	slot := slots.For("a")

	if _, ok, err := slot.Read(ctx); ok || err != nil {
		t.Fatalf("fresh slot should be absent, ok=%v err=%v", ok, err)
	}

	if err := slot.Write(ctx, []byte("[]")); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, ok, err := slot.Read(ctx)
	if err != nil || !ok || string(data) != "[]" {
		t.Fatalf("expected persisted [], ok=%v err=%v data=%s", ok, err, data)
	}

	if err := slot.Erase(ctx); err != nil {
		t.Fatalf("erase: %v", err)
	}
	if _, ok, _ := slot.Read(ctx); ok {
		t.Fatalf("expected slot absent after erase")
	}

	// Slots are isolated per owner key.
	other := slots.For("b")
	if err := other.Write(ctx, []byte("x")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, ok, _ := slot.Read(ctx); ok {
		t.Fatalf("owner keys must not share slots")
	}
}
