package history

import (
	"context"
	"testing"
)

func TestMemoryStore_ListAllNewestFirst(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	inputs := [][2]string{
		{"a", "x"},
		{"b", "y"},
		{"c", "z"},
	}
	for _, in := range inputs {
		if err := store.Append(ctx, in[0], in[1]); err != nil {
			t.Fatalf("append %q: %v", in[0], err)
		}
	}

	records, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	// Reverse insertion order.
	for i, want := range []string{"c", "b", "a"} {
		if records[i].Original != want {
			t.Fatalf("record %d: expected original %q, got %q", i, want, records[i].Original)
		}
	}
	for i := 1; i < len(records); i++ {
		if records[i].CreatedAt.After(records[i-1].CreatedAt) {
			t.Fatalf("records are not ordered by created_at descending")
		}
	}
}

func TestMemoryStore_RecordFields(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Append(ctx, "hello", "hola"); err != nil {
		t.Fatalf("append: %v", err)
	}
	records, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	record := records[0]
	if record.Original != "hello" || record.Translated != "hola" {
		t.Fatalf("unexpected record content: %+v", record)
	}
	if record.ID == "" {
		t.Fatal("store must assign an id")
	}
	if record.CreatedAt.IsZero() {
		t.Fatal("store must assign a timestamp")
	}
}

func TestMemoryStore_ListAllSkipsMalformedRecords(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Append(ctx, "hello", "hola"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.Append(ctx, "orphan", ""); err != nil {
		t.Fatalf("append malformed: %v", err)
	}
	if err := store.Append(ctx, "", "huérfano"); err != nil {
		t.Fatalf("append malformed: %v", err)
	}

	records, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("list must not fail on malformed records: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected malformed records to be excluded, got %d records", len(records))
	}
	if records[0].Original != "hello" {
		t.Fatalf("unexpected surviving record: %+v", records[0])
	}
}

func TestMemoryStore_ClearAllIsIdempotent(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	// Clearing an empty store succeeds.
	if err := store.ClearAll(ctx); err != nil {
		t.Fatalf("clear empty store: %v", err)
	}

	if err := store.Append(ctx, "a", "x"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.Append(ctx, "b", "y"); err != nil {
		t.Fatalf("append: %v", err)
	}

	if err := store.ClearAll(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	records, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("list after clear: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty history after clear, got %d records", len(records))
	}

	// Second clear in sequence never errors.
	if err := store.ClearAll(ctx); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}
