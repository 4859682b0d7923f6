package store

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"dbu-go/internal/dbu"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("put then get round-trips bytes", func(t *testing.T) {
		m := NewMemoryStore()
		data := "archive bytes"

		if err := m.Put(ctx, "2024-06-01/2024-06-01.zip", strings.NewReader(data), int64(len(data))); err != nil {
			t.Fatalf("Put() error = %v", err)
		}

		var buf bytes.Buffer
		if err := m.Get(ctx, "2024-06-01/2024-06-01.zip", &buf); err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if buf.String() != data {
			t.Errorf("Get() = %q, want %q", buf.String(), data)
		}
	})

	t.Run("put overwrites an existing object", func(t *testing.T) {
		m := NewMemoryStore()
		if err := m.Put(ctx, "k", strings.NewReader("old"), 3); err != nil {
			t.Fatal(err)
		}
		if err := m.Put(ctx, "k", strings.NewReader("newer"), 5); err != nil {
			t.Fatal(err)
		}

		var buf bytes.Buffer
		if err := m.Get(ctx, "k", &buf); err != nil {
			t.Fatal(err)
		}
		if buf.String() != "newer" {
			t.Errorf("Get() = %q, want %q", buf.String(), "newer")
		}
		if m.Len() != 1 {
			t.Errorf("Len() = %d, want 1", m.Len())
		}
	})

	t.Run("size mismatch is a TransferError", func(t *testing.T) {
		m := NewMemoryStore()
		err := m.Put(ctx, "k", strings.NewReader("abc"), 99)
		var xferErr *dbu.TransferError
		if !errors.As(err, &xferErr) {
			t.Fatalf("Put() error = %T, want *TransferError", err)
		}
	})

	t.Run("get of a missing key is a TransferError", func(t *testing.T) {
		m := NewMemoryStore()
		var buf bytes.Buffer
		err := m.Get(ctx, "absent", &buf)
		var xferErr *dbu.TransferError
		if !errors.As(err, &xferErr) {
			t.Fatalf("Get() error = %T, want *TransferError", err)
		}
		if xferErr.Key != "absent" {
			t.Errorf("TransferError.Key = %q, want %q", xferErr.Key, "absent")
		}
	})
}
