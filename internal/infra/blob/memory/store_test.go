package memory

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"dukacore/internal/blob/core"
)

func TestStorePutGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := New()
	if store.Driver() != core.DriverMemory {
		t.Fatalf("driver %q", store.Driver())
	}

	info, err := store.Put(ctx, "exports/products.csv", strings.NewReader("a,b\n1,2\n"), core.PutOptions{
		ContentType: "text/csv",
		Metadata:    map[string]string{"rows": "1"},
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Size != 8 || info.ContentType != "text/csv" {
		t.Fatalf("info %+v", info)
	}

	got, rc, err := store.Get(ctx, "exports/products.csv")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer rc.Close()
	body, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(body, []byte("a,b\n1,2\n")) {
		t.Fatalf("body %q", body)
	}
	if got.Metadata["rows"] != "1" {
		t.Fatalf("metadata %v", got.Metadata)
	}
}

func TestStorePutOverwrites(t *testing.T) {
	ctx := context.Background()
	store := New()
	if _, err := store.Put(ctx, "k", strings.NewReader("first"), core.PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := store.Put(ctx, "k", strings.NewReader("second"), core.PutOptions{}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	_, rc, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	if string(body) != "second" {
		t.Fatalf("body %q, want second", body)
	}
}

func TestStoreMissingKey(t *testing.T) {
	ctx := context.Background()
	store := New()
	if _, _, err := store.Get(ctx, "absent"); err == nil {
		t.Fatal("expected error for missing key")
	}
	if _, err := store.Head(ctx, "absent"); err == nil {
		t.Fatal("expected error for missing key")
	}
	removed, err := store.Delete(ctx, "absent")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if removed {
		t.Fatal("delete reported removal of a missing key")
	}
}

func TestStoreListByPrefix(t *testing.T) {
	ctx := context.Background()
	store := New()
	for _, key := range []string{"exports/a.csv", "exports/b.csv", "tmp/c.csv"} {
		if _, err := store.Put(ctx, key, strings.NewReader("x"), core.PutOptions{}); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}
	infos, err := store.List(ctx, "exports/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("got %d infos, want 2", len(infos))
	}
	if infos[0].Key != "exports/a.csv" || infos[1].Key != "exports/b.csv" {
		t.Fatalf("keys %q, %q", infos[0].Key, infos[1].Key)
	}
}
