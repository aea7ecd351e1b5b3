package blob

import (
	"context"
	"path/filepath"
	"testing"
)

func TestOpenMemoryDriver(t *testing.T) {
	t.Setenv("DUKACORE_BLOB_DRIVER", "memory")
	store, err := Open(context.Background())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if store.Driver() != DriverMemory {
		t.Fatalf("driver %q, want memory", store.Driver())
	}
}

func TestOpenDefaultsToFilesystem(t *testing.T) {
	t.Setenv("DUKACORE_BLOB_DRIVER", "")
	t.Setenv("DUKACORE_BLOB_FS_ROOT", filepath.Join(t.TempDir(), "exports"))
	store, err := Open(context.Background())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if store.Driver() != DriverFilesystem {
		t.Fatalf("driver %q, want fs", store.Driver())
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DUKACORE_BLOB_DRIVER", "tape")
	if _, err := Open(context.Background()); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
