package meta

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileKVRoundTrip(t *testing.T) {
	kv := NewFileKV(filepath.Join(t.TempDir(), "store"))

	if _, found, err := kv.Get("missing"); err != nil || found {
		t.Fatalf("missing key: found=%v err=%v", found, err)
	}

	if err := kv.Set("currency", []byte(`{"balance":42}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	blob, found, err := kv.Get("currency")
	if err != nil || !found {
		t.Fatalf("get after set: found=%v err=%v", found, err)
	}
	if string(blob) != `{"balance":42}` {
		t.Fatalf("blob mismatch: %s", blob)
	}

	// no temp file may survive a completed write
	if _, err := os.Stat(filepath.Join(kv.Dir, "currency.json.tmp")); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
}

func TestFileKVOverwrites(t *testing.T) {
	kv := NewFileKV(t.TempDir())

	if err := kv.Set("game-stats", []byte(`{"kills":1}`)); err != nil {
		t.Fatal(err)
	}
	if err := kv.Set("game-stats", []byte(`{"kills":2}`)); err != nil {
		t.Fatal(err)
	}

	blob, found, err := kv.Get("game-stats")
	if err != nil || !found {
		t.Fatalf("get: found=%v err=%v", found, err)
	}
	if string(blob) != `{"kills":2}` {
		t.Fatalf("overwrite lost: %s", blob)
	}
}
