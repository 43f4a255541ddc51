package scene

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "live.toml")
	write := func(n int) {
		t.Helper()
		data := "name = \"live\"\n"
		for i := 0; i < n; i++ {
			data += "[[elements]]\nid = \"e" + string(rune('a'+i)) + "\"\nx = 0\ny = 0\nw = 1\nh = 1\n"
		}
		if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	write(1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reloads, err := Watch(ctx, path, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}

	write(2)

	deadline := time.After(5 * time.Second)
	for {
		select {
		case r, ok := <-reloads:
			if !ok {
				t.Fatal("reload channel closed early")
			}
			if r.Err != nil {
				continue
			}
			if len(r.Spec.Elements) == 2 {
				cancel()
				for range reloads {
				}
				return
			}
		case <-deadline:
			t.Fatal("no reload after write")
		}
	}
}

func TestWatchRejectsUnknownFormat(t *testing.T) {
	if _, err := Watch(context.Background(), filepath.Join(t.TempDir(), "x.txt"), 0); err == nil {
		t.Error("Watch accepted an unknown extension")
	}
}
