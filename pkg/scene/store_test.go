package scene

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/matzehuels/spatialnav/pkg/errors"
)

func TestFileStore(t *testing.T) {
	for _, f := range Formats {
		t.Run(string(f), func(t *testing.T) {
			ctx := context.Background()
			dir := t.TempDir()
			store, err := NewFileStore(dir, f)
			if err != nil {
				t.Fatalf("NewFileStore: %v", err)
			}
			defer store.Close()

			spec, err := Parse([]byte(tomlFixture), FormatTOML)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if err := store.Put(ctx, spec); err != nil {
				t.Fatalf("Put: %v", err)
			}
			if _, err := os.Stat(filepath.Join(dir, "remote."+string(f))); err != nil {
				t.Errorf("scene file missing: %v", err)
			}

			got, err := store.Get(ctx, "remote")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.Name != "remote" || len(got.Elements) != 3 {
				t.Errorf("Get = %+v", got)
			}

			spec2 := &Spec{Name: "another"}
			if err := store.Put(ctx, spec2); err != nil {
				t.Fatalf("Put(another): %v", err)
			}
			names, err := store.List(ctx)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if !slices.Equal(names, []string{"another", "remote"}) {
				t.Errorf("List = %v", names)
			}

			ok, err := store.Delete(ctx, "remote")
			if err != nil || !ok {
				t.Fatalf("Delete = %v, %v", ok, err)
			}
			ok, err = store.Delete(ctx, "remote")
			if err != nil || ok {
				t.Errorf("second Delete = %v, %v", ok, err)
			}
			if _, err := store.Get(ctx, "remote"); !errors.Is(err, errors.ErrCodeSceneNotFound) {
				t.Errorf("Get after Delete = %v, want SCENE_NOT_FOUND", err)
			}
		})
	}
}

func TestFileStoreRejectsBadNames(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir(), FormatTOML)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if err := store.Put(ctx, &Spec{Name: "../escape"}); !errors.Is(err, errors.ErrCodeInvalidScene) {
		t.Errorf("Put(../escape) = %v", err)
	}
	if err := store.Put(ctx, &Spec{}); !errors.Is(err, errors.ErrCodeInvalidScene) {
		t.Errorf("Put(unnamed) = %v", err)
	}
	if _, err := store.Get(ctx, "a/b"); !errors.Is(err, errors.ErrCodeInvalidScene) {
		t.Errorf("Get(a/b) = %v", err)
	}
	if _, err := store.Delete(ctx, ".."); !errors.Is(err, errors.ErrCodeInvalidScene) {
		t.Errorf("Delete(..) = %v", err)
	}
}

func TestFileStoreIgnoresOtherFormats(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "stray.json"), []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}
	store, err := NewFileStore(dir, FormatYAML)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	names, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("List = %v, want none", names)
	}
}

func TestLoadFileNames(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lobby.yaml")
	if err := os.WriteFile(path, []byte("elements:\n  - {id: a, x: 0, y: 0, w: 1, h: 1}\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	spec, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if spec.Name != "lobby" {
		t.Errorf("Name = %q, want lobby", spec.Name)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeSceneNotFound) {
		t.Errorf("LoadFile(missing) = %v, want SCENE_NOT_FOUND", err)
	}
	if _, err := LoadFile(filepath.Join(dir, "scene.ini")); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("LoadFile(.ini) = %v, want UNSUPPORTED", err)
	}

	out := filepath.Join(dir, "copy.json")
	if err := SaveFile(out, spec); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	again, err := LoadFile(out)
	if err != nil {
		t.Fatalf("LoadFile(copy): %v", err)
	}
	if again.Name != "lobby" || len(again.Elements) != 1 {
		t.Errorf("reloaded = %+v", again)
	}
}
