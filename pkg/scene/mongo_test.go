package scene

import (
	"context"
	"os"
	"slices"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/spatialnav/pkg/errors"
)

// TestMongoStore runs against a live server named by SPATIALNAV_TEST_MONGODB_URI.
func TestMongoStore(t *testing.T) {
	uri := os.Getenv("SPATIALNAV_TEST_MONGODB_URI")
	if uri == "" {
		t.Skip("SPATIALNAV_TEST_MONGODB_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := ConnectMongo(ctx, uri, "spatialnav_test", "scenes_"+uuid.NewString()[:8])
	if err != nil {
		t.Fatalf("ConnectMongo: %v", err)
	}
	defer func() {
		_ = store.coll.Drop(ctx)
		store.Close()
	}()

	spec, err := Parse([]byte(tomlFixture), FormatTOML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := store.Put(ctx, spec); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Put(ctx, spec); err != nil {
		t.Fatalf("second Put: %v", err)
	}

	got, err := store.Get(ctx, "remote")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Elements) != 3 || *got.Defaults.StraightOverlapThreshold != 0.3 {
		t.Errorf("Get = %+v", got)
	}

	names, err := store.List(ctx)
	if err != nil || !slices.Equal(names, []string{"remote"}) {
		t.Errorf("List = %v, %v", names, err)
	}

	if ok, err := store.Delete(ctx, "remote"); err != nil || !ok {
		t.Errorf("Delete = %v, %v", ok, err)
	}
	if _, err := store.Get(ctx, "remote"); !errors.Is(err, errors.ErrCodeSceneNotFound) {
		t.Errorf("Get after Delete = %v", err)
	}
}
