package gormrepo

import (
	"context"
	"math"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	staticcatalog "wildcraft/internal/adapter/catalog/static"
	"wildcraft/internal/domain/survival"
	"wildcraft/internal/domain/world"
)

func codecFixture(t *testing.T) (*survival.Catalog, survival.GameState) {
	t.Helper()
	catalog, err := staticcatalog.Provider{}.Load(context.Background())
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	state := survival.NewSession(catalog)
	wood, _ := catalog.Resource("wood")
	meat, _ := catalog.Item("cooked_meat")
	state.Inventory = state.Inventory.
		Add(survival.ResourceStack{Resource: wood}, 2).
		Add(survival.ItemStack{Item: meat}, 1)
	state.Stats.Hunger = 42.5
	state.Clock = state.Clock.Advance(14 * 60)
	state.Biome = world.BiomeMountains
	state.Version = 9
	return catalog, state
}

func TestModelRoundTrip(t *testing.T) {
	catalog, state := codecFixture(t)

	m, err := toModel("s1", state)
	if err != nil {
		t.Fatalf("to model: %v", err)
	}
	got, err := fromModel(catalog, m)
	if err != nil {
		t.Fatalf("from model: %v", err)
	}
	if diff := cmp.Diff(state, got); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestToModelRejectsDayBeyondColumn(t *testing.T) {
	_, state := codecFixture(t)
	state.Clock.Day = math.MaxInt32 + 1

	if _, err := toModel("s1", state); err == nil {
		t.Fatalf("expected error for day %d", state.Clock.Day)
	}
}

func TestStateDocRoundTrip(t *testing.T) {
	catalog, state := codecFixture(t)

	raw, err := encodeStateDoc(state)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := decodeStateDoc(catalog, raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(state, got); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestFromModelRejectsUnknownStack(t *testing.T) {
	catalog, state := codecFixture(t)
	m, _ := toModel("s1", state)
	m.Inventory = []byte(`[{"kind":"resource","id":"unobtainium","quantity":1}]`)

	if _, err := fromModel(catalog, m); err == nil {
		t.Fatalf("expected error for unknown stack id")
	}
}

type fakeEntry struct {
	name string
	dir  bool
}

func (e fakeEntry) Name() string               { return e.name }
func (e fakeEntry) IsDir() bool                { return e.dir }
func (e fakeEntry) Type() os.FileMode          { return 0 }
func (e fakeEntry) Info() (os.FileInfo, error) { return nil, nil }

func TestMigrationFilesSortedSQLOnly(t *testing.T) {
	got := migrationFiles([]os.DirEntry{
		fakeEntry{name: "0002_more.sql"},
		fakeEntry{name: "README.md"},
		fakeEntry{name: "0001_init.sql"},
		fakeEntry{name: "archive", dir: true},
	})
	want := []string{"0001_init.sql", "0002_more.sql"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("migration files mismatch (-want +got):\n%s", diff)
	}
}
