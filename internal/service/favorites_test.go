package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/artgallery/internal/gallery"
	"github.com/jask/artgallery/internal/logging"
	"github.com/jask/artgallery/internal/store"
)

func rec(id string) *gallery.Artwork {
	return &gallery.Artwork{ID: id, ImageURL: "https://img/" + id + ".png", Theme: "t" + id}
}

func slotIDs(f gallery.Favorites) []string {
	out := make([]string, len(f))
	for i, r := range f {
		if r != nil {
			out[i] = r.ID
		}
	}
	return out
}

func TestFavoritesRoundTripAllBackends(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	sq, err := store.OpenSQLite(filepath.Join(dir, "kv.db"), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sq.Close() })

	for name, kv := range map[string]store.KV{
		"memory": store.NewMemory(),
		"file":   store.NewFile(filepath.Join(dir, "kv.json")),
		"sqlite": sq,
	} {
		t.Run(name, func(t *testing.T) {
			svc := &FavoritesService{Store: kv, Key: "art-favorites", Size: 5, Log: logging.Discard()}

			empty := svc.Load(ctx)
			require.Len(t, empty, 5)
			require.Zero(t, empty.Count())

			fav := gallery.Favorites{rec("A"), nil, rec("B"), nil, nil}
			require.NoError(t, svc.Save(ctx, fav))

			got := svc.Load(ctx)
			require.Equal(t, []string{"A", "", "B", "", ""}, slotIDs(got))
			require.Equal(t, *fav[2], *got[2])
		})
	}
}

func TestFavoritesWireFormat(t *testing.T) {
	data, err := Encode(gallery.Favorites{rec("1"), nil})
	require.NoError(t, err)
	require.JSONEq(t, `[{"id":"1","image_url":"https://img/1.png","theme":"t1"},null]`, string(data))
}

func TestFavoritesLoadResizes(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	long := make(gallery.Favorites, 10)
	for i := range long {
		long[i] = rec(string(rune('a' + i)))
	}
	data, err := Encode(long)
	require.NoError(t, err)
	require.NoError(t, kv.Put(ctx, "art-favorites", data))

	svc := &FavoritesService{Store: kv, Key: "art-favorites", Size: 5, Log: logging.Discard()}
	require.Equal(t, []string{"a", "b", "c", "d", "e"}, slotIDs(svc.Load(ctx)))

	svc.Size = 12
	got := svc.Load(ctx)
	require.Len(t, got, 12)
	require.Equal(t, 10, got.Count())
}

func TestFavoritesLoadCorruptIsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	require.NoError(t, kv.Put(ctx, "art-favorites", []byte(`{"broken":`)))

	svc := &FavoritesService{Store: kv, Key: "art-favorites", Size: 3, Log: logging.Discard()}
	got := svc.Load(ctx)
	require.Len(t, got, 3)
	require.Zero(t, got.Count())
}

type failingKV struct{ store.KV }

func (failingKV) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("disk gone")
}

func (failingKV) Put(context.Context, string, []byte) error { return errors.New("quota exceeded") }

func TestFavoritesStoreFailures(t *testing.T) {
	ctx := context.Background()
	svc := &FavoritesService{Store: failingKV{}, Key: "art-favorites", Size: 2, Log: logging.Discard()}

	got := svc.Load(ctx)
	require.Len(t, got, 2)
	require.Zero(t, got.Count())

	err := svc.Save(ctx, gallery.Favorites{rec("1"), nil})
	require.Error(t, err)
	require.Contains(t, err.Error(), "quota exceeded")
}

func TestFavoritesReset(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	svc := &FavoritesService{Store: kv, Key: "art-favorites", Size: 3, Log: logging.Discard()}
	require.NoError(t, svc.Save(ctx, gallery.Favorites{rec("1"), nil, rec("3")}))

	fav, err := svc.Reset(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"", "", ""}, slotIDs(fav))

	data, ok, err := kv.Get(ctx, "art-favorites")
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `[null, null, null]`, string(data))
}
