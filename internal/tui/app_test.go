package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/artgallery/internal/catalog"
	"github.com/jask/artgallery/internal/gallery"
	"github.com/jask/artgallery/internal/logging"
	"github.com/jask/artgallery/internal/service"
	"github.com/jask/artgallery/internal/store"
)

type staticSource []gallery.Artwork

func (s staticSource) Fetch(context.Context) ([]gallery.Artwork, error) { return s, nil }

type failingSource struct{}

func (failingSource) Fetch(context.Context) ([]gallery.Artwork, error) {
	return nil, errors.New("dial tcp: connection refused")
}

type brokenKV struct{ *store.Memory }

func (brokenKV) Put(context.Context, string, []byte) error { return errors.New("quota exceeded") }

func records(n int) []gallery.Artwork {
	out := make([]gallery.Artwork, n)
	for i := range out {
		id := fmt.Sprintf("%d", i+1)
		out[i] = gallery.Artwork{ID: id, ImageURL: "https://img/" + id + ".png", Theme: "Theme " + id, Artist: "Artist " + id, Tag: "@a" + id}
	}
	return out
}

func newTestApp(t *testing.T, kv store.KV, src catalog.Source, size int) *App {
	t.Helper()
	log := logging.Discard()
	favs := &service.FavoritesService{Store: kv, Key: "art-favorites", Size: size, Log: log}
	a := New(context.Background(), Deps{
		Fetcher:   catalog.NewFetcher(src, log),
		Favorites: favs,
		Log:       log,
	}, gallery.DefaultWindowOptions())
	msg := a.Init()()
	a.Update(msg)
	return a
}

func keyMsg(k string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

var (
	enterMsg = tea.KeyMsg{Type: tea.KeyEnter}
	escMsg   = tea.KeyMsg{Type: tea.KeyEsc}
	tabMsg   = tea.KeyMsg{Type: tea.KeyTab}
	leftMsg  = tea.KeyMsg{Type: tea.KeyLeft}
	downMsg  = tea.KeyMsg{Type: tea.KeyDown}
)

func press(a *App, msgs ...tea.Msg) {
	for _, m := range msgs {
		a.Update(m)
	}
}

func savedIDs(t *testing.T, kv store.KV) []string {
	t.Helper()
	data, ok, err := kv.Get(context.Background(), "art-favorites")
	require.NoError(t, err)
	require.True(t, ok, "favorites were never persisted")
	persisted, err := service.Decode(data)
	require.NoError(t, err)
	out := make([]string, len(persisted))
	for i, r := range persisted {
		if r != nil {
			out[i] = r.ID
		}
	}
	return out
}

func TestCatalogLoadsOnInit(t *testing.T) {
	a := newTestApp(t, store.NewMemory(), staticSource(records(12)), 5)
	require.Equal(t, 12, a.State().Catalog.Len())
	require.Equal(t, []int{0, 1, 2, 3, 4, 5}, a.State().Window.LoadedIndices())
	require.Contains(t, a.View(), "#1")
	require.Contains(t, a.View(), "1 / 12")
}

func TestNavigationWraps(t *testing.T) {
	a := newTestApp(t, store.NewMemory(), staticSource(records(10)), 5)
	press(a, leftMsg)
	require.Equal(t, 9, a.State().Window.Cursor())
	for _, i := range []int{5, 6, 7, 8, 9, 0, 1, 2, 3} {
		_, ok := a.State().Window.Loaded(i)
		require.True(t, ok, "index %d", i)
	}
	press(a, keyMsg("l"), keyMsg("l"))
	require.Equal(t, 1, a.State().Window.Cursor())
}

func TestAddPersistsEveryMutation(t *testing.T) {
	kv := store.NewMemory()
	a := newTestApp(t, kv, staticSource(records(5)), 3)

	press(a, keyMsg("a"))
	require.Equal(t, []string{"1", "", ""}, savedIDs(t, kv))

	press(a, keyMsg("l"), keyMsg("a"))
	require.Equal(t, []string{"1", "2", ""}, savedIDs(t, kv))

	press(a, keyMsg("h"), keyMsg("a"))
	require.Equal(t, "already in favorites", a.status)
	require.Equal(t, []string{"1", "2", ""}, savedIDs(t, kv))
}

func TestFullListEntersReplacementMode(t *testing.T) {
	kv := store.NewMemory()
	a := newTestApp(t, kv, staticSource(records(5)), 2)

	press(a, keyMsg("a"), keyMsg("l"), keyMsg("a"), keyMsg("l"), keyMsg("a"))
	require.Equal(t, modeReplace, a.mode)
	require.NotNil(t, a.State().Pending)
	require.Equal(t, "3", a.State().Pending.ID)
	require.Equal(t, []string{"1", "2"}, savedIDs(t, kv))
	require.Contains(t, a.View(), "replace with #3")

	press(a, keyMsg("2"))
	require.Equal(t, modeBrowse, a.mode)
	require.Nil(t, a.State().Pending)
	require.Equal(t, []string{"1", "3"}, savedIDs(t, kv))
}

func TestReplacementCancel(t *testing.T) {
	kv := store.NewMemory()
	a := newTestApp(t, kv, staticSource(records(3)), 1)
	press(a, keyMsg("a"), keyMsg("l"), keyMsg("a"))
	require.Equal(t, modeReplace, a.mode)

	press(a, escMsg)
	require.Equal(t, modeBrowse, a.mode)
	require.Nil(t, a.State().Pending)
	require.Equal(t, []string{"1"}, savedIDs(t, kv))
}

func TestReplacementWithCursor(t *testing.T) {
	kv := store.NewMemory()
	a := newTestApp(t, kv, staticSource(records(4)), 2)
	press(a, keyMsg("a"), keyMsg("l"), keyMsg("a"), keyMsg("l"), keyMsg("a"))
	press(a, downMsg, downMsg, enterMsg)
	require.Equal(t, []string{"1", "3"}, savedIDs(t, kv))
}

func TestGrabDropUsesFirstEmptySlot(t *testing.T) {
	kv := store.NewMemory()
	seed, err := service.Encode(gallery.Favorites{nil, &gallery.Artwork{ID: "x"}, nil})
	require.NoError(t, err)
	require.NoError(t, kv.Put(context.Background(), "art-favorites", seed))

	a := newTestApp(t, kv, staticSource(records(5)), 3)
	press(a, keyMsg("d"))
	require.Equal(t, modeGrab, a.mode)
	require.Contains(t, a.View(), "drop here")

	press(a, keyMsg("3"))
	require.Equal(t, modeBrowse, a.mode)
	require.Equal(t, []string{"1", "x", ""}, savedIDs(t, kv))
}

func TestGrabDropHonorsTargetWhenFull(t *testing.T) {
	kv := store.NewMemory()
	a := newTestApp(t, kv, staticSource(records(5)), 2)
	press(a, keyMsg("a"), keyMsg("l"), keyMsg("a"), keyMsg("l"))

	press(a, keyMsg("d"), keyMsg("1"))
	require.Equal(t, []string{"3", "2"}, savedIDs(t, kv))

	// dropping a record that is already present changes nothing
	press(a, keyMsg("d"), keyMsg("2"))
	require.Equal(t, "already in favorites", a.status)
	require.Equal(t, []string{"3", "2"}, savedIDs(t, kv))
}

func TestGrabIgnoresSlotsPastListSize(t *testing.T) {
	kv := store.NewMemory()
	a := newTestApp(t, kv, staticSource(records(3)), 2)
	press(a, keyMsg("d"), keyMsg("9"))
	require.Equal(t, modeGrab, a.mode)
	_, ok, err := kv.Get(context.Background(), "art-favorites")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestJumpToSlide(t *testing.T) {
	a := newTestApp(t, store.NewMemory(), staticSource(records(20)), 5)

	press(a, keyMsg(":"), keyMsg("1"), keyMsg("5"), enterMsg)
	require.Equal(t, modeBrowse, a.mode)
	require.Equal(t, 14, a.State().Window.Cursor())

	for _, bad := range []string{"0", "21", "abc"} {
		press(a, keyMsg(":"), keyMsg(bad), enterMsg)
		require.Equal(t, 14, a.State().Window.Cursor(), "input %q", bad)
	}

	press(a, keyMsg(":"), keyMsg("3"), escMsg)
	require.Equal(t, 14, a.State().Window.Cursor())
	require.Equal(t, modeBrowse, a.mode)
}

func TestSearchMovesCursor(t *testing.T) {
	a := newTestApp(t, store.NewMemory(), staticSource(records(9)), 5)
	press(a, keyMsg("/"), keyMsg("artist 7"), enterMsg)
	require.Equal(t, 6, a.State().Window.Cursor())
}

func TestEnlargeModal(t *testing.T) {
	kv := store.NewMemory()
	a := newTestApp(t, kv, staticSource(records(3)), 3)
	press(a, keyMsg("l"), keyMsg("v"))
	require.NotNil(t, a.State().Selected)
	require.Equal(t, "2", a.State().Selected.ID)
	view := a.View()
	require.Contains(t, view, "by Artist 2 (@a2)")
	require.Contains(t, view, "[esc] Close")

	// keys other than close do nothing while the modal is open
	press(a, keyMsg("a"))
	_, ok, _ := kv.Get(context.Background(), "art-favorites")
	require.False(t, ok)

	press(a, escMsg)
	require.Nil(t, a.State().Selected)
}

func TestEnlargeFromFavorites(t *testing.T) {
	a := newTestApp(t, store.NewMemory(), staticSource(records(3)), 3)
	press(a, keyMsg("l"), keyMsg("a"), tabMsg)
	require.Equal(t, focusFavorites, a.focus)
	press(a, enterMsg)
	require.NotNil(t, a.State().Selected)
	require.Equal(t, "2", a.State().Selected.ID)
	press(a, keyMsg("q"))
	require.Nil(t, a.State().Selected)

	// empty slot opens nothing
	press(a, downMsg, enterMsg)
	require.Nil(t, a.State().Selected)
}

func TestModalOverlayWithWindowSize(t *testing.T) {
	a := newTestApp(t, store.NewMemory(), staticSource(records(3)), 3)
	press(a, tea.WindowSizeMsg{Width: 120, Height: 40}, keyMsg("v"))
	view := a.View()
	require.Contains(t, view, "[esc] Close")
	require.Contains(t, view, "Art Gallery")
}

func TestFetchFailureLeavesCatalogEmpty(t *testing.T) {
	a := newTestApp(t, store.NewMemory(), failingSource{}, 3)
	require.Zero(t, a.State().Catalog.Len())
	require.Error(t, a.fetchErr)
	view := a.View()
	require.Contains(t, view, "Loading...")
	require.Contains(t, a.status, "connection refused")

	press(a, keyMsg("a"), keyMsg("d"), keyMsg("l"))
	require.Equal(t, modeBrowse, a.mode)
	require.Equal(t, "nothing to add yet", a.status)
}

func TestStaleCatalogIgnored(t *testing.T) {
	a := newTestApp(t, store.NewMemory(), staticSource(records(4)), 3)
	a.Update(catalogMsg(catalog.Result{Generation: 42, Records: records(9)}))
	require.Equal(t, 4, a.State().Catalog.Len())

	a.Update(catalogMsg(catalog.Result{Generation: 1, Err: context.Canceled}))
	require.Nil(t, a.fetchErr)
}

func TestRefetchReplacesCatalog(t *testing.T) {
	a := newTestApp(t, store.NewMemory(), staticSource(records(4)), 3)
	press(a, keyMsg("l"))
	_, cmd := a.Update(keyMsg("r"))
	require.NotNil(t, cmd)
	require.True(t, a.loading)
	a.Update(cmd())
	require.False(t, a.loading)
	require.Equal(t, 0, a.State().Window.Cursor())
}

func TestPersistFailureIsReported(t *testing.T) {
	kv := brokenKV{store.NewMemory()}
	a := newTestApp(t, kv, staticSource(records(3)), 3)
	press(a, keyMsg("a"))
	require.Equal(t, 1, a.State().Favorites.Count())
	require.True(t, strings.HasPrefix(a.status, "favorites not saved"))
}

func TestSavedFavoritesLoadedOnStart(t *testing.T) {
	kv := store.NewMemory()
	seed, err := service.Encode(gallery.Favorites{&gallery.Artwork{ID: "9", Theme: "Old"}, nil, nil, nil})
	require.NoError(t, err)
	require.NoError(t, kv.Put(context.Background(), "art-favorites", seed))

	a := newTestApp(t, kv, staticSource(records(2)), 2)
	require.Len(t, a.State().Favorites, 2)
	require.Equal(t, "9", a.State().Favorites[0].ID)
	require.Contains(t, a.View(), "#9 Old")
}

func TestQuit(t *testing.T) {
	a := newTestApp(t, store.NewMemory(), staticSource(records(2)), 2)
	_, cmd := a.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}
