package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/jask/artgallery/internal/catalog"
	"github.com/jask/artgallery/internal/gallery"
	"github.com/jask/artgallery/internal/service"
)

// App is the gallery's bubbletea model. It owns the gallery state; every
// favorites mutation is persisted from here before Update returns.
type App struct {
	ctx       context.Context
	state     *gallery.State
	fetcher   *catalog.Fetcher
	favorites *service.FavoritesService
	log       *logrus.Entry

	keys  keyMap
	help  help.Model
	input textinput.Model

	mode       mode
	focus      focus
	slotCursor int
	loading    bool
	fetchErr   error
	status     string
	width      int
	height     int
}

// Deps are the collaborators the App drives.
type Deps struct {
	Fetcher   *catalog.Fetcher
	Favorites *service.FavoritesService
	Log       *logrus.Entry
}

type mode string

const (
	modeBrowse  mode = "browse"
	modeReplace mode = "replace" // Pending set, waiting for a target slot
	modeGrab    mode = "grab"    // current slide held, waiting for a drop slot
	modeJump    mode = "jump"
	modeSearch  mode = "search"
)

type focus string

const (
	focusCarousel  focus = "carousel"
	focusFavorites focus = "favorites"
)

// New loads the saved favorites and returns an App with an empty catalog. The
// catalog arrives through Init.
func New(ctx context.Context, deps Deps, opts gallery.WindowOptions) *App {
	input := textinput.New()
	input.CharLimit = 64

	return &App{
		ctx:       ctx,
		state:     gallery.NewState(deps.Favorites.Load(ctx), opts),
		fetcher:   deps.Fetcher,
		favorites: deps.Favorites,
		log:       deps.Log.WithField("component", "tui"),
		keys:      defaultKeys(),
		help:      help.New(),
		input:     input,
		mode:      modeBrowse,
		focus:     focusCarousel,
	}
}

// State exposes the gallery state for inspection.
func (a *App) State() *gallery.State { return a.state }

func (a *App) Init() tea.Cmd {
	return a.fetchCmd()
}

func (a *App) fetchCmd() tea.Cmd {
	a.loading = true
	return func() tea.Msg {
		return catalogMsg(a.fetcher.Fetch(a.ctx))
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.help.Width = m.Width
	case catalogMsg:
		a.applyCatalog(catalog.Result(m))
	case tea.KeyMsg:
		if key.Matches(m, a.keys.Quit) && m.String() == "ctrl+c" {
			a.fetcher.Cancel()
			return a, tea.Quit
		}
		if a.state.Selected != nil {
			return a.handleModalKey(m)
		}
		switch a.mode {
		case modeJump, modeSearch:
			return a.handleInputKey(m)
		case modeReplace, modeGrab:
			return a.handleSlotPickKey(m)
		}
		return a.handleBrowseKey(m)
	}
	return a, nil
}

func (a *App) applyCatalog(res catalog.Result) {
	if a.fetcher.Stale(res) {
		a.log.WithField("generation", res.Generation).Debug("dropping superseded catalog")
		return
	}
	a.loading = false
	if res.Err != nil {
		if errors.Is(res.Err, context.Canceled) {
			return
		}
		a.fetchErr = res.Err
		a.status = "error: " + res.Err.Error()
		return
	}
	a.fetchErr = nil
	dropped := a.state.ReplaceCatalog(res.Records)
	if dropped > 0 {
		a.log.WithField("dropped", dropped).Warn("catalog records without a unique id were skipped")
	}
	a.mode = modeBrowse
	a.state.CancelPending()
	a.status = fmt.Sprintf("%d artworks", a.state.Catalog.Len())
}

func (a *App) handleBrowseKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.focus == focusFavorites {
		switch {
		case key.Matches(m, a.keys.Up):
			a.moveSlot(-1)
			return a, nil
		case key.Matches(m, a.keys.Down):
			a.moveSlot(1)
			return a, nil
		case key.Matches(m, a.keys.View), key.Matches(m, a.keys.Confirm):
			if a.slotCursor < a.state.Favorites.Len() && a.state.Favorites[a.slotCursor] != nil {
				a.state.Select(*a.state.Favorites[a.slotCursor])
			}
			return a, nil
		}
	}

	switch {
	case key.Matches(m, a.keys.Quit):
		a.fetcher.Cancel()
		return a, tea.Quit
	case key.Matches(m, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	case key.Matches(m, a.keys.Focus):
		if a.focus == focusCarousel {
			a.focus = focusFavorites
		} else {
			a.focus = focusCarousel
		}
	case key.Matches(m, a.keys.Prev):
		a.state.Window.Prev()
	case key.Matches(m, a.keys.Next):
		a.state.Window.Next()
	case key.Matches(m, a.keys.Add), key.Matches(m, a.keys.Confirm):
		a.addCurrent()
	case key.Matches(m, a.keys.Grab):
		if _, ok := a.state.Window.Current(); !ok {
			return a, nil
		}
		a.mode = modeGrab
		a.focus = focusFavorites
		a.status = "drop on a slot: ↑/↓ then enter, or 1-9/0"
	case key.Matches(m, a.keys.View):
		if rec, ok := a.state.Window.Current(); ok {
			a.state.Select(rec)
		}
	case key.Matches(m, a.keys.Jump):
		return a, a.openInput(modeJump, "#", "slide number")
	case key.Matches(m, a.keys.Search):
		return a, a.openInput(modeSearch, "/", "theme, artist, tag or id")
	case key.Matches(m, a.keys.Refresh):
		a.status = "fetching..."
		return a, a.fetchCmd()
	}
	return a, nil
}

func (a *App) addCurrent() {
	changed, req, err := a.state.AddCurrent()
	if err != nil {
		a.status = "nothing to add yet"
		return
	}
	if req != nil {
		a.mode = modeReplace
		a.focus = focusFavorites
		a.status = fmt.Sprintf("favorites full: pick a slot to replace with #%s", req.Pending.ID)
		return
	}
	if !changed {
		a.status = "already in favorites"
		return
	}
	a.persist("added")
}

func (a *App) handleSlotPickKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if slot, ok := slotKey(m.String()); ok {
		if slot < a.state.Favorites.Len() {
			a.slotCursor = slot
			a.placeInSlot(slot)
		}
		return a, nil
	}
	switch {
	case key.Matches(m, a.keys.Cancel):
		if a.mode == modeReplace {
			a.state.CancelPending()
		}
		a.mode = modeBrowse
		a.focus = focusCarousel
		a.status = "cancelled"
	case key.Matches(m, a.keys.Up):
		a.moveSlot(-1)
	case key.Matches(m, a.keys.Down):
		a.moveSlot(1)
	case key.Matches(m, a.keys.Confirm):
		a.placeInSlot(a.slotCursor)
	}
	return a, nil
}

func (a *App) placeInSlot(slot int) {
	var (
		changed bool
		err     error
	)
	switch a.mode {
	case modeReplace:
		changed, err = a.state.ResolvePending(slot)
	case modeGrab:
		changed, err = a.state.DropCurrent(slot)
	default:
		return
	}
	if err != nil {
		a.log.WithError(err).WithField("slot", slot).Error("slot placement rejected")
		a.status = "error: " + err.Error()
		return
	}
	a.mode = modeBrowse
	a.focus = focusCarousel
	if !changed {
		a.status = "already in favorites"
		return
	}
	a.persist(fmt.Sprintf("placed in slot %d", slot+1))
}

func (a *App) persist(done string) {
	if err := a.favorites.Save(a.ctx, a.state.Favorites); err != nil {
		a.status = "favorites not saved: " + err.Error()
		return
	}
	a.status = done
}

func (a *App) moveSlot(delta int) {
	n := a.state.Favorites.Len()
	if n == 0 {
		return
	}
	a.slotCursor = min(max(a.slotCursor+delta, 0), n-1)
}

func (a *App) openInput(md mode, prompt, placeholder string) tea.Cmd {
	a.mode = md
	a.input.Reset()
	a.input.Prompt = prompt
	a.input.Placeholder = placeholder
	return a.input.Focus()
}

func (a *App) handleInputKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.closeInput()
		return a, nil
	case tea.KeyEnter:
		text := strings.TrimSpace(a.input.Value())
		md := a.mode
		a.closeInput()
		if md == modeJump {
			// Non-numeric or out-of-range input is ignored on purpose.
			if n, err := strconv.Atoi(text); err == nil {
				a.state.Window.JumpTo(n)
			}
			return a, nil
		}
		if idx, ok := gallery.Search(a.state.Catalog, text); ok {
			a.state.Window.OnCursorChange(idx)
		} else if text != "" {
			a.status = "no match"
		}
		return a, nil
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(m)
	return a, cmd
}

func (a *App) closeInput() {
	a.input.Blur()
	a.input.Reset()
	a.mode = modeBrowse
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Cancel), key.Matches(m, a.keys.Confirm),
		key.Matches(m, a.keys.View), key.Matches(m, a.keys.Quit):
		a.state.ClearSelection()
	}
	return a, nil
}

// messages
type catalogMsg catalog.Result
