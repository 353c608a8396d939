package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/artgallery/internal/gallery"
)

const (
	carouselWidth  = 56
	favoritesWidth = 36
)

func (a *App) View() string {
	header := titleStyle.Render("Art Gallery")
	panes := lipgloss.JoinHorizontal(lipgloss.Top, a.renderCarousel(), a.renderFavorites())
	body := lipgloss.JoinVertical(lipgloss.Left, header, panes, a.renderPrompt(), a.renderStatus(), a.help.View(a.keys))

	if a.state.Selected == nil {
		return body
	}
	modal := a.renderModal(*a.state.Selected)
	if a.width == 0 || a.height == 0 {
		return body + "\n\n" + modal
	}
	return overlayCenter(body, modal, a.width, a.height)
}

func (a *App) renderCarousel() string {
	style := paneStyle.Width(carouselWidth)
	if a.focus == focusCarousel {
		style = focusedPaneStyle.Width(carouselWidth)
	}
	w := a.state.Window
	if w.Len() == 0 {
		out := mutedStyle.Render("Loading...")
		if a.fetchErr != nil {
			out += "\n" + errorStyle.Render(truncate(a.fetchErr.Error(), carouselWidth))
		}
		return style.Render(out)
	}

	var b strings.Builder
	rec, ok := w.Loaded(w.Cursor())
	if !ok {
		b.WriteString(mutedStyle.Render("Loading..."))
	} else {
		if a.mode == modeGrab {
			b.WriteString(pendingStyle.Render("✋ holding this artwork") + "\n")
		}
		b.WriteString(headerStyle.Render("#"+rec.ID) + " " + textStyle.Render(truncate(rec.Title(), carouselWidth-len(rec.ID)-2)) + "\n")
		b.WriteString(mutedStyle.Render("by "+rec.ArtistName()) + "\n")
		b.WriteString(urlStyle.Render(truncate(rec.ImageURL, carouselWidth)) + "\n")
		if a.state.Favorites.Contains(rec.ID) {
			b.WriteString(loadedStyle.Render(fmt.Sprintf("★ in favorites (slot %d)", a.state.Favorites.SlotOf(rec.ID)+1)) + "\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d / %d", w.Cursor()+1, w.Len())) + "  ")
	b.WriteString(a.renderStrip())
	return style.Render(b.String())
}

// renderStrip shows the slides around the cursor; loaded slides are filled.
func (a *App) renderStrip() string {
	w := a.state.Window
	n := w.Len()
	span := min(4, (n-1)/2)
	var parts []string
	for d := -span; d <= span; d++ {
		idx := ((w.Cursor()+d)%n + n) % n
		mark := "○"
		if _, ok := w.Loaded(idx); ok {
			mark = "●"
		}
		switch {
		case d == 0:
			parts = append(parts, cursorStyle.Render(mark))
		case mark == "●":
			parts = append(parts, loadedStyle.Render(mark))
		default:
			parts = append(parts, dimStyle.Render(mark))
		}
	}
	return strings.Join(parts, " ") + dimStyle.Render(fmt.Sprintf("  %d loaded", len(w.LoadedIndices())))
}

func (a *App) renderFavorites() string {
	style := paneStyle.Width(favoritesWidth)
	if a.focus == focusFavorites {
		style = focusedPaneStyle.Width(favoritesWidth)
	}
	fav := a.state.Favorites

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Your Top %d", fav.Len())) + "\n")
	switch {
	case a.mode == modeReplace && a.state.Pending != nil:
		b.WriteString(pendingStyle.Render("replace with #"+a.state.Pending.ID) + "\n")
	case a.mode == modeGrab:
		b.WriteString(pendingStyle.Render("drop here") + "\n")
	}
	for i, rec := range fav {
		marker := " "
		if a.focus == focusFavorites && i == a.slotCursor {
			marker = cursorStyle.Render("▶")
		}
		label := dimStyle.Render("·")
		if rec != nil {
			label = textStyle.Render(truncate("#"+rec.ID+" "+rec.Title(), favoritesWidth-6))
		}
		fmt.Fprintf(&b, "%s %2d %s\n", marker, i+1, label)
	}
	return style.Render(strings.TrimRight(b.String(), "\n"))
}

func (a *App) renderPrompt() string {
	if a.mode != modeJump && a.mode != modeSearch {
		return ""
	}
	return a.input.View()
}

func (a *App) renderStatus() string {
	if a.status == "" {
		return ""
	}
	text := a.status
	switch {
	case strings.HasPrefix(text, "error"), strings.HasPrefix(text, "favorites not saved"):
		return statusBarStyle.Render(errorStyle.Render(text))
	case a.loading:
		return statusBarStyle.Render(warnStyle.Render(text))
	}
	return statusBarStyle.Render(text)
}

func (a *App) renderModal(rec gallery.Artwork) string {
	byline := "by " + rec.ArtistName()
	if rec.Tag != "" {
		byline += " (" + rec.Tag + ")"
	}
	lines := []string{
		headerStyle.Render("#"+rec.ID) + " " + textStyle.Render(rec.Title()),
		mutedStyle.Render(byline),
		"",
		urlStyle.Render(rec.ImageURL),
		"",
		dimStyle.Render("[esc] Close"),
	}
	return modalStyle.Render(strings.Join(lines, "\n"))
}
