package views

import (
	"fmt"
	"path"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"picturereel/internal/domain"
)

// fadedOpacity is the opacity below which an exiting card is no longer drawn
const fadedOpacity = 0.35

// StatusKind selects the status line style
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusError
	StatusLoading
)

// CardPlacement is one picture card and where it currently sits
type CardPlacement struct {
	Picture    domain.Picture
	Index      int
	Total      int
	OffsetCols int
	Opacity    float64
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Layout          Layout
	Title           string
	Cards           []CardPlacement // drawn in order, last on top
	Description     string
	ShowDescription bool
	Dots            string
	StatusMessage   string
	StatusKind      StatusKind
	Spinner         string
	HelpView        string
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	width := state.Layout.Width
	content := &strings.Builder{}

	content.WriteString(r.renderTitle(state))
	content.WriteString("\n\n")

	content.WriteString(r.renderViewport(state))
	content.WriteString("\n")

	if state.ShowDescription {
		content.WriteString(r.styles.Description.Width(width).Render(runewidth.Truncate(state.Description, width, "…")))
	}
	content.WriteString("\n")

	content.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, state.Dots))
	content.WriteString("\n")

	content.WriteString(r.renderStatus(state))

	if state.HelpView != "" {
		content.WriteString("\n")
		content.WriteString(r.styles.Help.Render(state.HelpView))
	}

	return content.String()
}

func (r *Renderer) renderTitle(state ViewState) string {
	logo := r.styles.Title.Render("picturereel")
	if state.Title == "" {
		return logo
	}
	right := r.styles.Dim.Render(state.Title)
	gap := state.Layout.Width - lipgloss.Width(logo) - lipgloss.Width(right)
	if gap < 1 {
		return logo
	}
	return logo + strings.Repeat(" ", gap) + right
}

func (r *Renderer) renderViewport(state ViewState) string {
	l := state.Layout
	c := newCanvas(l.Width, l.ViewportHeight)

	for _, card := range state.Cards {
		if card.Opacity < fadedOpacity {
			continue
		}
		block := r.RenderCard(card, l.Width)
		cardWidth := 0
		for _, line := range block {
			if w := runewidth.StringWidth(line); w > cardWidth {
				cardWidth = w
			}
		}
		x := (l.Width-cardWidth)/2 + card.OffsetCols
		y := (l.ViewportHeight - len(block)) / 2
		if y < 0 {
			y = 0
		}
		c.draw(block, x, y)
	}

	mid := l.ViewportHeight / 2
	c.draw([]string{" ‹ "}, 0, mid)
	c.draw([]string{" › "}, l.Width-3, mid)

	return r.styles.Viewport.Render(c.String())
}

// RenderCard draws the plain-text card for one picture
func (r *Renderer) RenderCard(card CardPlacement, viewportWidth int) []string {
	width := CardWidth(viewportWidth)
	inner := width - 6 // border and padding
	if inner < 1 {
		inner = 1
	}

	name := path.Base(strings.ReplaceAll(card.Picture.Source, "\\", "/"))
	lines := []string{
		runewidth.Truncate(name, inner, "…"),
		"",
		runewidth.Truncate(card.Picture.Source, inner, "…"),
		"",
		fmt.Sprintf("%d / %d", card.Index+1, card.Total),
	}
	return strings.Split(r.styles.Card.Width(width-2).Render(strings.Join(lines, "\n")), "\n")
}

// CardWidth is the outer width of a card inside a viewport
func CardWidth(viewportWidth int) int {
	w := viewportWidth - 2*(ControlWidth+2)
	if w > 64 {
		w = 64
	}
	if w < 12 {
		w = 12
	}
	return w
}

func (r *Renderer) renderStatus(state ViewState) string {
	msg := state.StatusMessage
	if state.Spinner != "" {
		msg = strings.TrimSpace(state.Spinner + " " + msg)
	}
	switch state.StatusKind {
	case StatusError:
		return r.styles.StatusError.Render(msg)
	case StatusLoading:
		return r.styles.StatusLoading.Render(msg)
	default:
		return r.styles.Status.Render(msg)
	}
}
