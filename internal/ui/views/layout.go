package views

const (
	titleHeight = 2 // title + spacer
	// description, paginator dots, status line
	footerFixedHeight = 3
	minViewportHeight = 5

	// ControlWidth is the clickable width of the previous/next controls
	ControlWidth = 4
)

// Zone identifies what sits under a terminal cell
type Zone int

const (
	ZoneNone Zone = iota
	ZonePrevious
	ZoneNext
	ZonePicture
)

// Layout places the viewport inside the terminal
type Layout struct {
	Width          int
	Height         int
	ViewportTop    int
	ViewportHeight int
}

// ComputeLayout splits a width x height terminal, leaving helpLines rows for
// the help bar
func ComputeLayout(width, height, helpLines int) Layout {
	vh := height - titleHeight - footerFixedHeight - helpLines
	if vh < minViewportHeight {
		vh = minViewportHeight
	}
	return Layout{
		Width:          width,
		Height:         height,
		ViewportTop:    titleHeight,
		ViewportHeight: vh,
	}
}

// HitTest maps a terminal cell to a zone
func (l Layout) HitTest(x, y int) Zone {
	if y < l.ViewportTop || y >= l.ViewportTop+l.ViewportHeight || x < 0 || x >= l.Width {
		return ZoneNone
	}
	if x < ControlWidth {
		return ZonePrevious
	}
	if x >= l.Width-ControlWidth {
		return ZoneNext
	}
	return ZonePicture
}
