package floating

// Side is where the floating panel sits relative to its reference
type Side string

const (
	SideBottom Side = "bottom"
	SideTop    Side = "top"
)

// Options tunes placement
type Options struct {
	// Padding is the gap kept between the panel and the viewport edge
	Padding int
	// Flip moves the panel above the reference when it does not fit below
	Flip bool
}

// DefaultOptions flips on overflow and keeps one row of padding
func DefaultOptions() Options {
	return Options{Padding: 1, Flip: true}
}

// Placement is the computed position of a floating panel
type Placement struct {
	Rect
	Side Side
	// MaxHeight is the space available on the chosen side
	MaxHeight int
}

// Compute places a panel of contentHeight rows against anchor. The panel
// takes the anchor's width, prefers the space below it, flips above when
// that has more room, and is clamped to the available height.
func Compute(anchor Rect, contentHeight int, viewport Size, opts Options) Placement {
	if contentHeight < 0 {
		contentHeight = 0
	}

	// Unknown viewport: nothing to clamp against
	if viewport.Height <= 0 {
		return Placement{
			Rect:      Rect{X: anchor.X, Y: anchor.Bottom(), Width: anchor.Width, Height: contentHeight},
			Side:      SideBottom,
			MaxHeight: contentHeight,
		}
	}

	below := viewport.Height - anchor.Bottom() - opts.Padding
	above := anchor.Y - opts.Padding
	if below < 0 {
		below = 0
	}
	if above < 0 {
		above = 0
	}

	side, available := SideBottom, below
	if opts.Flip && contentHeight > below && above > below {
		side, available = SideTop, above
	}

	height := contentHeight
	if height > available {
		height = available
	}

	y := anchor.Bottom()
	if side == SideTop {
		y = anchor.Y - height
	}

	width := anchor.Width
	x := anchor.X
	if viewport.Width > 0 {
		if width > viewport.Width {
			width = viewport.Width
		}
		if x+width > viewport.Width {
			x = viewport.Width - width
		}
	}
	if x < 0 {
		x = 0
	}

	return Placement{
		Rect:      Rect{X: x, Y: y, Width: width, Height: height},
		Side:      side,
		MaxHeight: available,
	}
}
