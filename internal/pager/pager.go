// Package pager keeps the cursor and the scroll position of the listing in
// step with the rows the composer produces.
//
// Every Update recomputes both positions from scratch against the rows it
// is given, so a listing that grew or shrank since the last call never
// leaves the cursor or the viewport out of range.
package pager

import (
	"twilight/internal/composer"
	"twilight/internal/config"
	"twilight/internal/log"
)

// DefaultTerminalHeight is assumed until the terminal reports its size.
const DefaultTerminalHeight = 24

// Frame is what a Renderer draws: the title and the visible rows.
type Frame struct {
	Title          string
	Rows           []composer.Row // Visible slice only
	Cursor         int            // Cursor position within Rows, -1 when Rows is empty
	Top            int            // Listing row shown first
	Total          int            // Length of the whole listing
	ViewportHeight int
}

// Renderer draws frames.
type Renderer interface {
	Render(f Frame)
}

// Pager is the cursor/viewport state machine.
type Pager struct {
	renderer Renderer

	scrolling  string
	paddingTop int
	paddingBot int
	spacingTop int
	spacingBot int

	cursorRow      int
	topRow         int
	viewportHeight int
	total          int
}

// New creates a pager drawing through r. A nil renderer draws nothing.
func New(cfg *config.Config, r Renderer) *Pager {
	p := &Pager{
		renderer:   r,
		scrolling:  cfg.Behavior.Scrolling,
		paddingTop: cfg.Debug.PaddingTop,
		paddingBot: cfg.Debug.PaddingBot,
		spacingTop: cfg.Debug.SpacingTop,
		spacingBot: cfg.Debug.SpacingBot,
	}
	p.SetTerminalHeight(DefaultTerminalHeight)
	return p
}

// SetTerminalHeight sizes the viewport to the terminal minus the padding
// rows. The viewport is never smaller than one row.
func (p *Pager) SetTerminalHeight(h int) {
	vh := h - p.paddingTop - p.paddingBot
	if vh < 1 {
		vh = 1
	}
	p.viewportHeight = vh
}

// Update moves the cursor by delta over rows, scrolls so the cursor stays
// visible and renders the result.
//
// Moving up from the first row wraps to the last and moving down from the
// last row wraps to the first. Any other move that would leave the listing
// stops at its end. A delta of zero only re-clamps against rows.
func (p *Pager) Update(delta int, rows []composer.Row, title string) {
	p.total = len(rows)
	if p.total == 0 {
		p.cursorRow, p.topRow = 0, 0
		p.render(rows, title)
		return
	}

	last := p.total - 1
	switch {
	case delta < 0 && p.cursorRow == 0:
		p.cursorRow = last
	case delta > 0 && p.cursorRow >= last:
		p.cursorRow = 0
	default:
		p.cursorRow = clamp(p.cursorRow+delta, 0, last)
	}

	p.scroll()
	p.render(rows, title)
}

func (p *Pager) scroll() {
	vh := p.viewportHeight

	switch p.scrolling {
	case config.ScrollCenter:
		p.topRow = p.cursorRow - vh/2
	default:
		maxSpacing := (vh - 1) / 2
		above := min(max(p.spacingTop, 0), maxSpacing)
		below := min(max(p.spacingBot, 0), maxSpacing)

		if p.cursorRow < p.topRow+above {
			p.topRow = p.cursorRow - above
		}
		if p.cursorRow > p.topRow+vh-1-below {
			p.topRow = p.cursorRow - (vh - 1 - below)
		}
	}

	p.topRow = clamp(p.topRow, 0, max(0, p.total-vh))
}

func (p *Pager) render(rows []composer.Row, title string) {
	start, end := p.VisibleRange()
	cursor := -1
	if p.total > 0 {
		cursor = p.cursorRow - start
	}

	log.Debug("pager: cursor=%d top=%d total=%d viewport=%d", p.cursorRow, p.topRow, p.total, p.viewportHeight)
	if p.renderer == nil {
		return
	}
	p.renderer.Render(Frame{
		Title:          title,
		Rows:           rows[start:end],
		Cursor:         cursor,
		Top:            p.topRow,
		Total:          p.total,
		ViewportHeight: p.viewportHeight,
	})
}

// CursorRow returns the selected row of the last update.
func (p *Pager) CursorRow() int { return p.cursorRow }

// TopRow returns the first visible row.
func (p *Pager) TopRow() int { return p.topRow }

// ViewportHeight returns the number of rows the listing may use.
func (p *Pager) ViewportHeight() int { return p.viewportHeight }

// VisibleRange returns the half-open row range shown by the last update.
func (p *Pager) VisibleRange() (start, end int) {
	return p.topRow, min(p.topRow+p.viewportHeight, p.total)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
