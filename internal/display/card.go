package display

import (
	"log/slog"
	"os"

	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/dockpeek/dockpeek/internal/config"
	"github.com/dockpeek/dockpeek/internal/model"
)

// maxCardTitleLen is the character budget for a card's title label.
const maxCardTitleLen = 32

// Card is one window preview in the deck: a thumbnail (or a spinner
// placeholder while the capture is pending) above a truncated title.
type Card struct {
	box        *gtk.Box
	thumbFrame *gtk.Box
	titleLbl   *gtk.Label
	entry      model.WindowEntry
	config     *config.DaemonConfig
	logger     *slog.Logger

	// Highlight inputs
	hovered  bool
	selected bool
	cycling  bool

	onTap   func(entry model.WindowEntry)
	onHover func(hovering bool)
}

// NewCard builds a card for the given window entry.
func NewCard(entry model.WindowEntry, cfg *config.DaemonConfig, logger *slog.Logger) *Card {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Card{
		entry:  entry,
		config: cfg,
		logger: logger,
	}

	c.box = gtk.NewBox(gtk.OrientationVertical, 4)
	c.box.AddCSSClass("preview-card")

	c.thumbFrame = gtk.NewBox(gtk.OrientationVertical, 0)
	c.thumbFrame.SetSizeRequest(cfg.Display.CardWidth, cfg.Display.CardHeight)
	c.thumbFrame.Append(c.buildThumb())
	c.box.Append(c.thumbFrame)

	c.titleLbl = gtk.NewLabel(entry.TitleTruncated(maxCardTitleLen))
	c.titleLbl.AddCSSClass("card-title")
	c.titleLbl.SetXAlign(0.5)
	c.titleLbl.SetEllipsize(3) // PANGO_ELLIPSIZE_END
	c.titleLbl.SetMaxWidthChars(maxCardTitleLen)
	c.box.Append(c.titleLbl)

	c.connectSignals()

	return c
}

// buildThumb creates the thumbnail widget, or a spinner when the
// thumbnail has not arrived yet.
func (c *Card) buildThumb() gtk.Widgetter {
	if c.entry.HasThumbnail() {
		if _, err := os.Stat(c.entry.ThumbnailPath); err == nil {
			pic := gtk.NewPictureForFilename(c.entry.ThumbnailPath)
			pic.AddCSSClass("card-thumb")
			pic.SetCanShrink(true)
			pic.SetSizeRequest(c.config.Display.CardWidth, c.config.Display.CardHeight)
			return pic
		}
		c.logger.Debug("thumbnail missing on disk", "path", c.entry.ThumbnailPath)
	}

	spinner := gtk.NewSpinner()
	spinner.AddCSSClass("card-placeholder")
	spinner.SetSizeRequest(c.config.Display.CardWidth, c.config.Display.CardHeight)
	spinner.SetSpinning(true)
	return spinner
}

// connectSignals sets up tap and hover handling.
func (c *Card) connectSignals() {
	click := gtk.NewGestureClick()
	click.SetButton(1)
	click.ConnectReleased(func(nPress int, x, y float64) {
		if c.onTap != nil {
			c.onTap(c.entry)
		}
	})
	c.box.AddController(click)

	motion := gtk.NewEventControllerMotion()
	motion.ConnectEnter(func(x, y float64) {
		c.hovered = true
		c.updateHighlight()
		if c.onHover != nil {
			c.onHover(true)
		}
	})
	motion.ConnectLeave(func() {
		c.hovered = false
		c.updateHighlight()
		if c.onHover != nil {
			c.onHover(false)
		}
	})
	c.box.AddController(motion)
}

// OnTap sets the callback for card activation.
func (c *Card) OnTap(cb func(entry model.WindowEntry)) {
	c.onTap = cb
}

// OnHover sets the callback for hover state changes.
func (c *Card) OnHover(cb func(hovering bool)) {
	c.onHover = cb
}

// Entry returns the window entry this card displays.
func (c *Card) Entry() model.WindowEntry {
	return c.entry
}

// Widget returns the card's root widget.
func (c *Card) Widget() gtk.Widgetter {
	return c.box
}

// SetSelected updates the selection highlight input.
func (c *Card) SetSelected(selected bool) {
	c.selected = selected
	c.updateHighlight()
}

// SetCycling updates the cycling mode input.
func (c *Card) SetCycling(cycling bool) {
	c.cycling = cycling
	c.updateHighlight()
}

// UpdateThumbnail swaps the placeholder for the arrived thumbnail.
func (c *Card) UpdateThumbnail(path string) {
	c.entry.ThumbnailPath = path

	for child := c.thumbFrame.FirstChild(); child != nil; child = c.thumbFrame.FirstChild() {
		c.thumbFrame.Remove(child)
	}
	c.thumbFrame.Append(c.buildThumb())
}

func (c *Card) updateHighlight() {
	if cardHighlighted(c.hovered, c.selected, c.cycling) {
		c.box.AddCSSClass("highlighted")
	} else {
		c.box.RemoveCSSClass("highlighted")
	}
}

// cardHighlighted decides whether a card shows the highlight ring.
// While keyboard cycling is active the selection owns the ring and
// hover is ignored, otherwise hover or selection lights it.
func cardHighlighted(hovered, selected, cycling bool) bool {
	if cycling {
		return selected
	}
	return hovered || selected
}
