package display

import (
	"log/slog"

	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/dockpeek/dockpeek/internal/config"
	"github.com/dockpeek/dockpeek/internal/geom"
	"github.com/dockpeek/dockpeek/internal/model"
	"github.com/dockpeek/dockpeek/internal/selection"
)

// cardGap is the horizontal spacing between cards in pixels.
const cardGap = 8

// titleRowHeight is the vertical budget for a card's title label.
const titleRowHeight = 24

// appNameRowHeight is the vertical budget for the deck's app name label.
const appNameRowHeight = 28

// Deck is the horizontal row of preview cards with the application name
// above it. Overflowing cards scroll; the selected card is kept in view.
type Deck struct {
	outer      *gtk.Box
	appNameLbl *gtk.Label
	scrolled   *gtk.ScrolledWindow
	row        *gtk.Box
	cards      []*Card
	config     *config.DaemonConfig
	logger     *slog.Logger

	sel   *selection.State
	selCh <-chan selection.ChangeEvent

	scroll tweener

	onTap func(entry model.WindowEntry)
}

// NewDeck builds an empty deck.
func NewDeck(cfg *config.DaemonConfig, sel *selection.State, logger *slog.Logger) *Deck {
	if logger == nil {
		logger = slog.Default()
	}

	d := &Deck{
		config: cfg,
		sel:    sel,
		logger: logger,
	}

	d.outer = gtk.NewBox(gtk.OrientationVertical, 4)
	d.outer.AddCSSClass("preview-deck")

	d.appNameLbl = gtk.NewLabel("")
	d.appNameLbl.AddCSSClass("preview-appname")
	d.appNameLbl.SetXAlign(0)
	d.outer.Append(d.appNameLbl)

	d.row = gtk.NewBox(gtk.OrientationHorizontal, cardGap)

	d.scrolled = gtk.NewScrolledWindow()
	d.scrolled.SetPolicy(gtk.PolicyAutomatic, gtk.PolicyNever)
	d.scrolled.SetChild(d.row)
	d.outer.Append(d.scrolled)

	return d
}

// Watch subscribes the deck to selection changes. Events arrive on a
// subscriber goroutine and are bounced onto the GTK main loop.
func (d *Deck) Watch() {
	if d.selCh != nil {
		return
	}
	ch := d.sel.Subscribe()
	d.selCh = ch

	go func() {
		for event := range ch {
			ev := event
			glib.IdleAdd(func() {
				d.applySelection(ev)
			})
		}
	}()
}

// Unwatch drops the selection subscription.
func (d *Deck) Unwatch() {
	if d.selCh != nil {
		d.sel.Unsubscribe(d.selCh)
		d.selCh = nil
	}
}

// OnTap sets the callback for card activation.
func (d *Deck) OnTap(cb func(entry model.WindowEntry)) {
	d.onTap = cb
}

// Widget returns the deck's root widget.
func (d *Deck) Widget() gtk.Widgetter {
	return d.outer
}

// SetContent rebuilds the deck for a new application and window list.
func (d *Deck) SetContent(appName string, windows []model.WindowEntry) {
	d.appNameLbl.SetText(appName)

	for _, card := range d.cards {
		d.row.Remove(card.Widget())
	}
	d.cards = d.cards[:0]

	cycling := d.sel.Cycling()
	selected := d.sel.Index()

	for i, entry := range windows {
		card := NewCard(entry, d.config, d.logger)
		card.SetCycling(cycling)
		card.SetSelected(i == selected)
		card.OnTap(func(entry model.WindowEntry) {
			if d.onTap != nil {
				d.onTap(entry)
			}
		})
		d.row.Append(card.Widget())
		d.cards = append(d.cards, card)
	}
}

// Cards returns the current cards.
func (d *Deck) Cards() []*Card {
	return d.cards
}

// UpdateThumbnail routes an arrived thumbnail to the matching card.
// Returns true if a card claimed it.
func (d *Deck) UpdateThumbnail(handle, path string) bool {
	for _, card := range d.cards {
		if card.Entry().Handle == handle {
			card.UpdateThumbnail(path)
			return true
		}
	}
	return false
}

// NaturalSize returns the deck's preferred size for its current content,
// capped at the given width. Zero or negative maxWidth means uncapped.
func (d *Deck) NaturalSize(maxWidth float64) geom.Size {
	return deckSize(len(d.cards), d.config, maxWidth)
}

// PlayEntrance runs the entrance spring by toggling the entering class.
// The CSS transition does the actual animation.
func (d *Deck) PlayEntrance() {
	d.outer.AddCSSClass("entering")
	// One frame later the class comes off and the transition runs.
	glib.TimeoutAdd(uint(tweenInterval.Milliseconds()), func() bool {
		d.outer.RemoveCSSClass("entering")
		return false
	})
}

// applySelection reflects a selection change onto the cards and keeps
// the selected card in view. Runs on the GTK main loop.
func (d *Deck) applySelection(event selection.ChangeEvent) {
	for i, card := range d.cards {
		card.SetCycling(event.Cycling)
		card.SetSelected(i == event.Index)
	}

	if event.Type == selection.ChangeIndex {
		d.scrollToCard(event.Index)
	}
}

// scrollToCard tweens the horizontal adjustment so the card at index is
// centered in the viewport.
func (d *Deck) scrollToCard(index int) {
	if index < 0 || index >= len(d.cards) {
		return
	}

	adj := d.scrolled.HAdjustment()
	if adj == nil {
		return
	}

	cardSpan := float64(d.config.Display.CardWidth + cardGap)
	target := float64(index)*cardSpan + float64(d.config.Display.CardWidth)/2 - adj.PageSize()/2

	if target < adj.Lower() {
		target = adj.Lower()
	}
	if upper := adj.Upper() - adj.PageSize(); target > upper {
		target = upper
	}

	from := adj.Value()
	if from == target {
		return
	}

	d.scroll.start(d.config.Animation.Scroll.Duration(), easeOutCubic, func(progress float64) {
		adj.SetValue(lerp(from, target, progress))
	})
}

// deckSize computes the deck's preferred size for n cards.
func deckSize(n int, cfg *config.DaemonConfig, maxWidth float64) geom.Size {
	pad := float64(cfg.Display.Padding)

	w := pad * 2
	if n > 0 {
		w += float64(n*cfg.Display.CardWidth) + float64((n-1)*cardGap)
	}
	if maxWidth > 0 && w > maxWidth {
		w = maxWidth
	}

	h := pad*2 + float64(cfg.Display.CardHeight) + titleRowHeight + appNameRowHeight

	return geom.Size{W: w, H: h}
}
