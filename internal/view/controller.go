package view

import (
	"sort"
	"time"

	"github.com/alexisbeaulieu97/ideavault/internal/domain/idea"
)

// NoticeTTL is how long a success notice stays visible.
const NoticeTTL = 3 * time.Second

// Card is one idea as it should be rendered.
type Card struct {
	Record   idea.Record
	Full     bool
	Expanded bool
	Pending  bool
}

// Controller holds the presentation state of one dashboard session. It does
// no I/O and is owned by a single goroutine.
type Controller struct {
	tab      Tab
	mode     DisplayMode
	order    SortOrder
	expanded map[string]struct{}

	errMsg   string
	notice   string
	noticeAt time.Time
	now      func() time.Time
}

// Option customises a Controller.
type Option func(*Controller)

// WithClock overrides the clock used for notice expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// WithDisplayMode sets the initial display mode.
func WithDisplayMode(mode DisplayMode) Option {
	return func(c *Controller) {
		c.mode = mode
	}
}

// WithSortOrder sets the initial sort order.
func WithSortOrder(order SortOrder) Option {
	return func(c *Controller) {
		c.order = order
	}
}

// NewController starts on the submit tab in summary mode with nothing expanded.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		tab:      TabSubmit,
		mode:     DisplaySummary,
		order:    SortNewest,
		expanded: make(map[string]struct{}),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Tab returns the active tab.
func (c *Controller) Tab() Tab { return c.tab }

// SetTab switches tabs. It reports true when the ideas tab was entered,
// which is the caller's cue to reload the list.
func (c *Controller) SetTab(tab Tab) bool {
	entering := tab == TabIdeas && c.tab != TabIdeas
	c.tab = tab
	return entering
}

// DisplayMode returns the global display mode.
func (c *Controller) DisplayMode() DisplayMode { return c.mode }

// SetDisplayMode changes the global display mode. Per-card expansion is kept.
func (c *Controller) SetDisplayMode(mode DisplayMode) {
	c.mode = mode
}

// ToggleDisplayMode flips between summary and full.
func (c *Controller) ToggleDisplayMode() DisplayMode {
	if c.mode == DisplayFull {
		c.mode = DisplaySummary
	} else {
		c.mode = DisplayFull
	}
	return c.mode
}

// Toggle flips the expansion of a single card.
func (c *Controller) Toggle(id string) {
	if _, ok := c.expanded[id]; ok {
		delete(c.expanded, id)
		return
	}
	c.expanded[id] = struct{}{}
}

// Expanded reports whether a card was individually expanded.
func (c *Controller) Expanded(id string) bool {
	_, ok := c.expanded[id]
	return ok
}

// ShowFull reports whether the card should render in detail.
func (c *Controller) ShowFull(id string) bool {
	return c.mode == DisplayFull || c.Expanded(id)
}

// SortOrder returns the active sort order.
func (c *Controller) SortOrder() SortOrder { return c.order }

// SetSortOrder changes the sort order.
func (c *Controller) SetSortOrder(order SortOrder) {
	c.order = order
}

// CycleSort advances to the next sort order.
func (c *Controller) CycleSort() SortOrder {
	c.order = c.order.Next()
	return c.order
}

// SetError shows a global error banner until dismissed.
func (c *Controller) SetError(msg string) {
	c.errMsg = msg
}

// Error returns the current banner, if any.
func (c *Controller) Error() string { return c.errMsg }

// DismissError clears the banner.
func (c *Controller) DismissError() {
	c.errMsg = ""
}

// Notify shows a success notice for NoticeTTL.
func (c *Controller) Notify(msg string) {
	c.notice = msg
	c.noticeAt = c.now()
}

// Notice returns the success notice while it is still fresh.
func (c *Controller) Notice() (string, bool) {
	if c.notice == "" || c.now().Sub(c.noticeAt) >= NoticeTTL {
		return "", false
	}
	return c.notice, true
}

// Cards derives the rendered cards from a registry snapshot.
func (c *Controller) Cards(records []idea.Record) []Card {
	cards := make([]Card, len(records))
	for i, record := range records {
		cards[i] = Card{
			Record:   record,
			Full:     c.ShowFull(record.ID),
			Expanded: c.Expanded(record.ID),
			Pending:  record.Evaluation == nil,
		}
	}
	if key := scoreKey(c.order); key != nil {
		sort.SliceStable(cards, func(i, j int) bool {
			a, aok := key(cards[i].Record)
			b, bok := key(cards[j].Record)
			if aok != bok {
				return aok
			}
			return a > b
		})
	}
	return cards
}

func scoreKey(order SortOrder) func(idea.Record) (int, bool) {
	pick := func(f func(*idea.Scores) int) func(idea.Record) (int, bool) {
		return func(r idea.Record) (int, bool) {
			if !r.Evaluation.Scored() {
				return 0, false
			}
			return f(r.Evaluation.Scores), true
		}
	}
	switch order {
	case SortScore:
		return pick(func(s *idea.Scores) int { return s.Overall })
	case SortInnovation:
		return pick(func(s *idea.Scores) int { return s.Innovation })
	case SortFeasibility:
		return pick(func(s *idea.Scores) int { return s.Feasibility })
	default:
		return nil
	}
}
