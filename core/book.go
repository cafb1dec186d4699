package core

// Book is the order-book: a sliding window of per-time-step permit maps.
// frames[0] holds the permits for the current tick t0, frames[k] those for
// t0+k. Frames are created lazily on first access to a future time and
// dropped irrecoverably when the window advances.
//
// The book is owned exclusively by the round driver; it is not safe for
// concurrent use.
type Book[R comparable] struct {
	t0     uint64
	window *uint64
	frames []map[Permit[R]]*Entry
	ool    Entry
}

// NewBook returns an empty book starting at tick 0. A non-nil window bounds
// look-ahead: times beyond t0+1+window are out of limits. A nil window
// leaves growth bounded only by the largest future time ever touched.
func NewBook[R comparable](window *uint64) *Book[R] {
	return &Book[R]{
		window: window,
		ool:    Entry{Current: PrivateStatus{Kind: StatusOutOfLimits}},
	}
}

// T0 is the current tick.
func (b *Book[R]) T0() uint64 { return b.t0 }

// Depth is the number of time frames currently materialized.
func (b *Book[R]) Depth() int { return len(b.frames) }

// Touch resolves the entry for permit (r, t), materializing frames and a
// default primary-market listing as needed. Times in the past or beyond the
// configured window resolve to a shared out-of-limits sentinel; callers
// must check Current.Kind before mutating.
//
// Agents may observe the state at t0 even though bids for t0 itself are a
// driver-level concern; the book only rejects t < t0.
func (b *Book[R]) Touch(r R, t uint64) *Entry {
	if t < b.t0 {
		return &b.ool
	}
	if b.window != nil && t > b.t0+1+*b.window {
		return &b.ool
	}
	for t-b.t0 >= uint64(len(b.frames)) {
		b.frames = append(b.frames, make(map[Permit[R]]*Entry))
	}
	frame := b.frames[t-b.t0]
	key := Permit[R]{Region: r, Time: t}
	e, ok := frame[key]
	if !ok {
		e = &Entry{Current: NewListing()}
		frame[key] = e
	}
	return e
}

// Peek returns a copy of the entry for (r, t). Unlike Touch it is safe to
// hand to outside observers: the returned entry shares no storage with the
// book.
func (b *Book[R]) Peek(r R, t uint64) Entry {
	e := b.Touch(r, t)
	return Entry{
		Current: e.Current,
		History: append([]TradeValue(nil), e.History...),
	}
}

// Advance drops the frame for the current tick, if any, and moves t0
// forward by one. Permits whose time has passed become unreachable.
func (b *Book[R]) Advance() {
	if len(b.frames) > 0 {
		b.frames[0] = nil
		b.frames = b.frames[1:]
	}
	b.t0++
}
