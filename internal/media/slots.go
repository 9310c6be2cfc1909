package media

import "context"

// encodeSlots caps how many ffmpeg encodes run at once across all turns of a run.
type encodeSlots chan struct{}

func newEncodeSlots(capacity int) encodeSlots {
	if capacity <= 0 {
		capacity = 1
	}
	return make(encodeSlots, capacity)
}

// take blocks until a slot is free or ctx is done. The returned func frees the slot.
func (s encodeSlots) take(ctx context.Context) (func(), error) {
	select {
	case s <- struct{}{}:
		return func() { <-s }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// busy reports how many encodes currently hold a slot.
func (s encodeSlots) busy() int { return len(s) }
