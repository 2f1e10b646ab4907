package app

import (
	"sync"

	"edulite-assessment-service/internal/domain"
)

// SubmissionFeed fans submission events out to per-community subscribers.
// It is a UX affordance for instructor dashboards; the attempt state machine
// is authoritative whether or not anyone is listening.
type SubmissionFeed struct {
	mu          sync.Mutex
	subscribers map[string]map[chan domain.SubmissionEvent]struct{}
}

func NewSubmissionFeed() *SubmissionFeed {
	return &SubmissionFeed{
		subscribers: make(map[string]map[chan domain.SubmissionEvent]struct{}),
	}
}

// Subscribe returns a channel receiving submission events for a community.
// The caller must invoke the returned cancel function to avoid leaks.
func (f *SubmissionFeed) Subscribe(communityID string) (<-chan domain.SubmissionEvent, func()) {
	ch := make(chan domain.SubmissionEvent, 8)

	f.mu.Lock()
	if f.subscribers[communityID] == nil {
		f.subscribers[communityID] = make(map[chan domain.SubmissionEvent]struct{})
	}
	f.subscribers[communityID][ch] = struct{}{}
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		if subs, ok := f.subscribers[communityID]; ok {
			if _, ok := subs[ch]; ok {
				delete(subs, ch)
				close(ch)
			}
			if len(subs) == 0 {
				delete(f.subscribers, communityID)
			}
		}
		f.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers ev to every subscriber of its community. Slow subscribers
// lose their oldest buffered event rather than blocking the publisher.
func (f *SubmissionFeed) Publish(ev domain.SubmissionEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subscribers[ev.CommunityID] {
		select {
		case ch <- ev:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- ev
		}
	}
}
