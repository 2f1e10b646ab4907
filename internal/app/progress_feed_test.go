package app_test

import (
	"testing"
	"time"

	"edulite-assessment-service/internal/app"
	"edulite-assessment-service/internal/domain"
)

func TestFeedDeliversToCommunitySubscribers(t *testing.T) {
	feed := app.NewSubmissionFeed()

	ch, cancel := feed.Subscribe("c1")
	defer cancel()
	other, cancelOther := feed.Subscribe("c2")
	defer cancelOther()

	feed.Publish(domain.SubmissionEvent{CommunityID: "c1", AttemptID: "a1"})

	select {
	case ev := <-ch:
		if ev.AttemptID != "a1" {
			t.Fatalf("unexpected event %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatalf("subscriber got no event")
	}

	select {
	case ev := <-other:
		t.Fatalf("c2 subscriber received c1 event %+v", ev)
	default:
	}
}

func TestFeedCancelClosesChannel(t *testing.T) {
	feed := app.NewSubmissionFeed()
	ch, cancel := feed.Subscribe("c1")
	cancel()
	cancel() // second cancel is a no-op

	if _, open := <-ch; open {
		t.Fatalf("expected closed channel after cancel")
	}

	// Publishing after cancel must not panic or block.
	feed.Publish(domain.SubmissionEvent{CommunityID: "c1"})
}

func TestFeedDropsStaleEventsForSlowSubscribers(t *testing.T) {
	feed := app.NewSubmissionFeed()
	ch, cancel := feed.Subscribe("c1")
	defer cancel()

	for i := 0; i < 32; i++ {
		feed.Publish(domain.SubmissionEvent{CommunityID: "c1", AttemptID: "a"})
	}
	// The publisher never blocked; the buffer holds the most recent events.
	select {
	case <-ch:
	default:
		t.Fatalf("expected at least one buffered event")
	}
}
