package redis

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"

	"edulite-assessment-service/internal/domain"
)

func TestProgressSourceReadsCounters(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	key := CounterKey("c1", domain.TaskVotes, "question")
	mr.HSet(key, "s1", "5")
	mr.HSet(key, "s2", "-2")
	mr.HSet(key, "s3", "oops") // malformed, skipped

	source := NewProgressSource(newClient(mr))
	counts, err := source.Counts(context.Background(), "c1", domain.TaskVotes, "question")
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("expected 2 parsed counters, got %v", counts)
	}
	if counts["s1"] != 5 || counts["s2"] != -2 {
		t.Fatalf("unexpected counters %v", counts)
	}
}

func TestProgressSourceEmptyHash(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	source := NewProgressSource(newClient(mr))
	counts, err := source.Counts(context.Background(), "c1", domain.TaskPostings, "answer")
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if len(counts) != 0 {
		t.Fatalf("expected no counters, got %v", counts)
	}
}
