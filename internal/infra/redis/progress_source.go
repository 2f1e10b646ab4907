package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"edulite-assessment-service/internal/domain"
)

// ProgressSource reads raw vote/post counters maintained by the community
// services. Counters live in hashes keyed per community and task type:
//
//	HSET community:{communityID}:counters:{type}:{contentType} {studentID} {count}
//
// This service only consumes the integers; it never writes them.
type ProgressSource struct {
	client *redis.Client
}

func NewProgressSource(client *redis.Client) *ProgressSource {
	return &ProgressSource{client: client}
}

func (s *ProgressSource) Counts(ctx context.Context, communityID string, taskType domain.TaskType, contentType string) (map[string]int, error) {
	raw, err := s.client.HGetAll(ctx, CounterKey(communityID, taskType, contentType)).Result()
	if err != nil {
		return nil, fmt.Errorf("read counters: %w", err)
	}

	counts := make(map[string]int, len(raw))
	for studentID, value := range raw {
		count, err := strconv.Atoi(value)
		if err != nil {
			// Skip malformed entries rather than failing a whole aggregation.
			continue
		}
		counts[studentID] = count
	}
	return counts, nil
}

// CounterKey is exported so seeding jobs and tests build the same key.
func CounterKey(communityID string, taskType domain.TaskType, contentType string) string {
	return "community:" + communityID + ":counters:" + string(taskType) + ":" + contentType
}
