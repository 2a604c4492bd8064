package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskStatsRollup is the task type for accumulating orders into
	// store_stats buckets.
	TaskStatsRollup = "stats:rollup"
)

// StatsRollupPayload selects the day to roll up, formatted 2006-01-02.
// Empty means the previous day.
type StatsRollupPayload struct {
	Day string `json:"day"`
}

// NewStatsRollupTask constructs an Asynq task.
func NewStatsRollupTask(payload StatsRollupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskStatsRollup, data), nil
}
