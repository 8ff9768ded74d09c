package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskAnalyticsWarmup refreshes the cached dashboard and yearly reports.
	TaskAnalyticsWarmup = "analytics:warmup"
)

// AnalyticsWarmupPayload scopes a warmup run. A zero Year means the
// current year at execution time.
type AnalyticsWarmupPayload struct {
	Year int `json:"year"`
}

// NewAnalyticsWarmupTask constructs an Asynq task.
func NewAnalyticsWarmupTask(payload AnalyticsWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAnalyticsWarmup, data), nil
}
