package tasks

import (
	"context"
	"time"

	"github.com/ping13/star-collector/app/feed"
)

// TaskInterface is one source drained during a collection run.
// Execute returns an error only for failures that must abort the run; source
// outages are logged and reported as an empty result.
type TaskInterface interface {
	Execute(ctx context.Context) ([]feed.Item, error)
	GetType() TaskType
	GetSource() string
	Start()
	GetDuration() time.Duration
}
