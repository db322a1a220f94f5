package tasks

import (
	"time"
)

type TaskType string

const (
	TaskTypeCollectStatuses TaskType = "collect_statuses"
	TaskTypeCollectFeed     TaskType = "collect_feed"
)

type Task struct {
	Type      TaskType
	Source    string
	StartedAt *time.Time
}

func (t *Task) GetType() TaskType {
	return t.Type
}

func (t *Task) GetSource() string {
	return t.Source
}

func (t *Task) Start() {
	now := time.Now()
	t.StartedAt = &now
}

func (t *Task) GetDuration() time.Duration {
	if t.StartedAt == nil {
		return 0
	}
	return time.Since(*t.StartedAt)
}

func NewTask(taskType TaskType, source string) Task {
	return Task{
		Type:   taskType,
		Source: source,
	}
}
