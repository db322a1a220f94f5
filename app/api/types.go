package api

import (
	"time"

	"github.com/ping13/star-collector/app/feed"
)

// Snapshot is a document rendered once at startup.
type Snapshot struct {
	Document    *feed.Document
	XML         string
	GeneratedAt time.Time
}

type TitleCounter interface {
	GetTitleCount() (int, error)
}

type Handler struct {
	snapshot *Snapshot
	titles   TitleCounter
}
