package models

import (
	"time"

	"github.com/google/uuid"
)

type ReadingStatusType string

const (
	ReadingBacklog   ReadingStatusType = "Backlog"
	ReadingCompleted ReadingStatusType = "Completed"
	ReadingAbandoned ReadingStatusType = "Abandoned"
)

var ReadingStatusTypes = []ReadingStatusType{
	ReadingBacklog,
	ReadingCompleted,
	ReadingAbandoned,
}

func (s ReadingStatusType) Valid() bool {
	for _, v := range ReadingStatusTypes {
		if s == v {
			return true
		}
	}
	return false
}

// ReadingStatus tracks where the owner is with a book.
type ReadingStatus struct {
	BookID    uuid.UUID         `json:"bookId"`
	Status    ReadingStatusType `json:"status"`
	UpdatedAt time.Time         `json:"updatedAt"`
}
