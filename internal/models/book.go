package models

import (
	"time"

	"github.com/google/uuid"
)

type OwnershipStatus string

const (
	OwnershipWantToBuy      OwnershipStatus = "WantToBuy"
	OwnershipOwn            OwnershipStatus = "Own"
	OwnershipSoldOrGaveAway OwnershipStatus = "SoldOrGaveAway"
)

// OwnershipStatuses lists every valid ownership status in display order.
var OwnershipStatuses = []OwnershipStatus{
	OwnershipWantToBuy,
	OwnershipOwn,
	OwnershipSoldOrGaveAway,
}

func (s OwnershipStatus) Valid() bool {
	for _, v := range OwnershipStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Book is a single title in the personal library.
type Book struct {
	Versioned
	ID              uuid.UUID       `json:"id"`
	Title           string          `json:"title"`
	Author          string          `json:"author"`
	Description     *string         `json:"description,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
	ISBN            *string         `json:"isbn,omitempty"`
	PublishedYear   *int            `json:"publishedYear,omitempty"`
	PageCount       *int            `json:"pageCount,omitempty"`
	OwnershipStatus OwnershipStatus `json:"ownershipStatus"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func (b *Book) GetID() string { return b.ID.String() }
