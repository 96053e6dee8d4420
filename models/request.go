package models

import "time"

const RequestTable = "share_item_requests"

// ItemRequest is a wish for an item that does not exist yet. Owners fulfill
// one by creating an item that points back at it. Immutable once created.
type ItemRequest struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Description string    `gorm:"size:1000;not null" json:"description"`
	RequesterID uint      `gorm:"index;not null" json:"requesterId"`
	Requester   User      `json:"-"`
	CreatedAt   time.Time `json:"created"`
}

func (ItemRequest) TableName() string { return RequestTable }
