package models

import "time"

const ItemTable = "share_items"
const CommentTable = "share_comments"

type Item struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"size:1000;not null" json:"description"`
	Available   bool      `gorm:"not null" json:"available"`
	OwnerID     uint      `gorm:"index;not null" json:"ownerId"`
	Owner       User      `json:"-"`
	RequestID   *uint     `gorm:"index" json:"requestId,omitempty"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// Comment is post-use feedback, only allowed after a finished approved booking.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"size:1000;not null" json:"text"`
	ItemID    uint      `gorm:"index;not null" json:"-"`
	AuthorID  uint      `gorm:"index;not null" json:"-"`
	Author    User      `json:"-"`
	CreatedAt time.Time `json:"created"`
}

func (Item) TableName() string    { return ItemTable }
func (Comment) TableName() string { return CommentTable }
