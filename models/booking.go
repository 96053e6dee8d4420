package models

import "time"

const BookingTable = "share_bookings"

// Booking decision status. WAITING is the only state a decision can leave.
const (
	StatusWaiting  = "WAITING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// BookingState is the listing filter over a user's bookings.
type BookingState string

const (
	StateAll      BookingState = "ALL"
	StateCurrent  BookingState = "CURRENT"
	StatePast     BookingState = "PAST"
	StateFuture   BookingState = "FUTURE"
	StateWaiting  BookingState = "WAITING"
	StateRejected BookingState = "REJECTED"
)

// BookingRole selects whose bookings a listing query sees: the ones a user
// placed, or the ones placed on the user's items.
type BookingRole int

const (
	RoleBooker BookingRole = iota
	RoleOwner
)

// Start/End map to starting/ending columns; END is reserved in SQL.
type Booking struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Start     time.Time `gorm:"column:starting;index;not null" json:"start"`
	End       time.Time `gorm:"column:ending;index;not null" json:"end"`
	ItemID    uint      `gorm:"index;not null" json:"-"`
	Item      Item      `json:"item"`
	BookerID  uint      `gorm:"index;not null" json:"-"`
	Booker    User      `json:"booker"`
	Status    string    `gorm:"size:20;not null;default:'WAITING'" json:"status"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Booking) TableName() string { return BookingTable }
