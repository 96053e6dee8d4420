// Package booking holds the ledger rules: time-window validation, the
// single WAITING→APPROVED|REJECTED transition, and the role/state listings.
package booking

import (
	"context"
	"errors"
	"time"

	"itemshare/apperr"
	"itemshare/db"
	"itemshare/models"
)

type Repo interface {
	FindUserByID(ctx context.Context, id uint) (*models.User, error)
	FindItemByID(ctx context.Context, id uint) (*models.Item, error)

	CreateBooking(ctx context.Context, b *models.Booking) error
	FindBookingByID(ctx context.Context, id uint) (*models.Booking, error)
	DecideBooking(ctx context.Context, id uint, status string) (bool, error)
	ListBookings(ctx context.Context, role models.BookingRole, userID uint, state models.BookingState, now time.Time, offset, limit int) ([]models.Booking, error)
}

type Service struct {
	repo Repo
	now  func() time.Time
}

func New(r Repo) *Service { return &Service{repo: r, now: time.Now} }

// NewBooking is the creation payload; nil times mean "missing".
type NewBooking struct {
	ItemID uint       `json:"itemId"`
	Start  *time.Time `json:"start"`
	End    *time.Time `json:"end"`
}

// ParseState maps the filter keyword onto the enum; anything unrecognized is
// its own error kind, distinct from plain validation.
func ParseState(s string) (models.BookingState, error) {
	switch models.BookingState(s) {
	case models.StateAll, models.StateCurrent, models.StatePast,
		models.StateFuture, models.StateWaiting, models.StateRejected:
		return models.BookingState(s), nil
	}
	return "", apperr.UnsupportedState(s)
}

func (s *Service) Create(ctx context.Context, bookerID uint, in NewBooking) (*models.Booking, error) {
	it, err := s.repo.FindItemByID(ctx, in.ItemID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, apperr.NotFound("item not found")
		}
		return nil, err
	}
	booker, err := s.repo.FindUserByID(ctx, bookerID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, apperr.NotFound("booker not found")
		}
		return nil, err
	}
	if it.OwnerID == bookerID {
		return nil, apperr.NotFound("cannot book own item")
	}
	if !it.Available {
		return nil, apperr.Invalid("item is not available")
	}
	if in.Start == nil || in.End == nil {
		return nil, apperr.Invalid("invalid booking window")
	}
	now := s.now()
	if !in.End.After(*in.Start) || in.Start.Before(now) || in.End.Before(now) {
		return nil, apperr.Invalid("invalid booking window")
	}

	b := &models.Booking{
		Start:    *in.Start,
		End:      *in.End,
		ItemID:   it.ID,
		BookerID: bookerID,
		Status:   models.StatusWaiting,
	}
	if err := s.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}
	b.Item = *it
	b.Booker = *booker
	return b, nil
}

// Decide settles a WAITING booking. Only the item's owner may decide, and the
// transition happens at most once: the storage update is guarded by the
// current status, so a concurrent second decide loses and fails here.
func (s *Service) Decide(ctx context.Context, deciderID, bookingID uint, approve bool) (*models.Booking, error) {
	if _, err := s.repo.FindUserByID(ctx, deciderID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	b, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Item.OwnerID != deciderID {
		return nil, apperr.NotFound("not the item owner")
	}
	if b.Status != models.StatusWaiting {
		return nil, apperr.Invalid("already decided")
	}

	status := models.StatusRejected
	if approve {
		status = models.StatusApproved
	}
	ok, err := s.repo.DecideBooking(ctx, bookingID, status)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Invalid("already decided")
	}
	b.Status = status
	return b, nil
}

// Get is visible to the booker and the item's owner only; to anyone else the
// booking simply does not exist.
func (s *Service) Get(ctx context.Context, viewerID, bookingID uint) (*models.Booking, error) {
	if _, err := s.repo.FindUserByID(ctx, viewerID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	b, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.BookerID != viewerID && b.Item.OwnerID != viewerID {
		return nil, apperr.NotFound("not authorized to view")
	}
	return b, nil
}

// List returns bookings visible to userID in the given role, filtered by the
// state keyword, newest ending first.
func (s *Service) List(ctx context.Context, role models.BookingRole, userID uint, state string, from, size int) ([]models.Booking, error) {
	parsed, err := ParseState(state)
	if err != nil {
		return nil, err
	}
	if from < 0 || size < 1 {
		return nil, apperr.Invalid("invalid paging window")
	}
	if _, err := s.repo.FindUserByID(ctx, userID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return s.repo.ListBookings(ctx, role, userID, parsed, s.now(), from, size)
}

func (s *Service) findBooking(ctx context.Context, id uint) (*models.Booking, error) {
	b, err := s.repo.FindBookingByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, apperr.NotFound("booking not found")
		}
		return nil, err
	}
	return b, nil
}
