package db

import (
	"context"
	"fmt"
	"time"

	"itemshare/models"
)

// Bookings

func (r *Repo) CreateBooking(ctx context.Context, b *models.Booking) error {
	return r.DB.WithContext(ctx).Create(b).Error
}

func (r *Repo) FindBookingByID(ctx context.Context, id uint) (*models.Booking, error) {
	var b models.Booking
	err := r.DB.WithContext(ctx).
		Preload("Item").
		Preload("Booker").
		First(&b, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

// DecideBooking moves a WAITING booking to the given terminal status. The
// status guard in the WHERE clause makes the transition a compare-and-set:
// of two concurrent deciders at most one sees a row to update.
func (r *Repo) DecideBooking(ctx context.Context, id uint, status string) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, models.StatusWaiting).
		Update("status", status)
	return res.RowsAffected > 0, res.Error
}

// ListBookings is the one listing query for both sides of a booking: the
// role picks between bookings a user placed and bookings on the user's
// items, the state picks the time/status window.
func (r *Repo) ListBookings(ctx context.Context, role models.BookingRole, userID uint, state models.BookingState, now time.Time, offset, limit int) ([]models.Booking, error) {
	q := r.DB.WithContext(ctx).Model(&models.Booking{}).
		Preload("Item").
		Preload("Booker")

	if role == models.RoleOwner {
		q = q.Joins(fmt.Sprintf("JOIN %s ON %s.id = %s.item_id", models.ItemTable, models.ItemTable, models.BookingTable)).
			Where(fmt.Sprintf("%s.owner_id = ?", models.ItemTable), userID)
	} else {
		q = q.Where("booker_id = ?", userID)
	}

	switch state {
	case models.StateAll:
		// no extra predicate
	case models.StateCurrent:
		q = q.Where("starting <= ? AND ending > ?", now, now)
	case models.StatePast:
		q = q.Where("ending < ?", now)
	case models.StateFuture:
		q = q.Where("starting > ?", now)
	case models.StateWaiting:
		q = q.Where("status = ?", models.StatusWaiting)
	case models.StateRejected:
		q = q.Where("status = ?", models.StatusRejected)
	default:
		return nil, fmt.Errorf("unexpected booking state %q", state)
	}

	var bs []models.Booking
	err := q.Order("ending DESC").
		Offset(offset).
		Limit(limit).
		Find(&bs).Error
	return bs, err
}

// LastBookingForItem is the approved booking with the greatest start not
// after now; nil when there is none.
func (r *Repo) LastBookingForItem(ctx context.Context, itemID uint, now time.Time) (*models.Booking, error) {
	return r.edgeBooking(ctx, itemID, "starting <= ?", "starting DESC", now)
}

// NextBookingForItem is the approved booking with the smallest start after
// now; nil when there is none.
func (r *Repo) NextBookingForItem(ctx context.Context, itemID uint, now time.Time) (*models.Booking, error) {
	return r.edgeBooking(ctx, itemID, "starting > ?", "starting ASC", now)
}

func (r *Repo) edgeBooking(ctx context.Context, itemID uint, cond, order string, now time.Time) (*models.Booking, error) {
	var bs []models.Booking
	err := r.DB.WithContext(ctx).
		Where("item_id = ? AND status = ?", itemID, models.StatusApproved).
		Where(cond, now).
		Order(order).
		Limit(1).
		Find(&bs).Error
	if err != nil || len(bs) == 0 {
		return nil, err
	}
	return &bs[0], nil
}

// HasFinishedBooking reports whether the booker has an approved booking of
// the item that already ended. Gates comment creation.
func (r *Repo) HasFinishedBooking(ctx context.Context, bookerID, itemID uint, now time.Time) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Booking{}).
		Where("booker_id = ? AND item_id = ? AND status = ? AND ending < ?",
			bookerID, itemID, models.StatusApproved, now).
		Count(&n).Error
	return n > 0, err
}
