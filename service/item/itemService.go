// Package item holds the catalog rules: owner-scoped listings with booking
// summaries, availability-filtered search, and booking-gated comments.
package item

import (
	"context"
	"errors"
	"strings"
	"time"

	"itemshare/apperr"
	"itemshare/db"
	"itemshare/models"
)

type Repo interface {
	FindUserByID(ctx context.Context, id uint) (*models.User, error)

	CreateItem(ctx context.Context, it *models.Item) error
	FindItemByID(ctx context.Context, id uint) (*models.Item, error)
	SaveItem(ctx context.Context, it *models.Item) error
	ListItemsByOwner(ctx context.Context, ownerID uint, offset, limit int) ([]models.Item, error)
	SearchItems(ctx context.Context, text string, offset, limit int) ([]models.Item, error)

	FindRequestByID(ctx context.Context, id uint) (*models.ItemRequest, error)

	CreateComment(ctx context.Context, c *models.Comment) error
	CommentsForItem(ctx context.Context, itemID uint) ([]models.Comment, error)

	LastBookingForItem(ctx context.Context, itemID uint, now time.Time) (*models.Booking, error)
	NextBookingForItem(ctx context.Context, itemID uint, now time.Time) (*models.Booking, error)
	HasFinishedBooking(ctx context.Context, bookerID, itemID uint, now time.Time) (bool, error)
}

// SearchCache accelerates search pages; any implementation may miss freely.
type SearchCache interface {
	Lookup(ctx context.Context, text string, from, size int) ([]models.Item, bool)
	Store(ctx context.Context, text string, from, size int, items []models.Item)
	Invalidate(ctx context.Context)
}

type Service struct {
	repo  Repo
	cache SearchCache // nil disables caching
	now   func() time.Time
}

func New(r Repo, c SearchCache) *Service {
	return &Service{repo: r, cache: c, now: time.Now}
}

// NewItem is the creation payload. Available is a pointer so "unset" is
// distinguishable from false.
type NewItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
	RequestID   uint   `json:"requestId"`
}

type Patch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// BookingRef is the flattened booking summary attached to an item view.
type BookingRef struct {
	ID       uint `json:"id"`
	BookerID uint `json:"bookerId"`
}

type CommentView struct {
	ID         uint      `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

// Detail is an item with its transient attachments.
type Detail struct {
	models.Item
	LastBooking *BookingRef   `json:"lastBooking,omitempty"`
	NextBooking *BookingRef   `json:"nextBooking,omitempty"`
	Comments    []CommentView `json:"comments"`
}

func (s *Service) Create(ctx context.Context, ownerID uint, in NewItem) (*models.Item, error) {
	if _, err := s.repo.FindUserByID(ctx, ownerID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, apperr.NotFound("owner not found")
		}
		return nil, err
	}
	if in.Available == nil {
		return nil, apperr.Invalid("available is required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperr.Invalid("name is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, apperr.Invalid("description is required")
	}

	it := &models.Item{
		Name:        in.Name,
		Description: in.Description,
		Available:   *in.Available,
		OwnerID:     ownerID,
	}
	// A reference to an unknown request is dropped, not rejected.
	if in.RequestID != 0 {
		if req, err := s.repo.FindRequestByID(ctx, in.RequestID); err == nil {
			it.RequestID = &req.ID
		} else if !errors.Is(err, db.ErrNotFound) {
			return nil, err
		}
	}
	if err := s.repo.CreateItem(ctx, it); err != nil {
		return nil, err
	}
	s.invalidateSearch(ctx)
	return it, nil
}

func (s *Service) Update(ctx context.Context, itemID, callerID uint, p Patch) (*models.Item, error) {
	it, err := s.findItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it.OwnerID != callerID {
		return nil, apperr.NotFound("not your item")
	}
	if p.Name != nil {
		it.Name = *p.Name
	}
	if p.Description != nil {
		it.Description = *p.Description
	}
	if p.Available != nil {
		it.Available = *p.Available
	}
	if err := s.repo.SaveItem(ctx, it); err != nil {
		return nil, err
	}
	s.invalidateSearch(ctx)
	return it, nil
}

// Get returns the item with comments for anyone, and with last/next approved
// booking summaries only when the viewer owns it.
func (s *Service) Get(ctx context.Context, itemID, viewerID uint) (*Detail, error) {
	it, err := s.findItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	d := &Detail{Item: *it}
	if it.OwnerID == viewerID {
		if err := s.attachEdges(ctx, d); err != nil {
			return nil, err
		}
	}
	if err := s.attachComments(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) ListForOwner(ctx context.Context, ownerID uint, from, size int) ([]Detail, error) {
	if err := checkPage(from, size); err != nil {
		return nil, err
	}
	items, err := s.repo.ListItemsByOwner(ctx, ownerID, from, size)
	if err != nil {
		return nil, err
	}
	out := make([]Detail, 0, len(items))
	for i := range items {
		d := Detail{Item: items[i]}
		if err := s.attachEdges(ctx, &d); err != nil {
			return nil, err
		}
		if err := s.attachComments(ctx, &d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Search returns available items matching text; blank text short-circuits to
// an empty result without touching storage.
func (s *Service) Search(ctx context.Context, text string, from, size int) ([]models.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []models.Item{}, nil
	}
	if err := checkPage(from, size); err != nil {
		return nil, err
	}
	if s.cache != nil {
		if items, ok := s.cache.Lookup(ctx, text, from, size); ok {
			return items, nil
		}
	}
	items, err := s.repo.SearchItems(ctx, text, from, size)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Store(ctx, text, from, size, items)
	}
	return items, nil
}

// AddComment lets a past renter leave feedback. Eligibility is an approved
// booking of the item by the author that has already ended.
func (s *Service) AddComment(ctx context.Context, authorID, itemID uint, text string) (*CommentView, error) {
	author, err := s.repo.FindUserByID(ctx, authorID)
	if err != nil && !errors.Is(err, db.ErrNotFound) {
		return nil, err
	}
	it, err2 := s.repo.FindItemByID(ctx, itemID)
	if err2 != nil && !errors.Is(err2, db.ErrNotFound) {
		return nil, err2
	}
	if author == nil || it == nil || strings.TrimSpace(text) == "" {
		return nil, apperr.Invalid("invalid comment")
	}
	ok, err := s.repo.HasFinishedBooking(ctx, authorID, itemID, s.now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Invalid("user did not book this item")
	}
	c := &models.Comment{Text: text, ItemID: itemID, AuthorID: authorID}
	if err := s.repo.CreateComment(ctx, c); err != nil {
		return nil, err
	}
	return &CommentView{ID: c.ID, Text: c.Text, AuthorName: author.Name, Created: c.CreatedAt}, nil
}

func (s *Service) findItem(ctx context.Context, itemID uint) (*models.Item, error) {
	it, err := s.repo.FindItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, apperr.NotFound("item not found")
		}
		return nil, err
	}
	return it, nil
}

func (s *Service) attachEdges(ctx context.Context, d *Detail) error {
	now := s.now()
	last, err := s.repo.LastBookingForItem(ctx, d.ID, now)
	if err != nil {
		return err
	}
	if last != nil {
		d.LastBooking = &BookingRef{ID: last.ID, BookerID: last.BookerID}
	}
	next, err := s.repo.NextBookingForItem(ctx, d.ID, now)
	if err != nil {
		return err
	}
	if next != nil {
		d.NextBooking = &BookingRef{ID: next.ID, BookerID: next.BookerID}
	}
	return nil
}

func (s *Service) attachComments(ctx context.Context, d *Detail) error {
	cs, err := s.repo.CommentsForItem(ctx, d.ID)
	if err != nil {
		return err
	}
	d.Comments = make([]CommentView, 0, len(cs))
	for _, c := range cs {
		d.Comments = append(d.Comments, CommentView{
			ID:         c.ID,
			Text:       c.Text,
			AuthorName: c.Author.Name,
			Created:    c.CreatedAt,
		})
	}
	return nil
}

func (s *Service) invalidateSearch(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}

func checkPage(from, size int) error {
	if from < 0 || size < 1 {
		return apperr.Invalid("invalid paging window")
	}
	return nil
}
