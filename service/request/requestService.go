// Package request holds the board rules: wish posts and the items created to
// fulfill them.
package request

import (
	"context"
	"errors"
	"strings"

	"itemshare/apperr"
	"itemshare/db"
	"itemshare/models"
)

type Repo interface {
	FindUserByID(ctx context.Context, id uint) (*models.User, error)

	CreateRequest(ctx context.Context, req *models.ItemRequest) error
	FindRequestByID(ctx context.Context, id uint) (*models.ItemRequest, error)
	ListRequestsByRequester(ctx context.Context, requesterID uint) ([]models.ItemRequest, error)
	ListRequestsByOthers(ctx context.Context, requesterID uint, offset, limit int) ([]models.ItemRequest, error)

	ItemsByRequestID(ctx context.Context, requestID uint) ([]models.Item, error)
}

type Service struct{ repo Repo }

func New(r Repo) *Service { return &Service{repo: r} }

// View is a request annotated with the items created against it.
type View struct {
	models.ItemRequest
	Items []models.Item `json:"items"`
}

func (s *Service) Create(ctx context.Context, requesterID uint, description string) (*View, error) {
	if err := s.resolveUser(ctx, requesterID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(description) == "" {
		return nil, apperr.Invalid("description is required")
	}
	req := &models.ItemRequest{Description: description, RequesterID: requesterID}
	if err := s.repo.CreateRequest(ctx, req); err != nil {
		return nil, err
	}
	return &View{ItemRequest: *req, Items: []models.Item{}}, nil
}

func (s *Service) ListMine(ctx context.Context, requesterID uint) ([]View, error) {
	if err := s.resolveUser(ctx, requesterID); err != nil {
		return nil, err
	}
	reqs, err := s.repo.ListRequestsByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return s.annotate(ctx, reqs)
}

func (s *Service) ListOthers(ctx context.Context, requesterID uint, from, size int) ([]View, error) {
	if from < 0 || size < 1 {
		return nil, apperr.Invalid("invalid paging window")
	}
	if err := s.resolveUser(ctx, requesterID); err != nil {
		return nil, err
	}
	reqs, err := s.repo.ListRequestsByOthers(ctx, requesterID, from, size)
	if err != nil {
		return nil, err
	}
	return s.annotate(ctx, reqs)
}

// Get resolves the viewer but does not authorize against it: any known user
// may view any request.
func (s *Service) Get(ctx context.Context, viewerID, requestID uint) (*View, error) {
	if err := s.resolveUser(ctx, viewerID); err != nil {
		return nil, err
	}
	req, err := s.repo.FindRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, apperr.NotFound("request not found")
		}
		return nil, err
	}
	views, err := s.annotate(ctx, []models.ItemRequest{*req})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *Service) annotate(ctx context.Context, reqs []models.ItemRequest) ([]View, error) {
	out := make([]View, 0, len(reqs))
	for i := range reqs {
		items, err := s.repo.ItemsByRequestID(ctx, reqs[i].ID)
		if err != nil {
			return nil, err
		}
		if items == nil {
			items = []models.Item{}
		}
		out = append(out, View{ItemRequest: reqs[i], Items: items})
	}
	return out, nil
}

func (s *Service) resolveUser(ctx context.Context, id uint) error {
	if _, err := s.repo.FindUserByID(ctx, id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return apperr.NotFound("user not found")
		}
		return err
	}
	return nil
}
