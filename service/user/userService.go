// Package user holds the registry rules: unique-email account records every
// other family references by id.
package user

import (
	"context"
	"errors"
	"strings"

	"itemshare/apperr"
	"itemshare/db"
	"itemshare/models"
)

type Repo interface {
	CreateUser(ctx context.Context, u *models.User) error
	FindUserByID(ctx context.Context, id uint) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	SaveUser(ctx context.Context, u *models.User) error
	DeleteUserByID(ctx context.Context, id uint) error
}

type Service struct{ repo Repo }

func New(r Repo) *Service { return &Service{repo: r} }

// Patch applies only the fields that were supplied.
type Patch struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func (s *Service) Create(ctx context.Context, name, email string) (*models.User, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" {
		return nil, apperr.Invalid("name and email are required")
	}
	if !strings.Contains(email, "@") {
		return nil, apperr.Invalid("malformed email")
	}
	u := &models.User{Name: name, Email: email}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		if errors.Is(err, db.ErrDuplicateEmail) {
			return nil, apperr.Conflict("email already in use")
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*models.User, error) {
	u, err := s.repo.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) List(ctx context.Context) ([]models.User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *Service) Update(ctx context.Context, id uint, p Patch) (*models.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		if !strings.Contains(*p.Email, "@") {
			return nil, apperr.Invalid("malformed email")
		}
		u.Email = *p.Email
	}
	if err := s.repo.SaveUser(ctx, u); err != nil {
		if errors.Is(err, db.ErrDuplicateEmail) {
			return nil, apperr.Conflict("email already in use")
		}
		return nil, err
	}
	return u, nil
}

// Delete is idempotent; removing an unknown id is not an error.
func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.repo.DeleteUserByID(ctx, id)
}
