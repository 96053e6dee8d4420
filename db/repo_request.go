package db

import (
	"context"

	"itemshare/models"
)

// Item requests

func (r *Repo) CreateRequest(ctx context.Context, req *models.ItemRequest) error {
	return r.DB.WithContext(ctx).Create(req).Error
}

func (r *Repo) FindRequestByID(ctx context.Context, id uint) (*models.ItemRequest, error) {
	var req models.ItemRequest
	if err := r.DB.WithContext(ctx).First(&req, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &req, nil
}

func (r *Repo) ListRequestsByRequester(ctx context.Context, requesterID uint) ([]models.ItemRequest, error) {
	var reqs []models.ItemRequest
	err := r.DB.WithContext(ctx).
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *Repo) ListRequestsByOthers(ctx context.Context, requesterID uint, offset, limit int) ([]models.ItemRequest, error) {
	var reqs []models.ItemRequest
	err := r.DB.WithContext(ctx).
		Where("requester_id <> ?", requesterID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&reqs).Error
	return reqs, err
}
