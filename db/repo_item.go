package db

import (
	"context"
	"strings"

	"itemshare/models"
)

// Items

func (r *Repo) CreateItem(ctx context.Context, it *models.Item) error {
	return r.DB.WithContext(ctx).Create(it).Error
}

func (r *Repo) FindItemByID(ctx context.Context, id uint) (*models.Item, error) {
	var it models.Item
	if err := r.DB.WithContext(ctx).First(&it, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &it, nil
}

func (r *Repo) SaveItem(ctx context.Context, it *models.Item) error {
	return r.DB.WithContext(ctx).Save(it).Error
}

func (r *Repo) ListItemsByOwner(ctx context.Context, ownerID uint, offset, limit int) ([]models.Item, error) {
	var items []models.Item
	err := r.DB.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	return items, err
}

// SearchItems does a case-insensitive substring match over name and
// description, available items only.
func (r *Repo) SearchItems(ctx context.Context, text string, offset, limit int) ([]models.Item, error) {
	like := "%" + strings.ToLower(text) + "%"
	var items []models.Item
	err := r.DB.WithContext(ctx).
		Where("available = TRUE").
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	return items, err
}

func (r *Repo) ItemsByRequestID(ctx context.Context, requestID uint) ([]models.Item, error) {
	var items []models.Item
	err := r.DB.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

// Comments

func (r *Repo) CreateComment(ctx context.Context, c *models.Comment) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *Repo) CommentsForItem(ctx context.Context, itemID uint) ([]models.Comment, error) {
	var cs []models.Comment
	err := r.DB.WithContext(ctx).
		Preload("Author").
		Where("item_id = ?", itemID).
		Order("created_at ASC").
		Find(&cs).Error
	return cs, err
}
