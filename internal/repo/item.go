package repo

import (
	"QRBoxer/internal/model"
	"context"

	"gorm.io/gorm"
)

// ItemRepository определяет контракт доступа к вещам.
type ItemRepository interface {
	Create(ctx context.Context, it *model.Item) error

	// GetByID возвращает вещь или gorm.ErrRecordNotFound.
	GetByID(ctx context.Context, id int64) (*model.Item, error)

	// ListByBox возвращает вещи в коробке.
	ListByBox(ctx context.Context, boxID int64) ([]model.Item, error)

	// ListByUsername возвращает все вещи пользователя, поднимаясь
	// по цепочке items -> boxes -> moves. Это выборка для списка
	// «мои вещи» у вью-слоя.
	ListByUsername(ctx context.Context, username string) ([]model.Item, error)

	// ListAll — все вещи, нужен только администратору.
	ListAll(ctx context.Context) ([]model.Item, error)

	Update(ctx context.Context, id int64, updates map[string]any) error

	Delete(ctx context.Context, id int64) error
}

type itemRepo struct {
	db *gorm.DB
}

// NewItemRepository создаёт реализацию репозитория для Item.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepo{db: db}
}

func (r *itemRepo) Create(ctx context.Context, it *model.Item) error {
	return r.db.WithContext(ctx).Create(it).Error
}

func (r *itemRepo) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	var it model.Item
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&it).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *itemRepo) ListByBox(ctx context.Context, boxID int64) ([]model.Item, error) {
	var items []model.Item
	err := r.db.WithContext(ctx).
		Where("box_id = ?", boxID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func (r *itemRepo) ListByUsername(ctx context.Context, username string) ([]model.Item, error) {
	var items []model.Item
	err := r.db.WithContext(ctx).
		Joins("JOIN boxes ON boxes.id = items.box_id").
		Joins("JOIN moves ON moves.id = boxes.move_id").
		Where("moves.username = ?", username).
		Order("items.id ASC").
		Find(&items).Error
	return items, err
}

func (r *itemRepo) ListAll(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	err := r.db.WithContext(ctx).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *itemRepo) Update(ctx context.Context, id int64, updates map[string]any) error {
	tx := r.db.WithContext(ctx).Model(&model.Item{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *itemRepo) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Item{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
