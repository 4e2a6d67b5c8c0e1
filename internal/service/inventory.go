package service

import (
	"QRBoxer/internal/auth"
	"QRBoxer/internal/authz"
	"QRBoxer/internal/model"
	"QRBoxer/internal/repo"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InventoryService — операции над иерархией владения
// Move -> Box -> Item. Каждая операция принимает действующую Identity,
// восстанавливает цепочку до владельца и прогоняет её через authz.
// Оборванная цепочка всегда отдаётся как ErrNotFound: чужому вызову
// не раскрывается даже факт существования ресурса.
type InventoryService struct {
	moves  repo.MoveRepository
	boxes  repo.BoxRepository
	items  repo.ItemRepository
	logger *zap.SugaredLogger
}

// NewInventoryService создаёт InventoryService.
func NewInventoryService(moves repo.MoveRepository, boxes repo.BoxRepository, items repo.ItemRepository, logger *zap.SugaredLogger) *InventoryService {
	return &InventoryService{moves: moves, boxes: boxes, items: items, logger: logger}
}

// MoveUpdate — частичное обновление переезда.
type MoveUpdate struct {
	Location *string
	Date     *time.Time
}

// --- resolution helpers ---

// resolveMove возвращает переезд или ErrNotFound.
func (s *InventoryService) resolveMove(ctx context.Context, moveID int64) (*model.Move, error) {
	m, err := s.moves.GetByID(ctx, moveID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// resolveBox поднимается box -> move; обрыв на любом шаге — ErrNotFound.
func (s *InventoryService) resolveBox(ctx context.Context, boxID int64) (*model.Box, *model.Move, error) {
	b, err := s.boxes.GetByID(ctx, boxID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	m, err := s.resolveMove(ctx, b.MoveID)
	if err != nil {
		return nil, nil, err
	}
	return b, m, nil
}

// resolveItem поднимается item -> box -> move (не больше трёх шагов
// до владельца).
func (s *InventoryService) resolveItem(ctx context.Context, itemID int64) (*model.Item, *model.Box, *model.Move, error) {
	it, err := s.items.GetByID(ctx, itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, nil, err
	}
	b, m, err := s.resolveBox(ctx, it.BoxID)
	if err != nil {
		return nil, nil, nil, err
	}
	return it, b, m, nil
}

// --- moves ---

// CreateMove заводит переезд на имя действующего пользователя.
func (s *InventoryService) CreateMove(ctx context.Context, id auth.Identity, location string, date time.Time) (*model.Move, error) {
	if id.Username == "" {
		return nil, authz.ErrForbidden
	}
	if location == "" {
		return nil, fmt.Errorf("%w: location is required", ErrValidation)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrValidation)
	}
	m := &model.Move{Location: location, Date: date, Username: id.Username}
	if err := s.moves.Create(ctx, m); err != nil {
		return nil, err
	}
	s.logger.Infow("move created", "move_id", m.ID, "username", id.Username)
	return m, nil
}

func (s *InventoryService) GetMove(ctx context.Context, id auth.Identity, moveID int64) (*model.Move, error) {
	m, err := s.resolveMove(ctx, moveID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(id, m.Username); err != nil {
		return nil, err
	}
	return m, nil
}

// ListMoves возвращает переезды действующего пользователя;
// администратору — все.
func (s *InventoryService) ListMoves(ctx context.Context, id auth.Identity) ([]model.Move, error) {
	if id.Admin {
		return s.moves.ListAll(ctx)
	}
	if id.Username == "" {
		return nil, authz.ErrForbidden
	}
	return s.moves.ListByUsername(ctx, id.Username)
}

func (s *InventoryService) UpdateMove(ctx context.Context, id auth.Identity, moveID int64, upd MoveUpdate) (*model.Move, error) {
	m, err := s.resolveMove(ctx, moveID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(id, m.Username); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if upd.Location != nil {
		if *upd.Location == "" {
			return nil, fmt.Errorf("%w: location cannot be empty", ErrValidation)
		}
		updates["location"] = *upd.Location
	}
	if upd.Date != nil {
		updates["date"] = *upd.Date
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: nothing to update", ErrValidation)
	}
	if err := s.moves.Update(ctx, moveID, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.resolveMove(ctx, moveID)
}

// DeleteMove удаляет переезд; коробки и вещи снимаются каскадом
// внешних ключей, осиротевших строк не остаётся.
func (s *InventoryService) DeleteMove(ctx context.Context, id auth.Identity, moveID int64) error {
	m, err := s.resolveMove(ctx, moveID)
	if err != nil {
		return err
	}
	if err := authz.Authorize(id, m.Username); err != nil {
		return err
	}
	if err := s.moves.Delete(ctx, moveID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.logger.Infow("move deleted", "move_id", moveID, "by", id.Username)
	return nil
}

// --- boxes ---

// CreateBox заводит коробку в переезде. QR-код наклейки генерируется
// здесь и дальше не меняется.
func (s *InventoryService) CreateBox(ctx context.Context, id auth.Identity, moveID int64, room string) (*model.Box, error) {
	if room == "" {
		return nil, fmt.Errorf("%w: room is required", ErrValidation)
	}
	m, err := s.resolveMove(ctx, moveID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(id, m.Username); err != nil {
		return nil, err
	}
	b := &model.Box{Room: room, QRCode: uuid.NewString(), MoveID: moveID}
	if err := s.boxes.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *InventoryService) GetBox(ctx context.Context, id auth.Identity, boxID int64) (*model.Box, error) {
	b, m, err := s.resolveBox(ctx, boxID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(id, m.Username); err != nil {
		return nil, err
	}
	return b, nil
}

// GetBoxByQRCode находит коробку по отсканированной наклейке.
func (s *InventoryService) GetBoxByQRCode(ctx context.Context, id auth.Identity, code string) (*model.Box, error) {
	b, err := s.boxes.GetByQRCode(ctx, code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	m, err := s.resolveMove(ctx, b.MoveID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(id, m.Username); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *InventoryService) ListBoxesForMove(ctx context.Context, id auth.Identity, moveID int64) ([]model.Box, error) {
	m, err := s.resolveMove(ctx, moveID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(id, m.Username); err != nil {
		return nil, err
	}
	return s.boxes.ListByMove(ctx, moveID)
}

func (s *InventoryService) UpdateBox(ctx context.Context, id auth.Identity, boxID int64, room string) (*model.Box, error) {
	if room == "" {
		return nil, fmt.Errorf("%w: room is required", ErrValidation)
	}
	_, m, err := s.resolveBox(ctx, boxID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(id, m.Username); err != nil {
		return nil, err
	}
	if err := s.boxes.Update(ctx, boxID, map[string]any{"room": room}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	b, _, err := s.resolveBox(ctx, boxID)
	return b, err
}

// DeleteBox удаляет коробку; её вещи снимаются каскадом.
func (s *InventoryService) DeleteBox(ctx context.Context, id auth.Identity, boxID int64) error {
	_, m, err := s.resolveBox(ctx, boxID)
	if err != nil {
		return err
	}
	if err := authz.Authorize(id, m.Username); err != nil {
		return err
	}
	if err := s.boxes.Delete(ctx, boxID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// --- items ---

func (s *InventoryService) CreateItem(ctx context.Context, id auth.Identity, boxID int64, description, image string) (*model.Item, error) {
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}
	_, m, err := s.resolveBox(ctx, boxID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(id, m.Username); err != nil {
		return nil, err
	}
	it := &model.Item{Description: description, Image: image, BoxID: boxID}
	if err := s.items.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *InventoryService) GetItem(ctx context.Context, id auth.Identity, itemID int64) (*model.Item, error) {
	it, _, m, err := s.resolveItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(id, m.Username); err != nil {
		return nil, err
	}
	return it, nil
}

// ListItems — выборка «мои вещи» для вью-слоя: все вещи по цепочке
// владения действующего пользователя; администратору — все.
func (s *InventoryService) ListItems(ctx context.Context, id auth.Identity) ([]model.Item, error) {
	if id.Admin {
		return s.items.ListAll(ctx)
	}
	if id.Username == "" {
		return nil, authz.ErrForbidden
	}
	return s.items.ListByUsername(ctx, id.Username)
}

func (s *InventoryService) ListItemsForBox(ctx context.Context, id auth.Identity, boxID int64) ([]model.Item, error) {
	_, m, err := s.resolveBox(ctx, boxID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(id, m.Username); err != nil {
		return nil, err
	}
	return s.items.ListByBox(ctx, boxID)
}

// ItemUpdate — частичное обновление вещи.
type ItemUpdate struct {
	Description *string
	Image       *string
}

func (s *InventoryService) UpdateItem(ctx context.Context, id auth.Identity, itemID int64, upd ItemUpdate) (*model.Item, error) {
	_, _, m, err := s.resolveItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(id, m.Username); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if upd.Description != nil {
		if *upd.Description == "" {
			return nil, fmt.Errorf("%w: description cannot be empty", ErrValidation)
		}
		updates["description"] = *upd.Description
	}
	if upd.Image != nil {
		updates["image"] = *upd.Image
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: nothing to update", ErrValidation)
	}
	if err := s.items.Update(ctx, itemID, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	it, _, _, err := s.resolveItem(ctx, itemID)
	return it, err
}

func (s *InventoryService) DeleteItem(ctx context.Context, id auth.Identity, itemID int64) error {
	_, _, m, err := s.resolveItem(ctx, itemID)
	if err != nil {
		return err
	}
	if err := authz.Authorize(id, m.Username); err != nil {
		return err
	}
	if err := s.items.Delete(ctx, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
