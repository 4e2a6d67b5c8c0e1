package service

import (
	"QRBoxer/internal/auth"
	"QRBoxer/internal/authz"
	"QRBoxer/internal/model"
	"QRBoxer/internal/repo"
	"QRBoxer/internal/testdb"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	user1 = auth.Identity{Username: "testuser1"}
	user2 = auth.Identity{Username: "testuser2"}
	root  = auth.Identity{Username: "admin", Admin: true}
)

// newInventoryService собирает сервис поверх реальных репозиториев
// на свежей in-memory базе с фикстурами.
func newInventoryService(t *testing.T) (*InventoryService, *testdb.Fixtures, *gorm.DB) {
	t.Helper()
	db := testdb.New(t)
	fx := testdb.Seed(t, db)
	svc := NewInventoryService(
		repo.NewMoveRepository(db),
		repo.NewBoxRepository(db),
		repo.NewItemRepository(db),
		zap.NewNop().Sugar(),
	)
	return svc, fx, db
}

func TestInventoryService_Moves(t *testing.T) {
	ctx := context.Background()
	svc, fx, _ := newInventoryService(t)

	t.Run("owner lists own moves ordered by date", func(t *testing.T) {
		moves, err := svc.ListMoves(ctx, user1)
		assert.NoError(t, err)
		if assert.Len(t, moves, 2) {
			assert.Equal(t, "Location 1", moves[0].Location)
			assert.Equal(t, "Location 2", moves[1].Location)
		}
	})

	t.Run("admin lists everything", func(t *testing.T) {
		moves, err := svc.ListMoves(ctx, root)
		assert.NoError(t, err)
		assert.Len(t, moves, 3)
	})

	t.Run("foreign move reads as forbidden", func(t *testing.T) {
		_, err := svc.GetMove(ctx, user2, fx.Move1ID)
		assert.ErrorIs(t, err, authz.ErrForbidden)
	})

	t.Run("admin reads any move", func(t *testing.T) {
		m, err := svc.GetMove(ctx, root, fx.Move3ID)
		assert.NoError(t, err)
		assert.Equal(t, "testuser2", m.Username)
	})

	t.Run("missing move is not found", func(t *testing.T) {
		_, err := svc.GetMove(ctx, user1, 99999)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("create requires location and date", func(t *testing.T) {
		_, err := svc.CreateMove(ctx, user1, "", time.Now())
		assert.ErrorIs(t, err, ErrValidation)
		_, err = svc.CreateMove(ctx, user1, "Storage", time.Time{})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("create stamps the caller as owner", func(t *testing.T) {
		m, err := svc.CreateMove(ctx, user2, "Summer House", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
		assert.NoError(t, err)
		assert.Equal(t, "testuser2", m.Username)
		assert.NotZero(t, m.ID)
	})

	t.Run("partial update", func(t *testing.T) {
		loc := "Location 1 (renamed)"
		m, err := svc.UpdateMove(ctx, user1, fx.Move1ID, MoveUpdate{Location: &loc})
		assert.NoError(t, err)
		assert.Equal(t, loc, m.Location)

		// пустой патч — ошибка валидации
		_, err = svc.UpdateMove(ctx, user1, fx.Move1ID, MoveUpdate{})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("foreign update forbidden", func(t *testing.T) {
		loc := "hijack"
		_, err := svc.UpdateMove(ctx, user2, fx.Move1ID, MoveUpdate{Location: &loc})
		assert.ErrorIs(t, err, authz.ErrForbidden)
	})
}

func TestInventoryService_DeleteMoveCascades(t *testing.T) {
	ctx := context.Background()
	svc, fx, db := newInventoryService(t)

	err := svc.DeleteMove(ctx, user1, fx.Move1ID)
	assert.NoError(t, err)

	// коробки и вещи Move1 снялись каскадом, соседний переезд цел
	var boxes, items int64
	db.Model(&model.Box{}).Count(&boxes)
	db.Model(&model.Item{}).Count(&items)
	assert.EqualValues(t, 1, boxes)
	assert.EqualValues(t, 0, items)

	_, err = svc.GetMove(ctx, user1, fx.Move2ID)
	assert.NoError(t, err)
}

func TestInventoryService_Boxes(t *testing.T) {
	ctx := context.Background()
	svc, fx, _ := newInventoryService(t)

	t.Run("owner lists boxes of a move", func(t *testing.T) {
		boxes, err := svc.ListBoxesForMove(ctx, user1, fx.Move1ID)
		assert.NoError(t, err)
		if assert.Len(t, boxes, 2) {
			assert.Equal(t, "Living Room", boxes[0].Room)
			assert.Equal(t, "Kitchen", boxes[1].Room)
		}
	})

	t.Run("foreign listing forbidden", func(t *testing.T) {
		_, err := svc.ListBoxesForMove(ctx, user2, fx.Move1ID)
		assert.ErrorIs(t, err, authz.ErrForbidden)
	})

	t.Run("create assigns a qr code", func(t *testing.T) {
		b, err := svc.CreateBox(ctx, user1, fx.Move2ID, "Garage")
		assert.NoError(t, err)
		assert.NotEmpty(t, b.QRCode)

		found, err := svc.GetBoxByQRCode(ctx, user1, b.QRCode)
		assert.NoError(t, err)
		assert.Equal(t, b.ID, found.ID)
	})

	t.Run("qr lookup walks to the owner", func(t *testing.T) {
		b, err := svc.GetBox(ctx, user1, fx.KitchenBoxID)
		assert.NoError(t, err)

		_, err = svc.GetBoxByQRCode(ctx, user2, b.QRCode)
		assert.ErrorIs(t, err, authz.ErrForbidden)

		_, err = svc.GetBoxByQRCode(ctx, root, b.QRCode)
		assert.NoError(t, err)
	})

	t.Run("unknown qr is not found", func(t *testing.T) {
		_, err := svc.GetBoxByQRCode(ctx, user1, "no-such-code")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("create into a foreign move forbidden", func(t *testing.T) {
		_, err := svc.CreateBox(ctx, user1, fx.Move3ID, "Attic")
		assert.ErrorIs(t, err, authz.ErrForbidden)
	})

	t.Run("update and delete", func(t *testing.T) {
		b, err := svc.UpdateBox(ctx, user1, fx.BedroomBoxID, "Bedroom 2")
		assert.NoError(t, err)
		assert.Equal(t, "Bedroom 2", b.Room)

		assert.NoError(t, svc.DeleteBox(ctx, user1, fx.BedroomBoxID))
		_, err = svc.GetBox(ctx, user1, fx.BedroomBoxID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestInventoryService_Items(t *testing.T) {
	ctx := context.Background()
	svc, fx, _ := newInventoryService(t)

	t.Run("list mine walks the whole chain", func(t *testing.T) {
		items, err := svc.ListItems(ctx, user1)
		assert.NoError(t, err)
		assert.Len(t, items, 3)

		items, err = svc.ListItems(ctx, user2)
		assert.NoError(t, err)
		assert.Len(t, items, 0)
	})

	t.Run("admin sees all items", func(t *testing.T) {
		items, err := svc.ListItems(ctx, root)
		assert.NoError(t, err)
		assert.Len(t, items, 3)
	})

	t.Run("box listing and foreign access", func(t *testing.T) {
		items, err := svc.ListItemsForBox(ctx, user1, fx.LivingRoomBoxID)
		assert.NoError(t, err)
		assert.Len(t, items, 2)

		_, err = svc.ListItemsForBox(ctx, user2, fx.LivingRoomBoxID)
		assert.ErrorIs(t, err, authz.ErrForbidden)
	})

	t.Run("create validates description", func(t *testing.T) {
		_, err := svc.CreateItem(ctx, user1, fx.KitchenBoxID, "", "x.jpg")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("create update delete", func(t *testing.T) {
		it, err := svc.CreateItem(ctx, user1, fx.KitchenBoxID, "Kettle", "kettle.jpg")
		assert.NoError(t, err)

		desc := "Electric kettle"
		it, err = svc.UpdateItem(ctx, user1, it.ID, ItemUpdate{Description: &desc})
		assert.NoError(t, err)
		assert.Equal(t, desc, it.Description)

		assert.NoError(t, svc.DeleteItem(ctx, user1, it.ID))
		_, err = svc.GetItem(ctx, user1, it.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("foreign item reads as forbidden", func(t *testing.T) {
		_, err := svc.GetItem(ctx, user2, fx.Item1ID)
		assert.ErrorIs(t, err, authz.ErrForbidden)
	})
}

// --- обрыв цепочки владения ---

type mockMoveRepo struct{ mock.Mock }

func (m *mockMoveRepo) Create(ctx context.Context, mv *model.Move) error {
	return m.Called(ctx, mv).Error(0)
}
func (m *mockMoveRepo) GetByID(ctx context.Context, id int64) (*model.Move, error) {
	args := m.Called(ctx, id)
	if mv, ok := args.Get(0).(*model.Move); ok {
		return mv, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockMoveRepo) ListByUsername(ctx context.Context, username string) ([]model.Move, error) {
	args := m.Called(ctx, username)
	return args.Get(0).([]model.Move), args.Error(1)
}
func (m *mockMoveRepo) ListAll(ctx context.Context) ([]model.Move, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Move), args.Error(1)
}
func (m *mockMoveRepo) Update(ctx context.Context, id int64, updates map[string]any) error {
	return m.Called(ctx, id, updates).Error(0)
}
func (m *mockMoveRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockBoxRepo struct{ mock.Mock }

func (m *mockBoxRepo) Create(ctx context.Context, b *model.Box) error {
	return m.Called(ctx, b).Error(0)
}
func (m *mockBoxRepo) GetByID(ctx context.Context, id int64) (*model.Box, error) {
	args := m.Called(ctx, id)
	if b, ok := args.Get(0).(*model.Box); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockBoxRepo) GetByQRCode(ctx context.Context, code string) (*model.Box, error) {
	args := m.Called(ctx, code)
	if b, ok := args.Get(0).(*model.Box); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockBoxRepo) ListByMove(ctx context.Context, moveID int64) ([]model.Box, error) {
	args := m.Called(ctx, moveID)
	return args.Get(0).([]model.Box), args.Error(1)
}
func (m *mockBoxRepo) Update(ctx context.Context, id int64, updates map[string]any) error {
	return m.Called(ctx, id, updates).Error(0)
}
func (m *mockBoxRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

var (
	_ repo.MoveRepository = (*mockMoveRepo)(nil)
	_ repo.BoxRepository  = (*mockBoxRepo)(nil)
)

// Обрыв цепочки box -> move должен отдаваться как not found,
// а не как forbidden: чужому вызову нечего раскрывать.
func TestInventoryService_BrokenChainIsNotFound(t *testing.T) {
	ctx := context.Background()
	moves := new(mockMoveRepo)
	boxes := new(mockBoxRepo)
	svc := NewInventoryService(moves, boxes, nil, zap.NewNop().Sugar())

	boxes.On("GetByID", mock.Anything, int64(7)).Return(&model.Box{ID: 7, Room: "Orphan", MoveID: 42}, nil)
	moves.On("GetByID", mock.Anything, int64(42)).Return((*model.Move)(nil), gorm.ErrRecordNotFound)

	_, err := svc.GetBox(ctx, user2, 7)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, authz.ErrForbidden)

	boxes.AssertExpectations(t)
	moves.AssertExpectations(t)
}
