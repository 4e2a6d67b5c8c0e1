// Package testdb — общий тестовый харнесс: in-memory БД, детерминированные
// фикстуры и транзакционная изоляция кейсов. Мутации внутри теста
// откатываются безусловно, поэтому любой порядок запуска видит одну
// и ту же базовую картину.
package testdb

import (
	"QRBoxer/internal/auth"
	"QRBoxer/internal/model"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// FixturePassword — пароль всех тестовых пользователей.
const FixturePassword = "password123"

// Fixtures — идентификаторы засеянных строк.
type Fixtures struct {
	Move1ID int64 // Location 1, testuser1
	Move2ID int64 // Location 2, testuser1
	Move3ID int64 // Location 3, testuser2

	LivingRoomBoxID int64 // на Move1
	KitchenBoxID    int64 // на Move1
	BedroomBoxID    int64 // на Move2, пустая

	Item1ID int64 // в Living Room
	Item2ID int64 // в Living Room
	Item3ID int64 // в Kitchen
}

// New открывает отдельную in-memory SQLite (modernc) с включёнными
// внешними ключами и прогоняет миграции. Соединение закрывается
// в t.Cleanup — это teardown всего кейса.
func New(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Move{}, &model.Box{}, &model.Item{}); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Seed приводит БД к базовому состоянию: чистка таблиц в порядке
// от детей к родителям и вставка фиксированного набора
// (testuser1/testuser2/admin, три переезда, три коробки, три вещи).
func Seed(t *testing.T, db *gorm.DB) *Fixtures {
	t.Helper()

	for _, stmt := range []string{
		"DELETE FROM items",
		"DELETE FROM boxes",
		"DELETE FROM moves",
		"DELETE FROM users",
	} {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("failed to reset table: %v", err)
		}
	}

	// cost=4 — чтобы сид не тормозил тесты
	hash, err := auth.NewHasher(4).Hash(FixturePassword)
	if err != nil {
		t.Fatalf("failed to hash fixture password: %v", err)
	}

	users := []model.User{
		{Username: "testuser1", Password: hash, Email: "test1@test.com"},
		{Username: "testuser2", Password: hash, Email: "test2@test.com"},
		{Username: "admin", Password: hash, Email: "admin@test.com", Admin: true},
	}
	if err := db.Create(&users).Error; err != nil {
		t.Fatalf("failed to seed users: %v", err)
	}

	moves := []model.Move{
		{Location: "Location 1", Date: date(t, "2024-01-01"), Username: "testuser1"},
		{Location: "Location 2", Date: date(t, "2024-02-01"), Username: "testuser1"},
		{Location: "Location 3", Date: date(t, "2024-03-01"), Username: "testuser2"},
	}
	if err := db.Create(&moves).Error; err != nil {
		t.Fatalf("failed to seed moves: %v", err)
	}

	boxes := []model.Box{
		{Room: "Living Room", QRCode: uuid.NewString(), MoveID: moves[0].ID},
		{Room: "Kitchen", QRCode: uuid.NewString(), MoveID: moves[0].ID},
		{Room: "Bedroom", QRCode: uuid.NewString(), MoveID: moves[1].ID},
	}
	if err := db.Create(&boxes).Error; err != nil {
		t.Fatalf("failed to seed boxes: %v", err)
	}

	items := []model.Item{
		{Description: "Item 1", Image: "image1.jpg", BoxID: boxes[0].ID},
		{Description: "Item 2", Image: "image2.jpg", BoxID: boxes[0].ID},
		{Description: "Item 3", Image: "image3.jpg", BoxID: boxes[1].ID},
	}
	if err := db.Create(&items).Error; err != nil {
		t.Fatalf("failed to seed items: %v", err)
	}

	return &Fixtures{
		Move1ID:         moves[0].ID,
		Move2ID:         moves[1].ID,
		Move3ID:         moves[2].ID,
		LivingRoomBoxID: boxes[0].ID,
		KitchenBoxID:    boxes[1].ID,
		BedroomBoxID:    boxes[2].ID,
		Item1ID:         items[0].ID,
		Item2ID:         items[1].ID,
		Item3ID:         items[2].ID,
	}
}

// Begin открывает транзакцию для теста и регистрирует безусловный
// откат в t.Cleanup: срабатывает на любом пути выхода, явных вызовов
// в теле теста не требуется.
func Begin(t *testing.T, db *gorm.DB) *gorm.DB {
	t.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		t.Fatalf("failed to begin transaction: %v", tx.Error)
	}
	t.Cleanup(func() { _ = tx.Rollback() })
	return tx
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad fixture date %q: %v", s, err)
	}
	return d
}
