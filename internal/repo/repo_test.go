package repo

import (
	"QRBoxer/internal/testdb"
	"testing"

	"gorm.io/gorm"
)

// newTestDB — изолированная in-memory БД с фикстурами для тестов репозиториев.
func newTestDB(t *testing.T) (*gorm.DB, *testdb.Fixtures) {
	t.Helper()
	db := testdb.New(t)
	fx := testdb.Seed(t, db)
	return db, fx
}

// countRows — прямой пересчёт строк таблицы, мимо репозиториев.
func countRows(t *testing.T, db *gorm.DB, table string) int64 {
	t.Helper()
	var n int64
	if err := db.Table(table).Count(&n).Error; err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
