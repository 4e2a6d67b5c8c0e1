package repo

import (
	"QRBoxer/internal/model"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// InitDB открывает БД по DSN и прогоняет автомиграции.
// postgres:// или postgresql:// — Postgres, иначе файл SQLite
// (чисто-Go драйвер modernc). Каскадные внешние ключи объявлены
// в моделях; для SQLite их контроль включается прагмой в DSN.
func InitDB(dsn string) (*gorm.DB, error) {
	var dial gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		dial = postgres.Open(dsn)
	} else {
		if dsn == "" {
			dsn = "qrboxer.sqlite"
		}
		if !strings.Contains(dsn, "_pragma=foreign_keys") {
			if strings.Contains(dsn, "?") {
				dsn += "&_pragma=foreign_keys(1)"
			} else {
				dsn += "?_pragma=foreign_keys(1)"
			}
		}
		dial = gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	}

	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&model.User{}, &model.Move{}, &model.Box{}, &model.Item{}); err != nil {
		return nil, err
	}
	return db, nil
}

// CloseDB закрывает пул соединений. Явный teardown нужен харнессу тестов
// и аккуратной остановке сервера.
func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
