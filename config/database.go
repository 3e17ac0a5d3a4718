package config

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"moul.io/zapgorm2"
)

// ConnectDatabase opens the store named by DatabaseURL, wiring GORM's logger
// into zap. The DSN scheme picks the driver: the embedded sqlite engine is
// the development default (mirroring the frontend's local setup), postgres
// is the deployment target.
func ConnectDatabase(settings *Settings, logger *zap.Logger) (*gorm.DB, error) {
	gormLogger := zapgorm2.New(logger)
	gormLogger.SetAsDefault()

	dialector, err := dialectorFor(settings.DatabaseURL)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	return db, nil
}

func dialectorFor(databaseURL string) (gorm.Dialector, error) {
	switch {
	case strings.HasPrefix(databaseURL, "sqlite://"):
		path := strings.TrimPrefix(databaseURL, "sqlite://")
		return sqlite.Open(path), nil
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return postgres.Open(databaseURL), nil
	default:
		return nil, fmt.Errorf("unsupported DATABASE_URL %q: expected sqlite:// or postgres://", databaseURL)
	}
}
