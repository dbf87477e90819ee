package repository

import (
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sendbackhq/sendback/internal/entity"
)

// Config holds database settings.
type Config struct {
	Path string
}

// Open connects the SQLite database and migrates the schema.
func Open(cfg Config, logger *zap.Logger) (*gorm.DB, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("connecting to database", zap.String("path", cfg.Path))

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		logger.Error("failed to open database", zap.Error(err))
		return nil, err
	}

	if err := db.AutoMigrate(&entity.Order{}, &entity.LineItem{}); err != nil {
		logger.Error("failed to migrate schema", zap.Error(err))
		return nil, err
	}

	logger.Info("database ready")
	return db, nil
}

// Close closes the underlying connection gracefully.
func Close(db *gorm.DB, logger *zap.Logger) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("failed to resolve sql.DB", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("failed to close database", zap.Error(err))
		return
	}
	logger.Info("database closed")
}
