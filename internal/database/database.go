package database

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	DB *gorm.DB
}

func New(databaseURL string) (*Database, error) {
	var db *gorm.DB
	var err error

	if strings.HasPrefix(databaseURL, "sqlite://") {
		// SQLite for development
		dbPath := strings.TrimPrefix(databaseURL, "sqlite://")
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
	} else {
		// PostgreSQL for production
		db, err = gorm.Open(postgres.Open(databaseURL), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	createTablesSQL := `
	CREATE TABLE IF NOT EXISTS client_state (
		session_id TEXT NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		updated_at TIMESTAMPTZ,
		PRIMARY KEY (session_id, key)
	);

	CREATE TABLE IF NOT EXISTS product_views (
		product_id TEXT PRIMARY KEY,
		views BIGINT NOT NULL DEFAULT 0,
		last_viewed_at TIMESTAMPTZ
	);
	`

	err = db.Exec(createTablesSQL).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &Database{DB: db}, nil
}

type clientState struct {
	SessionID string `gorm:"column:session_id;primaryKey"`
	Key       string `gorm:"column:key;primaryKey"`
	Value     string `gorm:"column:value"`
	UpdatedAt time.Time
}

func (clientState) TableName() string { return "client_state" }

type productView struct {
	ProductID    string `gorm:"column:product_id;primaryKey"`
	Views        int64  `gorm:"column:views"`
	LastViewedAt time.Time
}

func (productView) TableName() string { return "product_views" }

// GetState returns the persisted blob for a (session, key) pair, or nil when
// no record exists.
func (d *Database) GetState(sessionID, key string) ([]byte, error) {
	var rec clientState
	err := d.DB.First(&rec, "session_id = ? AND key = ?", sessionID, key).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read client state: %w", err)
	}
	return []byte(rec.Value), nil
}

func (d *Database) PutState(sessionID, key string, value []byte) error {
	rec := clientState{
		SessionID: sessionID,
		Key:       key,
		Value:     string(value),
		UpdatedAt: time.Now(),
	}
	err := d.DB.Save(&rec).Error
	if err != nil {
		return fmt.Errorf("failed to write client state: %w", err)
	}
	return nil
}

// IncrementViews bumps the view counter for a product, creating the row on
// first sight.
func (d *Database) IncrementViews(productID string) error {
	now := time.Now()
	res := d.DB.Model(&productView{}).
		Where("product_id = ?", productID).
		Updates(map[string]interface{}{
			"views":          gorm.Expr("views + 1"),
			"last_viewed_at": now,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to increment views: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		rec := productView{ProductID: productID, Views: 1, LastViewedAt: now}
		if err := d.DB.Create(&rec).Error; err != nil {
			return fmt.Errorf("failed to create view counter: %w", err)
		}
	}
	return nil
}

func (d *Database) Views(productID string) (int64, error) {
	var rec productView
	err := d.DB.First(&rec, "product_id = ?", productID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read view counter: %w", err)
	}
	return rec.Views, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
