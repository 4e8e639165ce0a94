// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jong1uk/Auction-Back/internal/config"
	"github.com/jong1uk/Auction-Back/internal/models"
)

var DB *gorm.DB

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var err error
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}

	// Connect to database
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return DB, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.BuyingBid{},
		&models.SalesBid{},
		&models.LuckyDraw{},
		&models.DrawEntry{},
		&models.Notice{},
		&models.Address{},
		&models.Account{},
		&models.Bookmark{},
		&models.Coupon{},
		&models.CouponIssue{},
		&models.PhotoReview{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Create indexes
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_model_status ON products(model_num, status)",
		"CREATE INDEX IF NOT EXISTS idx_products_departments ON products(main_department, sub_department)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_products_registered_variant ON products(model_num, product_size) WHERE status = 'REGISTERED'",

		// Bid indexes
		"CREATE INDEX IF NOT EXISTS idx_buying_bids_product_status ON buying_bids(product_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_buying_bids_user ON buying_bids(user_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_sales_bids_product_status ON sales_bids(product_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_sales_bids_user ON sales_bids(user_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_sales_bids_bid_time ON sales_bids(bid_time DESC)",

		// Draw indexes
		"CREATE INDEX IF NOT EXISTS idx_lucky_draws_status ON lucky_draws(status)",
		"CREATE INDEX IF NOT EXISTS idx_draw_entries_draw_user ON draw_entries(lucky_draw_id, user_id)",

		// Notice index
		"CREATE INDEX IF NOT EXISTS idx_notices_created_at ON notices(created_at DESC)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// Seed initial data
func SeedInitialData(db *gorm.DB) error {
	log.Println("Seeding initial data...")

	var adminCount int64
	db.Model(&models.User{}).Where("is_admin = ?", true).Count(&adminCount)

	if adminCount == 0 {
		admin := &models.User{
			Email:    "admin@auction-back.com",
			Nickname: "admin",
			IsAdmin:  true,
		}

		if err := admin.SetPassword("admin123!@#"); err != nil {
			return fmt.Errorf("failed to set admin password: %w", err)
		}

		if err := db.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		log.Println("Default admin user created successfully")
	}

	log.Println("Initial data seeding completed")
	return nil
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
