package database

import (
	"fmt"
	"time"

	"keyless-stay/config"
	"keyless-stay/logger"
	accessCodeModel "keyless-stay/models/access_code"
	bookingModel "keyless-stay/models/booking"
	"keyless-stay/models/log"
	propertyModel "keyless-stay/models/property"
	roomModel "keyless-stay/models/room"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewGormConfig is shared by every dialect so timestamps are always UTC.
func NewGormConfig() *gorm.Config {
	return &gorm.Config{
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Connect opens the PostgreSQL connection described by cfg.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), NewGormConfig())
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")
	return db, nil
}

// InitDB connects and brings the schema up to date.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs auto migration, indexes and (on PostgreSQL) foreign keys.
func Migrate(db *gorm.DB) error {
	if err := autoMigrate(db); err != nil {
		logger.Error("Failed to run auto migration", err)
		return err
	}
	logger.Success("All migrations completed successfully")

	if err := createIndexes(db); err != nil {
		logger.Error("Failed to create indexes", err)
		return err
	}
	logger.Success("All indexes created successfully")

	if db.Dialector.Name() == "postgres" {
		if err := createForeignKeyConstraints(db); err != nil {
			logger.Error("Failed to create foreign key constraints", err)
			return err
		}
		logger.Success("All foreign key constraints created successfully")
	}

	return nil
}

// autoMigrate runs auto migration for all models
func autoMigrate(db *gorm.DB) error {
	// Stage 1: Core foundation models
	stage1Models := []interface{}{
		&propertyModel.Property{},
		&roomModel.Room{},
	}

	for _, model := range stage1Models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: Models with dependencies on Stage 1
	stage2Models := []interface{}{
		&bookingModel.Booking{},
		&accessCodeModel.AccessCode{},
	}

	for _, model := range stage2Models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 3: Event and ledger tables, logging
	remainingModels := []interface{}{
		&bookingModel.BookingStatusEvent{},
		&bookingModel.BookingPayment{},
		&accessCodeModel.AccessCodeEvent{},
		&log.Log{},
	}

	for _, model := range remainingModels {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// createIndexes creates additional indexes for better performance
func createIndexes(db *gorm.DB) error {
	indexes := []struct {
		name string
		sql  string
	}{
		{"idx_properties_owner_active", "CREATE INDEX IF NOT EXISTS idx_properties_owner_active ON properties(owner_id, is_active)"},
		{"idx_properties_slug_active", "CREATE INDEX IF NOT EXISTS idx_properties_slug_active ON properties(slug, is_active)"},
		{"idx_rooms_property_number", "CREATE INDEX IF NOT EXISTS idx_rooms_property_number ON rooms(property_id, room_number)"},
		{"idx_rooms_property_status", "CREATE INDEX IF NOT EXISTS idx_rooms_property_status ON rooms(property_id, status)"},
		{"idx_bookings_room_status", "CREATE INDEX IF NOT EXISTS idx_bookings_room_status ON bookings(room_id, status)"},
		{"idx_bookings_property_check_in", "CREATE INDEX IF NOT EXISTS idx_bookings_property_check_in ON bookings(property_id, check_in)"},
		{"idx_bookings_guest_phone", "CREATE INDEX IF NOT EXISTS idx_bookings_guest_phone ON bookings(guest_phone_number)"},
		{"idx_access_codes_code_revoked", "CREATE INDEX IF NOT EXISTS idx_access_codes_code_revoked ON access_codes(code, is_revoked)"},
		{"idx_access_codes_booking_revoked", "CREATE INDEX IF NOT EXISTS idx_access_codes_booking_revoked ON access_codes(booking_id, is_revoked)"},
		{"idx_logs_method", "CREATE INDEX IF NOT EXISTS idx_logs_method ON logs(method)"},
		{"idx_logs_status_code", "CREATE INDEX IF NOT EXISTS idx_logs_status_code ON logs(status_code)"},
		{"idx_logs_created_at", "CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)"},
	}

	for _, index := range indexes {
		if err := db.Exec(index.sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", index.name, err)
		}
	}

	return nil
}

// createForeignKeyConstraints creates foreign key constraints after auto migration
func createForeignKeyConstraints(db *gorm.DB) error {
	constraints := []struct {
		name string
		sql  string
	}{
		{
			name: "fk_rooms_property",
			sql: `ALTER TABLE rooms ADD CONSTRAINT fk_rooms_property
				  FOREIGN KEY (property_id) REFERENCES properties(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_bookings_property",
			sql: `ALTER TABLE bookings ADD CONSTRAINT fk_bookings_property
				  FOREIGN KEY (property_id) REFERENCES properties(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_bookings_room",
			sql: `ALTER TABLE bookings ADD CONSTRAINT fk_bookings_room
				  FOREIGN KEY (room_id) REFERENCES rooms(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_access_codes_booking",
			sql: `ALTER TABLE access_codes ADD CONSTRAINT fk_access_codes_booking
				  FOREIGN KEY (booking_id) REFERENCES bookings(id)
				  ON UPDATE CASCADE ON DELETE CASCADE`,
		},
		{
			name: "fk_booking_payments_booking",
			sql: `ALTER TABLE booking_payments ADD CONSTRAINT fk_booking_payments_booking
				  FOREIGN KEY (booking_id) REFERENCES bookings(id)
				  ON UPDATE CASCADE ON DELETE CASCADE`,
		},
	}

	for _, constraint := range constraints {
		var exists bool
		checkSQL := `
			SELECT EXISTS (
				SELECT 1 FROM information_schema.table_constraints
				WHERE constraint_name = $1
			)
		`

		err := db.Raw(checkSQL, constraint.name).Scan(&exists).Error
		if err != nil {
			logger.Warning(fmt.Sprintf("Failed to check constraint existence: %s - Error: %v", constraint.name, err))
			continue
		}

		if !exists {
			if err := db.Exec(constraint.sql).Error; err != nil {
				logger.Warning(fmt.Sprintf("Failed to create constraint: %s - Error: %v", constraint.name, err))
			} else {
				logger.Success(fmt.Sprintf("Successfully created constraint: %s", constraint.name))
			}
		} else {
			logger.Debug(fmt.Sprintf("Constraint already exists: %s", constraint.name))
		}
	}

	return nil
}
