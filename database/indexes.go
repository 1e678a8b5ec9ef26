package database

import (
	"github.com/putrawdn/restaurant-mgt/models"
	"github.com/putrawdn/restaurant-mgt/utils"
	"gorm.io/gorm"
)

// EnsureIndexes creates the indexes the write paths rely on beyond what the
// model tags declare: the booking conflict scan needs the composite window
// index, and payments carry a unique order_id index so an order can never be
// paid twice.
func EnsureIndexes(db *gorm.DB) error {
	migrator := db.Migrator()

	if !migrator.HasIndex(&models.Reservation{}, "idx_reservations_table_window") {
		if err := db.Exec(
			"CREATE INDEX idx_reservations_table_window ON reservations (table_id, start_date_time, end_date_time)",
		).Error; err != nil {
			utils.ErrorLogger.Printf("Error creating reservation window index: %v", err)
			return err
		}
		utils.InfoLogger.Printf("Created index idx_reservations_table_window")
	}

	// AutoMigrate already creates the unique payments.order_id index from the
	// model tag; verify it is present and loud-fail otherwise.
	if !migrator.HasIndex(&models.Payment{}, "OrderID") &&
		!migrator.HasIndex(&models.Payment{}, "idx_payments_order_id") {
		utils.ErrorLogger.Printf("Unique index on payments.order_id is missing")
	}

	return nil
}
