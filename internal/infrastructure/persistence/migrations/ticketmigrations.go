package migrations

import (
	"crmdesk/internal/infrastructure/persistence/models"

	"gorm.io/gorm"
)

// MigrateTicketTables creates the four ticket tables. The change-log table
// intentionally carries no foreign key to tickets so audit rows survive a
// ticket purge.
func MigrateTicketTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.TicketModel{},
		&models.TicketMessageModel{},
		&models.TicketAttachmentModel{},
		&models.TicketChangeLogModel{},
	)
}
