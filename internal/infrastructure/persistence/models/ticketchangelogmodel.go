package models

import "gorm.io/datatypes"

// TicketChangeLogModel rows are append-only. There is deliberately no update
// path for this table, and no foreign key to tickets: the terminal `removed`
// row must survive the purge of its ticket.
type TicketChangeLogModel struct {
	ID               uint           `gorm:"primaryKey"`
	TicketID         uint           `gorm:"not null;index"`
	UserID           uint           `gorm:"not null;index"`
	PreviousStatus   string         `gorm:"size:20;not null"`
	NewStatus        string         `gorm:"size:20;not null"`
	PreviousPriority string         `gorm:"size:20;not null"`
	NewPriority      string         `gorm:"size:20;not null"`
	PreviousCategory string         `gorm:"size:20;not null"`
	NewCategory      string         `gorm:"size:20;not null"`
	ChangeType       string         `gorm:"size:20;not null;index"`
	Meta             datatypes.JSON `gorm:"type:json"`
	CreatedAt        int64          `gorm:"autoCreateTime:milli;not null;index"`
}

func (TicketChangeLogModel) TableName() string {
	return "ticket_change_logs"
}
