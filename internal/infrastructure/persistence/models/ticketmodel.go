package models

type TicketModel struct {
	ID             uint   `gorm:"primaryKey"`
	Number         string `gorm:"uniqueIndex;size:50;not null"`
	Title          string `gorm:"size:200;not null"`
	Description    string `gorm:"type:text;not null"`
	Status         string `gorm:"size:20;not null;index"`
	PreviousStatus string `gorm:"size:20;not null"`
	Priority       string `gorm:"size:20;not null;index"`
	Category       string `gorm:"size:20;not null;index"`
	ContractID     uint   `gorm:"not null;index"`
	CreatorID      uint   `gorm:"not null;index"`
	AssigneeID     *uint  `gorm:"index"`

	ResolvedAt *int64 `gorm:"index"`
	ClosedAt   *int64 `gorm:"index"`
	DeletedAt  *int64 `gorm:"index"`
	RestoredAt *int64

	CreatorLastReadAt  *int64
	AssigneeLastReadAt *int64

	Version   int   `gorm:"not null;default:1"`
	CreatedAt int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt int64 `gorm:"autoUpdateTime:milli;not null"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (TicketModel) TableName() string {
	return "tickets"
}
