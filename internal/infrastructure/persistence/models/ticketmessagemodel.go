package models

type TicketMessageModel struct {
	ID             uint    `gorm:"primaryKey"`
	TicketID       uint    `gorm:"not null;index"`
	UserID         uint    `gorm:"not null;index"`
	Body           string  `gorm:"type:text;not null"`
	MessageType    string  `gorm:"size:20;not null"`
	HasAttachments bool    `gorm:"not null;default:false"`
	OldStatus      *string `gorm:"size:20"`
	NewStatus      *string `gorm:"size:20"`
	CreatedAt      int64   `gorm:"autoCreateTime:milli;not null;index"`
}

func (TicketMessageModel) TableName() string {
	return "ticket_messages"
}
