package models

type TicketAttachmentModel struct {
	ID           uint   `gorm:"primaryKey"`
	TicketID     uint   `gorm:"not null;index"`
	MessageID    *uint  `gorm:"index"`
	UserID       uint   `gorm:"not null;index"`
	FileName     string `gorm:"size:255;not null"`
	OriginalName string `gorm:"size:255;not null"`
	FilePath     string `gorm:"size:500;not null"`
	FileSize     int64  `gorm:"not null"`
	MimeType     string `gorm:"size:100"`
	ContentHash  string `gorm:"size:64;index"`
	CreatedAt    int64  `gorm:"autoCreateTime:milli;not null"`
}

func (TicketAttachmentModel) TableName() string {
	return "ticket_attachments"
}
