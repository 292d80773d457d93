package usecases

import (
	"context"
	"io"
	"time"

	"crmdesk/internal/domain/ticket"
	vo "crmdesk/internal/domain/ticket/valueobjects"
	"crmdesk/internal/infrastructure/storage"
	"crmdesk/internal/shared/logger"
)

type mockTicketRepository struct {
	SaveFunc           func(ctx context.Context, t *ticket.Ticket) error
	UpdateFunc         func(ctx context.Context, t *ticket.Ticket) error
	PurgeFunc          func(ctx context.Context, ticketID uint) error
	GetByIDFunc        func(ctx context.Context, ticketID uint) (*ticket.Ticket, error)
	GetByNumberFunc    func(ctx context.Context, number string) (*ticket.Ticket, error)
	ListFunc           func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error)
	ListArchivableFunc func(ctx context.Context, status vo.TicketStatus, cutoff time.Time, limit int) ([]*ticket.Ticket, error)
}

func (m *mockTicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) Purge(ctx context.Context, ticketID uint) error {
	if m.PurgeFunc != nil {
		return m.PurgeFunc(ctx, ticketID)
	}
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockTicketRepository) GetByNumber(ctx context.Context, number string) (*ticket.Ticket, error) {
	if m.GetByNumberFunc != nil {
		return m.GetByNumberFunc(ctx, number)
	}
	return nil, nil
}

func (m *mockTicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockTicketRepository) ListArchivable(ctx context.Context, status vo.TicketStatus, cutoff time.Time, limit int) ([]*ticket.Ticket, error) {
	if m.ListArchivableFunc != nil {
		return m.ListArchivableFunc(ctx, status, cutoff, limit)
	}
	return nil, nil
}

type mockMessageRepository struct {
	SaveFunc              func(ctx context.Context, message *ticket.Message) error
	GetByIDFunc           func(ctx context.Context, messageID uint) (*ticket.Message, error)
	GetByTicketIDFunc     func(ctx context.Context, ticketID uint) ([]*ticket.Message, error)
	LatestByTicketIDFunc  func(ctx context.Context, ticketID uint) (*ticket.Message, error)
	SetHasAttachmentsFunc func(ctx context.Context, messageID uint) error
	PurgeByTicketIDFunc   func(ctx context.Context, ticketID uint) error
}

func (m *mockMessageRepository) Save(ctx context.Context, message *ticket.Message) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, message)
	}
	return nil
}

func (m *mockMessageRepository) GetByID(ctx context.Context, messageID uint) (*ticket.Message, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, messageID)
	}
	return nil, nil
}

func (m *mockMessageRepository) GetByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Message, error) {
	if m.GetByTicketIDFunc != nil {
		return m.GetByTicketIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockMessageRepository) LatestByTicketID(ctx context.Context, ticketID uint) (*ticket.Message, error) {
	if m.LatestByTicketIDFunc != nil {
		return m.LatestByTicketIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockMessageRepository) SetHasAttachments(ctx context.Context, messageID uint) error {
	if m.SetHasAttachmentsFunc != nil {
		return m.SetHasAttachmentsFunc(ctx, messageID)
	}
	return nil
}

func (m *mockMessageRepository) PurgeByTicketID(ctx context.Context, ticketID uint) error {
	if m.PurgeByTicketIDFunc != nil {
		return m.PurgeByTicketIDFunc(ctx, ticketID)
	}
	return nil
}

type mockAttachmentRepository struct {
	SaveFunc             func(ctx context.Context, attachment *ticket.Attachment) error
	GetByIDFunc          func(ctx context.Context, attachmentID uint) (*ticket.Attachment, error)
	GetByTicketIDFunc    func(ctx context.Context, ticketID uint) ([]*ticket.Attachment, error)
	CountByMessageIDFunc func(ctx context.Context, messageID uint) (int, error)
	DeleteFunc           func(ctx context.Context, attachmentID uint) error
	PurgeByTicketIDFunc  func(ctx context.Context, ticketID uint) error
}

func (m *mockAttachmentRepository) Save(ctx context.Context, attachment *ticket.Attachment) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, attachment)
	}
	return nil
}

func (m *mockAttachmentRepository) GetByID(ctx context.Context, attachmentID uint) (*ticket.Attachment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, attachmentID)
	}
	return nil, nil
}

func (m *mockAttachmentRepository) GetByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Attachment, error) {
	if m.GetByTicketIDFunc != nil {
		return m.GetByTicketIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockAttachmentRepository) CountByMessageID(ctx context.Context, messageID uint) (int, error) {
	if m.CountByMessageIDFunc != nil {
		return m.CountByMessageIDFunc(ctx, messageID)
	}
	return 0, nil
}

func (m *mockAttachmentRepository) Delete(ctx context.Context, attachmentID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, attachmentID)
	}
	return nil
}

func (m *mockAttachmentRepository) PurgeByTicketID(ctx context.Context, ticketID uint) error {
	if m.PurgeByTicketIDFunc != nil {
		return m.PurgeByTicketIDFunc(ctx, ticketID)
	}
	return nil
}

type mockChangeLogRepository struct {
	AppendFunc        func(ctx context.Context, entry *ticket.ChangeLogEntry) error
	GetByTicketIDFunc func(ctx context.Context, ticketID uint) ([]*ticket.ChangeLogEntry, error)

	appended []*ticket.ChangeLogEntry
}

func (m *mockChangeLogRepository) Append(ctx context.Context, entry *ticket.ChangeLogEntry) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, entry)
	}
	m.appended = append(m.appended, entry)
	return nil
}

func (m *mockChangeLogRepository) GetByTicketID(ctx context.Context, ticketID uint) ([]*ticket.ChangeLogEntry, error) {
	if m.GetByTicketIDFunc != nil {
		return m.GetByTicketIDFunc(ctx, ticketID)
	}
	return nil, nil
}

// mockTransactionManager runs the function inline, without a database.
type mockTransactionManager struct {
	RunFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTransactionManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunFunc != nil {
		return m.RunFunc(ctx, fn)
	}
	return fn(ctx)
}

// mockNotifier counts what was published; tests assert on the counters.
type mockNotifier struct {
	created  []ticket.TicketCreatedEvent
	status   []ticket.TicketStatusChangedEvent
	priority []ticket.TicketPriorityChangedEvent
	category []ticket.TicketCategoryChangedEvent
	messages []ticket.MessagePostedEvent
	purged   []ticket.TicketPurgedEvent
}

func (m *mockNotifier) TicketCreated(ctx context.Context, event ticket.TicketCreatedEvent) {
	m.created = append(m.created, event)
}

func (m *mockNotifier) StatusChanged(ctx context.Context, event ticket.TicketStatusChangedEvent) {
	m.status = append(m.status, event)
}

func (m *mockNotifier) PriorityChanged(ctx context.Context, event ticket.TicketPriorityChangedEvent) {
	m.priority = append(m.priority, event)
}

func (m *mockNotifier) CategoryChanged(ctx context.Context, event ticket.TicketCategoryChangedEvent) {
	m.category = append(m.category, event)
}

func (m *mockNotifier) MessagePosted(ctx context.Context, event ticket.MessagePostedEvent) {
	m.messages = append(m.messages, event)
}

func (m *mockNotifier) TicketPurged(ctx context.Context, event ticket.TicketPurgedEvent) {
	m.purged = append(m.purged, event)
}

type mockSweepLock struct {
	AcquireFunc func(ctx context.Context, instanceID string) (bool, error)
	ReleaseFunc func(ctx context.Context, instanceID string) error

	released int
}

func (m *mockSweepLock) Acquire(ctx context.Context, instanceID string) (bool, error) {
	if m.AcquireFunc != nil {
		return m.AcquireFunc(ctx, instanceID)
	}
	return true, nil
}

func (m *mockSweepLock) Release(ctx context.Context, instanceID string) error {
	m.released++
	if m.ReleaseFunc != nil {
		return m.ReleaseFunc(ctx, instanceID)
	}
	return nil
}

type mockBlobStore struct {
	StoreFunc        func(ctx context.Context, ticketID uint, originalName string, r io.Reader) (*storage.StoredBlob, error)
	OpenFunc         func(ctx context.Context, path string) (io.ReadCloser, error)
	RemoveFunc       func(ctx context.Context, path string) error
	RemoveTicketFunc func(ctx context.Context, ticketID uint) error

	removedPaths   []string
	removedTickets []uint
}

func (m *mockBlobStore) Store(ctx context.Context, ticketID uint, originalName string, r io.Reader) (*storage.StoredBlob, error) {
	if m.StoreFunc != nil {
		return m.StoreFunc(ctx, ticketID, originalName, r)
	}
	return &storage.StoredBlob{
		FileName:    "stored-" + originalName,
		Path:        "ticket-1/stored-" + originalName,
		Size:        1,
		ContentHash: "deadbeef",
	}, nil
}

func (m *mockBlobStore) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if m.OpenFunc != nil {
		return m.OpenFunc(ctx, path)
	}
	return nil, nil
}

func (m *mockBlobStore) Remove(ctx context.Context, path string) error {
	m.removedPaths = append(m.removedPaths, path)
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, path)
	}
	return nil
}

func (m *mockBlobStore) RemoveTicket(ctx context.Context, ticketID uint) error {
	m.removedTickets = append(m.removedTickets, ticketID)
	if m.RemoveTicketFunc != nil {
		return m.RemoveTicketFunc(ctx, ticketID)
	}
	return nil
}

type mockNumberGenerator struct {
	GenerateFunc func(ctx context.Context) (string, error)
}

func (m *mockNumberGenerator) Generate(ctx context.Context) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx)
	}
	return "T-20250101-0001", nil
}

type mockMarkdownRenderer struct {
	ToHTMLSanitizedFunc func(markdown string) (string, error)
}

func (m *mockMarkdownRenderer) ToHTML(markdown string) (string, error) {
	return markdown, nil
}

func (m *mockMarkdownRenderer) Sanitize(htmlContent string) string {
	return htmlContent
}

func (m *mockMarkdownRenderer) ToHTMLSanitized(markdown string) (string, error) {
	if m.ToHTMLSanitizedFunc != nil {
		return m.ToHTMLSanitizedFunc(markdown)
	}
	return "<p>" + markdown + "</p>", nil
}

type mockLogger struct {
	DebugFunc  func(msg string, args ...any)
	InfoFunc   func(msg string, args ...any)
	WarnFunc   func(msg string, args ...any)
	ErrorFunc  func(msg string, args ...any)
	FatalFunc  func(msg string, args ...any)
	DebugwFunc func(msg string, keysAndValues ...interface{})
	InfowFunc  func(msg string, keysAndValues ...interface{})
	WarnwFunc  func(msg string, keysAndValues ...interface{})
	ErrorwFunc func(msg string, keysAndValues ...interface{})
}

func (m *mockLogger) Debug(msg string, args ...any) {
	if m.DebugFunc != nil {
		m.DebugFunc(msg, args...)
	}
}

func (m *mockLogger) Info(msg string, args ...any) {
	if m.InfoFunc != nil {
		m.InfoFunc(msg, args...)
	}
}

func (m *mockLogger) Warn(msg string, args ...any) {
	if m.WarnFunc != nil {
		m.WarnFunc(msg, args...)
	}
}

func (m *mockLogger) Error(msg string, args ...any) {
	if m.ErrorFunc != nil {
		m.ErrorFunc(msg, args...)
	}
}

func (m *mockLogger) Fatal(msg string, args ...any) {
	if m.FatalFunc != nil {
		m.FatalFunc(msg, args...)
	}
}

func (m *mockLogger) With(args ...any) logger.Interface { return m }

func (m *mockLogger) Named(name string) logger.Interface { return m }

func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {
	if m.DebugwFunc != nil {
		m.DebugwFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Infow(msg string, keysAndValues ...interface{}) {
	if m.InfowFunc != nil {
		m.InfowFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{}) {
	if m.WarnwFunc != nil {
		m.WarnwFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {
	if m.ErrorwFunc != nil {
		m.ErrorwFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Fatalw(msg string, keysAndValues ...interface{}) {
	if m.ErrorwFunc != nil {
		m.ErrorwFunc(msg, keysAndValues...)
	}
}

// testTicket reconstructs a persisted-looking ticket in the given status.
func testTicket(id uint, status vo.TicketStatus, assigneeID *uint) *ticket.Ticket {
	createdAt := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	t, err := ticket.ReconstructTicket(
		id,
		"T-20250601-0001",
		"Printer on fire",
		"The office printer is on fire again.",
		status,
		vo.StatusNew,
		vo.PriorityMedium,
		vo.CategoryOrdinary,
		42,
		7,
		assigneeID,
		nil, nil, nil, nil,
		nil, nil,
		3,
		createdAt,
		createdAt,
	)
	if err != nil {
		panic(err)
	}
	return t
}

func uintPtr(v uint) *uint { return &v }
