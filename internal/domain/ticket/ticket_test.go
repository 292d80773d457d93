package ticket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "crmdesk/internal/domain/ticket/valueobjects"
)

func newTestTicket(t *testing.T, status vo.TicketStatus, assigneeID *uint) *Ticket {
	t.Helper()

	created := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	ticket, err := ReconstructTicket(
		1,
		"T-20250601-0001",
		"printer on fire",
		"the office printer caught fire again",
		status,
		vo.StatusNew,
		vo.PriorityMedium,
		vo.CategoryOrdinary,
		42,
		7,
		assigneeID,
		nil, nil, nil, nil,
		nil, nil,
		1,
		created, created,
	)
	require.NoError(t, err)
	return ticket
}

func TestNewTicket_Defaults(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	ticket, err := NewTicket(42, "title", "description", "", "", 7, now)
	require.NoError(t, err)

	assert.Equal(t, vo.StatusNew, ticket.Status())
	assert.Equal(t, vo.PriorityUnassigned, ticket.Priority())
	assert.Equal(t, vo.CategoryOrdinary, ticket.Category())
	assert.Equal(t, 1, ticket.Version())
	assert.Nil(t, ticket.AssigneeID())
	assert.Nil(t, ticket.ResolvedAt())
}

func TestNewTicket_Validation(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name        string
		contractID  uint
		title       string
		description string
		creatorID   uint
	}{
		{"missing contract", 0, "t", "d", 7},
		{"missing title", 42, "", "d", 7},
		{"missing description", 42, "t", "", 7},
		{"missing creator", 42, "t", "d", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTicket(tt.contractID, tt.title, tt.description, vo.PriorityLow, vo.CategoryOrdinary, tt.creatorID, now)
			assert.Error(t, err)
		})
	}
}

func TestTicket_TransitionTo_LegalEdge(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	ticket := newTestTicket(t, vo.StatusNew, nil)

	err := ticket.TransitionTo(vo.StatusWaiting, now)
	require.NoError(t, err)

	assert.Equal(t, vo.StatusWaiting, ticket.Status())
	assert.Equal(t, vo.StatusNew, ticket.PreviousStatus())
	assert.Equal(t, 2, ticket.Version())
	assert.Equal(t, now, ticket.UpdatedAt())
}

func TestTicket_TransitionTo_IllegalEdge(t *testing.T) {
	now := time.Now()
	ticket := newTestTicket(t, vo.StatusNew, nil)

	err := ticket.TransitionTo(vo.StatusResolved, now)
	require.Error(t, err)

	// ticket left untouched
	assert.Equal(t, vo.StatusNew, ticket.Status())
	assert.Equal(t, 1, ticket.Version())
	assert.Nil(t, ticket.ResolvedAt())
}

func TestTicket_TransitionTo_TimestampsSetOnFirstEntry(t *testing.T) {
	resolveTime := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	closeTime := resolveTime.Add(time.Hour)

	ticket := newTestTicket(t, vo.StatusWaiting, nil)

	require.NoError(t, ticket.TransitionTo(vo.StatusResolved, resolveTime))
	require.NotNil(t, ticket.ResolvedAt())
	assert.Equal(t, resolveTime, *ticket.ResolvedAt())

	require.NoError(t, ticket.TransitionTo(vo.StatusClosed, closeTime))
	require.NotNil(t, ticket.ClosedAt())
	assert.Equal(t, closeTime, *ticket.ClosedAt())
	// resolved_at survives the close
	assert.Equal(t, resolveTime, *ticket.ResolvedAt())
}

func TestTicket_Reopen_ClearsResolvedAt(t *testing.T) {
	resolveTime := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	reopenTime := resolveTime.Add(2 * time.Hour)

	ticket := newTestTicket(t, vo.StatusWaiting, nil)
	require.NoError(t, ticket.TransitionTo(vo.StatusResolved, resolveTime))
	require.NoError(t, ticket.TransitionTo(vo.StatusWaiting, reopenTime))

	assert.Nil(t, ticket.ResolvedAt())
	assert.Equal(t, vo.StatusWaiting, ticket.Status())
	assert.Equal(t, vo.StatusResolved, ticket.PreviousStatus())
}

func TestTicket_RestoreFromClosed_ResetsLifecycle(t *testing.T) {
	base := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	ticket := newTestTicket(t, vo.StatusWaiting, nil)
	require.NoError(t, ticket.TransitionTo(vo.StatusResolved, base))
	require.NoError(t, ticket.TransitionTo(vo.StatusClosed, base.Add(time.Hour)))
	require.NoError(t, ticket.TransitionTo(vo.StatusWaiting, base.Add(2*time.Hour)))

	assert.Nil(t, ticket.ResolvedAt())
	assert.Nil(t, ticket.ClosedAt())
	require.NotNil(t, ticket.RestoredAt())
	assert.Equal(t, base.Add(2*time.Hour), *ticket.RestoredAt())

	// closing again after a restore records a fresh closed_at
	require.NoError(t, ticket.TransitionTo(vo.StatusResolved, base.Add(3*time.Hour)))
	require.NoError(t, ticket.TransitionTo(vo.StatusClosed, base.Add(4*time.Hour)))
	require.NotNil(t, ticket.ClosedAt())
	assert.Equal(t, base.Add(4*time.Hour), *ticket.ClosedAt())
}

func TestTicket_RestoreFromDeleted_ClearsDeletedAt(t *testing.T) {
	base := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	ticket := newTestTicket(t, vo.StatusClosed, nil)
	require.NoError(t, ticket.TransitionTo(vo.StatusDeleted, base))
	require.NotNil(t, ticket.DeletedAt())

	require.NoError(t, ticket.TransitionTo(vo.StatusWaiting, base.Add(time.Hour)))
	assert.Nil(t, ticket.DeletedAt())
	require.NotNil(t, ticket.RestoredAt())
}

func TestTicket_TransitionTo_VersionMonotonic(t *testing.T) {
	base := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	ticket := newTestTicket(t, vo.StatusNew, nil)

	steps := []vo.TicketStatus{
		vo.StatusWaiting,
		vo.StatusResolved,
		vo.StatusClosed,
		vo.StatusDeleted,
		vo.StatusRemoved,
	}

	for i, target := range steps {
		require.NoError(t, ticket.TransitionTo(target, base.Add(time.Duration(i)*time.Minute)))
		assert.Equal(t, i+2, ticket.Version())
	}
}

func TestTicket_AssignTo(t *testing.T) {
	now := time.Now()
	ticket := newTestTicket(t, vo.StatusNew, nil)

	require.NoError(t, ticket.AssignTo(9, now))
	assert.True(t, ticket.IsAssignedTo(9))
	assert.False(t, ticket.IsAssignedTo(10))
	assert.Equal(t, 2, ticket.Version())

	assert.Error(t, ticket.AssignTo(0, now))
}

func TestTicket_MarkReadBy(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	assignee := uint(9)
	ticket := newTestTicket(t, vo.StatusWaiting, &assignee)

	// creator
	assert.True(t, ticket.MarkReadBy(7, now))
	require.NotNil(t, ticket.CreatorLastReadAt())
	assert.Nil(t, ticket.AssigneeLastReadAt())

	// assignee
	assert.True(t, ticket.MarkReadBy(9, now))
	require.NotNil(t, ticket.AssigneeLastReadAt())

	// a bystander leaves no mark
	assert.False(t, ticket.MarkReadBy(99, now))
}

func TestTicket_UnreadFor(t *testing.T) {
	readAt := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	assignee := uint(9)
	ticket := newTestTicket(t, vo.StatusWaiting, &assignee)

	// empty thread is never unread
	assert.False(t, ticket.UnreadFor(7, nil))

	older := readAt.Add(-time.Minute)
	newer := readAt.Add(time.Minute)

	// no read mark yet: any message is unread
	assert.True(t, ticket.UnreadFor(7, &older))

	ticket.MarkReadBy(7, readAt)
	assert.False(t, ticket.UnreadFor(7, &older))
	assert.True(t, ticket.UnreadFor(7, &newer))

	// a viewer with no role on the ticket sees nothing as unread
	assert.False(t, ticket.UnreadFor(99, &newer))
}
