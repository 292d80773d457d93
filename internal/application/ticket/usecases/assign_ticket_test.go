package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmdesk/internal/domain/ticket"
	vo "crmdesk/internal/domain/ticket/valueobjects"
	"crmdesk/internal/shared/authorization"
	"crmdesk/internal/shared/errors"
)

func TestAssignTicketUseCase_Execute_AdminAssignsAgent(t *testing.T) {
	existing := testTicket(1, vo.StatusWaiting, nil)

	var updated *ticket.Ticket
	ticketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			assert.Equal(t, uint(1), ticketID)
			return existing, nil
		},
		UpdateFunc: func(ctx context.Context, tk *ticket.Ticket) error {
			updated = tk
			return nil
		},
	}

	uc := NewAssignTicketUseCase(ticketRepo, &mockLogger{})

	result, err := uc.Execute(context.Background(), AssignTicketCommand{
		TicketID:   1,
		AssigneeID: 5,
		Actor:      ticket.Actor{ID: 2, Role: authorization.RoleAdmin},
	})

	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.True(t, existing.IsAssignedTo(5))
	assert.Equal(t, uint(5), result.AssigneeID)
	assert.Equal(t, "waiting", result.Status)
	assert.Equal(t, 4, result.Version)
}

// An elevated actor moving a new ticket to waiting does not become its
// assignee, so the ticket leaves the claimable column unowned. Explicit
// assignment is the path that hands it to an agent afterwards.
func TestAssignTicketUseCase_Execute_HandsUnclaimedWaitingTicketToAgent(t *testing.T) {
	admin := ticket.Actor{ID: 2, Role: authorization.RoleAdmin}
	agent := ticket.Actor{ID: 5, Role: authorization.RoleAgent}

	existing := testTicket(1, vo.StatusNew, nil)
	ticketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			return existing, nil
		},
	}

	statusUC := NewChangeStatusUseCase(
		ticketRepo, &mockMessageRepository{}, &mockChangeLogRepository{},
		&mockTransactionManager{}, &mockNotifier{}, &mockLogger{},
	)
	_, err := statusUC.Execute(context.Background(), ChangeStatusCommand{
		TicketID:       1,
		ExpectedStatus: vo.StatusNew,
		TargetStatus:   vo.StatusWaiting,
		Actor:          admin,
	})
	require.NoError(t, err)

	require.Nil(t, existing.AssigneeID())
	assert.False(t, ticket.CanDrag(agent, existing), "unowned waiting ticket is undraggable for agents")

	assignUC := NewAssignTicketUseCase(ticketRepo, &mockLogger{})
	_, err = assignUC.Execute(context.Background(), AssignTicketCommand{
		TicketID:   1,
		AssigneeID: agent.ID,
		Actor:      admin,
	})

	require.NoError(t, err)
	assert.True(t, existing.IsAssignedTo(agent.ID))
	assert.True(t, ticket.CanDrag(agent, existing))
	assert.True(t, ticket.CanReply(agent, existing))
}

func TestAssignTicketUseCase_Execute_AgentForbidden(t *testing.T) {
	loaded := false
	ticketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			loaded = true
			return testTicket(1, vo.StatusWaiting, nil), nil
		},
	}

	uc := NewAssignTicketUseCase(ticketRepo, &mockLogger{})

	result, err := uc.Execute(context.Background(), AssignTicketCommand{
		TicketID:   1,
		AssigneeID: 5,
		Actor:      ticket.Actor{ID: 9, Role: authorization.RoleAgent},
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.False(t, loaded, "permission check runs before any read")
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorTypeForbidden, appErr.Type)
}

func TestAssignTicketUseCase_Execute_RequiresAssigneeID(t *testing.T) {
	uc := NewAssignTicketUseCase(&mockTicketRepository{}, &mockLogger{})

	result, err := uc.Execute(context.Background(), AssignTicketCommand{
		TicketID: 1,
		Actor:    ticket.Actor{ID: 2, Role: authorization.RoleAdmin},
	})

	require.Error(t, err)
	assert.Nil(t, result)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
}

func TestAssignTicketUseCase_Execute_TicketNotFound(t *testing.T) {
	ticketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			return nil, errors.NewNotFoundError("ticket not found")
		},
	}

	uc := NewAssignTicketUseCase(ticketRepo, &mockLogger{})

	result, err := uc.Execute(context.Background(), AssignTicketCommand{
		TicketID:   404,
		AssigneeID: 5,
		Actor:      ticket.Actor{ID: 2, Role: authorization.RoleCoordinator},
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsNotFoundError(err))
}
