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

func TestChangePriorityUseCase_Execute_Success(t *testing.T) {
	existing := testTicket(1, vo.StatusWaiting, uintPtr(5))

	ticketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return existing, nil
		},
	}
	changeLogRepo := &mockChangeLogRepository{}
	notifier := &mockNotifier{}
	uc := NewChangePriorityUseCase(ticketRepo, changeLogRepo, &mockTransactionManager{}, notifier, &mockLogger{})

	result, err := uc.Execute(context.Background(), ChangePriorityCommand{
		TicketID: 1,
		Priority: vo.PriorityHigh,
		Actor:    ticket.Actor{ID: 2, Role: authorization.RoleCoordinator},
	})

	require.NoError(t, err)
	assert.Equal(t, "medium", result.OldPriority)
	assert.Equal(t, "high", result.NewPriority)
	assert.Equal(t, 4, result.Version)

	require.Len(t, changeLogRepo.appended, 1)
	assert.Equal(t, vo.ChangeTypePriority, changeLogRepo.appended[0].ChangeType())
	require.Len(t, notifier.priority, 1)
	assert.Equal(t, "high", notifier.priority[0].NewPriority)
}

func TestChangePriorityUseCase_Execute_SamePriorityIsNoOp(t *testing.T) {
	ticketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return testTicket(1, vo.StatusWaiting, uintPtr(5)), nil
		},
	}
	changeLogRepo := &mockChangeLogRepository{}
	notifier := &mockNotifier{}
	uc := NewChangePriorityUseCase(ticketRepo, changeLogRepo, &mockTransactionManager{}, notifier, &mockLogger{})

	result, err := uc.Execute(context.Background(), ChangePriorityCommand{
		TicketID: 1,
		Priority: vo.PriorityMedium,
		Actor:    ticket.Actor{ID: 2, Role: authorization.RoleCoordinator},
	})

	require.NoError(t, err)
	assert.Equal(t, "medium", result.OldPriority)
	assert.Equal(t, "medium", result.NewPriority)
	assert.Equal(t, 3, result.Version)
	assert.Empty(t, changeLogRepo.appended, "no audit row for a no-op")
	assert.Empty(t, notifier.priority)
}

func TestChangePriorityUseCase_Execute_UninvolvedAgentForbidden(t *testing.T) {
	ticketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return testTicket(1, vo.StatusWaiting, uintPtr(5)), nil
		},
	}
	uc := NewChangePriorityUseCase(ticketRepo, &mockChangeLogRepository{}, &mockTransactionManager{}, &mockNotifier{}, &mockLogger{})

	result, err := uc.Execute(context.Background(), ChangePriorityCommand{
		TicketID: 1,
		Priority: vo.PriorityHigh,
		Actor:    ticket.Actor{ID: 99, Role: authorization.RoleAgent},
	})

	require.Error(t, err)
	assert.Nil(t, result)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorTypeForbidden, appErr.Type)
}

func TestChangePriorityUseCase_Execute_InvalidPriority(t *testing.T) {
	uc := NewChangePriorityUseCase(&mockTicketRepository{}, &mockChangeLogRepository{}, &mockTransactionManager{}, &mockNotifier{}, &mockLogger{})

	result, err := uc.Execute(context.Background(), ChangePriorityCommand{
		TicketID: 1,
		Priority: vo.Priority("urgent"),
		Actor:    ticket.Actor{ID: 2, Role: authorization.RoleAdmin},
	})

	require.Error(t, err)
	assert.Nil(t, result)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
}
