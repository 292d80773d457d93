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

func newCloseTicketUseCase(ticketRepo *mockTicketRepository, changeLogRepo *mockChangeLogRepository, notifier *mockNotifier) *CloseTicketUseCase {
	return NewCloseTicketUseCase(
		ticketRepo, &mockMessageRepository{}, changeLogRepo,
		&mockTransactionManager{}, notifier, &mockLogger{},
	)
}

func TestCloseTicketUseCase_Execute_AssigneeClosesResolvedTicket(t *testing.T) {
	existing := testTicket(1, vo.StatusResolved, uintPtr(5))

	ticketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return existing, nil
		},
	}
	changeLogRepo := &mockChangeLogRepository{}
	notifier := &mockNotifier{}
	uc := newCloseTicketUseCase(ticketRepo, changeLogRepo, notifier)

	result, err := uc.Execute(context.Background(), CloseTicketCommand{
		TicketID: 1,
		Actor:    ticket.Actor{ID: 5, Role: authorization.RoleAgent},
	})

	require.NoError(t, err)
	assert.Equal(t, "resolved", result.OldStatus)
	assert.Equal(t, "closed", result.NewStatus)
	assert.Equal(t, 4, result.Version)

	require.Len(t, changeLogRepo.appended, 1)
	assert.Equal(t, vo.ChangeTypeStatus, changeLogRepo.appended[0].ChangeType())
	require.Len(t, notifier.status, 1)
	assert.Equal(t, "closed", notifier.status[0].NewStatus)
}

func TestCloseTicketUseCase_Execute_AgentCannotCloseUnresolvedTicket(t *testing.T) {
	ticketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return testTicket(1, vo.StatusWaiting, uintPtr(5)), nil
		},
	}
	uc := newCloseTicketUseCase(ticketRepo, &mockChangeLogRepository{}, &mockNotifier{})

	result, err := uc.Execute(context.Background(), CloseTicketCommand{
		TicketID: 1,
		Actor:    ticket.Actor{ID: 5, Role: authorization.RoleAgent},
	})

	require.Error(t, err)
	assert.Nil(t, result)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorTypeForbidden, appErr.Type)
}

func TestCloseTicketUseCase_Execute_CoordinatorClosesAnyResolvedTicket(t *testing.T) {
	ticketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return testTicket(1, vo.StatusResolved, uintPtr(5)), nil
		},
	}
	notifier := &mockNotifier{}
	uc := newCloseTicketUseCase(ticketRepo, &mockChangeLogRepository{}, notifier)

	result, err := uc.Execute(context.Background(), CloseTicketCommand{
		TicketID: 1,
		Actor:    ticket.Actor{ID: 2, Role: authorization.RoleCoordinator},
	})

	require.NoError(t, err)
	assert.Equal(t, "closed", result.NewStatus)
	require.Len(t, notifier.status, 1)
}

func TestRestoreTicketUseCase_Execute_ReopensArchivedTickets(t *testing.T) {
	for _, from := range []vo.TicketStatus{vo.StatusClosed, vo.StatusDeleted} {
		t.Run(from.String(), func(t *testing.T) {
			ticketRepo := &mockTicketRepository{
				GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
					return testTicket(1, from, uintPtr(5)), nil
				},
			}
			changeLogRepo := &mockChangeLogRepository{}
			notifier := &mockNotifier{}
			uc := NewRestoreTicketUseCase(
				ticketRepo, &mockMessageRepository{}, changeLogRepo,
				&mockTransactionManager{}, notifier, &mockLogger{},
			)

			result, err := uc.Execute(context.Background(), RestoreTicketCommand{
				TicketID: 1,
				Actor:    ticket.Actor{ID: 2, Role: authorization.RoleCoordinator},
			})

			require.NoError(t, err)
			assert.Equal(t, from.String(), result.OldStatus)
			assert.Equal(t, "waiting", result.NewStatus)
			require.Len(t, changeLogRepo.appended, 1)
			require.Len(t, notifier.status, 1)
		})
	}
}

func TestRestoreTicketUseCase_Execute_CannotRestoreLiveTicket(t *testing.T) {
	ticketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return testTicket(1, vo.StatusNew, nil), nil
		},
	}
	notifier := &mockNotifier{}
	uc := NewRestoreTicketUseCase(
		ticketRepo, &mockMessageRepository{}, &mockChangeLogRepository{},
		&mockTransactionManager{}, notifier, &mockLogger{},
	)

	result, err := uc.Execute(context.Background(), RestoreTicketCommand{
		TicketID: 1,
		Actor:    ticket.Actor{ID: 2, Role: authorization.RoleCoordinator},
	})

	require.Error(t, err)
	assert.Nil(t, result)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorTypeInvalidTransition, appErr.Type)
	assert.Empty(t, notifier.status)
}
