package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmdesk/internal/domain/ticket"
	vo "crmdesk/internal/domain/ticket/valueobjects"
	"crmdesk/internal/shared/authorization"
)

func TestChangeCategoryUseCase_Execute_Success(t *testing.T) {
	existing := testTicket(1, vo.StatusWaiting, uintPtr(5))

	ticketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return existing, nil
		},
	}
	changeLogRepo := &mockChangeLogRepository{}
	notifier := &mockNotifier{}
	uc := NewChangeCategoryUseCase(ticketRepo, changeLogRepo, &mockTransactionManager{}, notifier, &mockLogger{})

	result, err := uc.Execute(context.Background(), ChangeCategoryCommand{
		TicketID: 1,
		Category: vo.CategoryExtraordinary,
		Actor:    ticket.Actor{ID: 2, Role: authorization.RoleCoordinator},
	})

	require.NoError(t, err)
	assert.Equal(t, "ordinary", result.OldCategory)
	assert.Equal(t, "extraordinary", result.NewCategory)

	require.Len(t, changeLogRepo.appended, 1)
	assert.Equal(t, vo.ChangeTypeCategory, changeLogRepo.appended[0].ChangeType())
	require.Len(t, notifier.category, 1)
}

func TestChangeCategoryUseCase_Execute_SameCategoryIsNoOp(t *testing.T) {
	ticketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return testTicket(1, vo.StatusWaiting, uintPtr(5)), nil
		},
	}
	changeLogRepo := &mockChangeLogRepository{}
	notifier := &mockNotifier{}
	uc := NewChangeCategoryUseCase(ticketRepo, changeLogRepo, &mockTransactionManager{}, notifier, &mockLogger{})

	result, err := uc.Execute(context.Background(), ChangeCategoryCommand{
		TicketID: 1,
		Category: vo.CategoryOrdinary,
		Actor:    ticket.Actor{ID: 2, Role: authorization.RoleCoordinator},
	})

	require.NoError(t, err)
	assert.Equal(t, "ordinary", result.NewCategory)
	assert.Empty(t, changeLogRepo.appended)
	assert.Empty(t, notifier.category)
}
