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

func TestListTicketsUseCase_Execute_FilterPassthrough(t *testing.T) {
	var captured ticket.TicketFilter
	ticketRepo := &mockTicketRepository{
		ListFunc: func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
			captured = filter
			return []*ticket.Ticket{
				testTicket(1, vo.StatusWaiting, uintPtr(5)),
				testTicket(2, vo.StatusWaiting, uintPtr(5)),
			}, 12, nil
		},
	}
	uc := NewListTicketsUseCase(ticketRepo, &mockLogger{})

	result, err := uc.Execute(context.Background(), ListTicketsQuery{
		Status:     "waiting",
		Priority:   "high",
		Category:   "extraordinary",
		AssigneeID: uintPtr(5),
		Page:       2,
		PageSize:   10,
		SortBy:     "updated_at",
		SortOrder:  "desc",
		Actor:      ticket.Actor{ID: 5, Role: authorization.RoleAgent},
	})

	require.NoError(t, err)
	require.NotNil(t, captured.Status)
	assert.Equal(t, vo.StatusWaiting, *captured.Status)
	require.NotNil(t, captured.Priority)
	assert.Equal(t, vo.PriorityHigh, *captured.Priority)
	require.NotNil(t, captured.Category)
	assert.Equal(t, vo.CategoryExtraordinary, *captured.Category)
	require.NotNil(t, captured.AssigneeID)
	assert.Equal(t, uint(5), *captured.AssigneeID)
	assert.Equal(t, 2, captured.Page)
	assert.Equal(t, 10, captured.PageSize)
	assert.Equal(t, "updated_at", captured.SortBy)

	assert.Len(t, result.Tickets, 2)
	assert.Equal(t, int64(12), result.Total)
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 10, result.PageSize)
}

func TestListTicketsUseCase_Execute_ArchivedColumnsElevatedOnly(t *testing.T) {
	for _, status := range []string{"closed", "deleted"} {
		t.Run(status, func(t *testing.T) {
			uc := NewListTicketsUseCase(&mockTicketRepository{}, &mockLogger{})

			_, err := uc.Execute(context.Background(), ListTicketsQuery{
				Status: status,
				Actor:  ticket.Actor{ID: 5, Role: authorization.RoleAgent},
			})
			require.Error(t, err)
			appErr, ok := err.(*errors.AppError)
			require.True(t, ok)
			assert.Equal(t, errors.ErrorTypeForbidden, appErr.Type)

			_, err = uc.Execute(context.Background(), ListTicketsQuery{
				Status: status,
				Actor:  ticket.Actor{ID: 1, Role: authorization.RoleCoordinator},
			})
			require.NoError(t, err)
		})
	}
}

func TestListTicketsUseCase_Execute_InvalidFilters(t *testing.T) {
	tests := []struct {
		name  string
		query ListTicketsQuery
	}{
		{"invalid status", ListTicketsQuery{Status: "archived"}},
		{"invalid priority", ListTicketsQuery{Priority: "urgent"}},
		{"invalid category", ListTicketsQuery{Category: "misc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewListTicketsUseCase(&mockTicketRepository{}, &mockLogger{})

			tt.query.Actor = ticket.Actor{ID: 1, Role: authorization.RoleAdmin}
			result, err := uc.Execute(context.Background(), tt.query)

			require.Error(t, err)
			assert.Nil(t, result)
			appErr, ok := err.(*errors.AppError)
			require.True(t, ok)
			assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
		})
	}
}

func TestListTicketsUseCase_Execute_NormalizesPagination(t *testing.T) {
	var captured ticket.TicketFilter
	ticketRepo := &mockTicketRepository{
		ListFunc: func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
			captured = filter
			return nil, 0, nil
		},
	}
	uc := NewListTicketsUseCase(ticketRepo, &mockLogger{})

	result, err := uc.Execute(context.Background(), ListTicketsQuery{
		Page:     0,
		PageSize: 500,
		Actor:    ticket.Actor{ID: 1, Role: authorization.RoleAdmin},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, captured.Page)
	assert.Equal(t, 50, captured.PageSize)
	assert.Empty(t, result.Tickets)
}
