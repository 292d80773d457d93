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

func TestCreateTicketUseCase_Execute_Success(t *testing.T) {
	var saved *ticket.Ticket
	ticketRepo := &mockTicketRepository{
		SaveFunc: func(ctx context.Context, tk *ticket.Ticket) error {
			saved = tk
			return tk.SetID(10)
		},
	}
	numberGen := &mockNumberGenerator{
		GenerateFunc: func(ctx context.Context) (string, error) {
			return "T-20250601-0042", nil
		},
	}
	notifier := &mockNotifier{}

	uc := NewCreateTicketUseCase(ticketRepo, numberGen, notifier, &mockLogger{})

	result, err := uc.Execute(context.Background(), CreateTicketCommand{
		ContractID:  42,
		Title:       "VPN not connecting",
		Description: "The site-to-site tunnel drops every hour.",
		Priority:    "high",
		Category:    "ordinary",
		Actor:       ticket.Actor{ID: 7, Role: authorization.RoleAgent},
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "T-20250601-0042", result.Number)
	assert.Equal(t, vo.StatusNew.String(), result.Status)

	require.NotNil(t, saved)
	assert.Equal(t, vo.PriorityHigh, saved.Priority())
	assert.Nil(t, saved.AssigneeID(), "new tickets start unclaimed")

	require.Len(t, notifier.created, 1)
	assert.Equal(t, "T-20250601-0042", notifier.created[0].Number)
}

func TestCreateTicketUseCase_Execute_DefaultsPriorityAndCategory(t *testing.T) {
	var saved *ticket.Ticket
	ticketRepo := &mockTicketRepository{
		SaveFunc: func(ctx context.Context, tk *ticket.Ticket) error {
			saved = tk
			return tk.SetID(11)
		},
	}

	uc := NewCreateTicketUseCase(ticketRepo, &mockNumberGenerator{}, &mockNotifier{}, &mockLogger{})

	_, err := uc.Execute(context.Background(), CreateTicketCommand{
		ContractID:  42,
		Title:       "Question about invoice",
		Description: "Where can I download last month's invoice?",
		Actor:       ticket.Actor{ID: 7, Role: authorization.RoleAgent},
	})

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, vo.PriorityUnassigned, saved.Priority())
	assert.Equal(t, vo.CategoryOrdinary, saved.Category())
}

func TestCreateTicketUseCase_Execute_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		cmd  CreateTicketCommand
	}{
		{
			name: "missing actor",
			cmd: CreateTicketCommand{
				ContractID:  42,
				Title:       "t",
				Description: "d",
			},
		},
		{
			name: "missing contract",
			cmd: CreateTicketCommand{
				Title:       "t",
				Description: "d",
				Actor:       ticket.Actor{ID: 7, Role: authorization.RoleAgent},
			},
		},
		{
			name: "empty title",
			cmd: CreateTicketCommand{
				ContractID:  42,
				Description: "d",
				Actor:       ticket.Actor{ID: 7, Role: authorization.RoleAgent},
			},
		},
		{
			name: "invalid priority",
			cmd: CreateTicketCommand{
				ContractID:  42,
				Title:       "t",
				Description: "d",
				Priority:    "urgent",
				Actor:       ticket.Actor{ID: 7, Role: authorization.RoleAgent},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewCreateTicketUseCase(
				&mockTicketRepository{}, &mockNumberGenerator{}, &mockNotifier{}, &mockLogger{},
			)

			result, err := uc.Execute(context.Background(), tt.cmd)

			require.Error(t, err)
			assert.Nil(t, result)

			appErr, ok := err.(*errors.AppError)
			require.True(t, ok)
			assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
		})
	}
}

func TestCreateTicketUseCase_Execute_NumberGenerationFails(t *testing.T) {
	numberGen := &mockNumberGenerator{
		GenerateFunc: func(ctx context.Context) (string, error) {
			return "", assert.AnError
		},
	}
	notifier := &mockNotifier{}

	uc := NewCreateTicketUseCase(&mockTicketRepository{}, numberGen, notifier, &mockLogger{})

	result, err := uc.Execute(context.Background(), CreateTicketCommand{
		ContractID:  42,
		Title:       "t",
		Description: "d",
		Actor:       ticket.Actor{ID: 7, Role: authorization.RoleAgent},
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Empty(t, notifier.created)
}
