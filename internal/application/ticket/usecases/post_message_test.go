package usecases

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmdesk/internal/domain/ticket"
	vo "crmdesk/internal/domain/ticket/valueobjects"
	"crmdesk/internal/shared/authorization"
	"crmdesk/internal/shared/errors"
)

func TestPostMessageUseCase_Execute_Success(t *testing.T) {
	existing := testTicket(1, vo.StatusWaiting, uintPtr(5))

	var saved *ticket.Message
	messageRepo := &mockMessageRepository{
		SaveFunc: func(ctx context.Context, m *ticket.Message) error {
			saved = m
			return m.SetID(77)
		},
	}
	ticketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return existing, nil
		},
	}
	notifier := &mockNotifier{}

	uc := NewPostMessageUseCase(ticketRepo, messageRepo, notifier, &mockLogger{})

	result, err := uc.Execute(context.Background(), PostMessageCommand{
		TicketID: 1,
		Body:     "Replaced the toner, please confirm.",
		Actor:    ticket.Actor{ID: 5, Role: authorization.RoleAgent},
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, uint(77), result.ID)

	require.NotNil(t, saved)
	assert.Equal(t, vo.MessageTypeText, saved.Type())

	require.Len(t, notifier.messages, 1)
	assert.Equal(t, uint(77), notifier.messages[0].MessageID)
}

func TestPostMessageUseCase_Execute_ForeignAgentForbidden(t *testing.T) {
	existing := testTicket(1, vo.StatusWaiting, uintPtr(99))

	ticketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return existing, nil
		},
	}
	notifier := &mockNotifier{}

	uc := NewPostMessageUseCase(ticketRepo, &mockMessageRepository{}, notifier, &mockLogger{})

	result, err := uc.Execute(context.Background(), PostMessageCommand{
		TicketID: 1,
		Body:     "hello",
		Actor:    ticket.Actor{ID: 5, Role: authorization.RoleAgent},
	})

	require.Error(t, err)
	assert.Nil(t, result)

	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorTypeForbidden, appErr.Type)
	assert.Empty(t, notifier.messages)
}

func TestPostMessageUseCase_Execute_BodyTooLong(t *testing.T) {
	existing := testTicket(1, vo.StatusWaiting, uintPtr(5))

	ticketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return existing, nil
		},
	}

	uc := NewPostMessageUseCase(ticketRepo, &mockMessageRepository{}, &mockNotifier{}, &mockLogger{})

	result, err := uc.Execute(context.Background(), PostMessageCommand{
		TicketID: 1,
		Body:     strings.Repeat("x", 10001),
		Actor:    ticket.Actor{ID: 5, Role: authorization.RoleAgent},
	})

	require.Error(t, err)
	assert.Nil(t, result)

	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
}
