package notification

import (
	"context"
	"strconv"
	"time"

	"crmdesk/internal/domain/ticket"
	"crmdesk/internal/infrastructure/pubsub"
	"crmdesk/internal/infrastructure/template"
	"crmdesk/internal/shared/goroutine"
	"crmdesk/internal/shared/logger"
)

// EmailSender abstracts the SMTP service for the dispatcher.
type EmailSender interface {
	Send(to []string, subject, htmlBody, plainBody string) error
	BaseURL() string
}

// Dispatcher fans domain events out to email and the cross-instance event
// bus. Every delivery is fire-and-forget on its own goroutine: a slow or
// failing channel never blocks or rolls back the mutation that emitted the
// event.
type Dispatcher struct {
	email      EmailSender
	templates  *template.TicketTemplateLoader
	eventBus   pubsub.TicketEventPublisher
	recipients []string
	enabled    bool
	logger     logger.Interface
}

func NewDispatcher(
	email EmailSender,
	templates *template.TicketTemplateLoader,
	eventBus pubsub.TicketEventPublisher,
	recipients []string,
	enabled bool,
	logger logger.Interface,
) *Dispatcher {
	return &Dispatcher{
		email:      email,
		templates:  templates,
		eventBus:   eventBus,
		recipients: recipients,
		enabled:    enabled,
		logger:     logger,
	}
}

func (d *Dispatcher) TicketCreated(ctx context.Context, event ticket.TicketCreatedEvent) {
	d.publish(pubsub.TicketEvent{
		Type:     pubsub.TicketEventCreated,
		TicketID: event.TicketID,
		Number:   event.Number,
		ActorID:  event.CreatorID,
	})
	d.sendEmail("ticket_created", map[string]string{
		"ticket_id":   strconv.FormatUint(uint64(event.TicketID), 10),
		"number":      event.Number,
		"title":       event.Title,
		"contract_id": strconv.FormatUint(uint64(event.ContractID), 10),
	})
}

func (d *Dispatcher) StatusChanged(ctx context.Context, event ticket.TicketStatusChangedEvent) {
	d.publish(pubsub.TicketEvent{
		Type:      pubsub.TicketEventStatusChanged,
		TicketID:  event.TicketID,
		Number:    event.Number,
		ActorID:   event.ActorID,
		OldStatus: event.OldStatus,
		NewStatus: event.NewStatus,
	})
	d.sendEmail("status_changed", map[string]string{
		"ticket_id":  strconv.FormatUint(uint64(event.TicketID), 10),
		"number":     event.Number,
		"old_status": event.OldStatus,
		"new_status": event.NewStatus,
	})
}

func (d *Dispatcher) PriorityChanged(ctx context.Context, event ticket.TicketPriorityChangedEvent) {
	d.publish(pubsub.TicketEvent{
		Type:     pubsub.TicketEventPriorityChanged,
		TicketID: event.TicketID,
		Number:   event.Number,
		ActorID:  event.ActorID,
	})
}

func (d *Dispatcher) CategoryChanged(ctx context.Context, event ticket.TicketCategoryChangedEvent) {
	d.publish(pubsub.TicketEvent{
		Type:     pubsub.TicketEventCategoryChanged,
		TicketID: event.TicketID,
		Number:   event.Number,
		ActorID:  event.ActorID,
	})
}

func (d *Dispatcher) MessagePosted(ctx context.Context, event ticket.MessagePostedEvent) {
	d.publish(pubsub.TicketEvent{
		Type:     pubsub.TicketEventMessagePosted,
		TicketID: event.TicketID,
		ActorID:  event.ActorID,
	})
	d.sendEmail("message_posted", map[string]string{
		"ticket_id": strconv.FormatUint(uint64(event.TicketID), 10),
	})
}

func (d *Dispatcher) TicketPurged(ctx context.Context, event ticket.TicketPurgedEvent) {
	d.publish(pubsub.TicketEvent{
		Type:     pubsub.TicketEventPurged,
		TicketID: event.TicketID,
		Number:   event.Number,
		ActorID:  event.ActorID,
	})
	d.sendEmail("ticket_purged", map[string]string{
		"ticket_id": strconv.FormatUint(uint64(event.TicketID), 10),
		"number":    event.Number,
	})
}

func (d *Dispatcher) publish(event pubsub.TicketEvent) {
	if d.eventBus == nil {
		return
	}
	goroutine.SafeGo(d.logger, "ticket-event-publish", func() {
		ctx, cancel := publishContext()
		defer cancel()
		if err := d.eventBus.Publish(ctx, event); err != nil {
			d.logger.Warnw("failed to publish ticket event",
				"event_type", event.Type, "ticket_id", event.TicketID, "error", err)
		}
	})
}

// publishContext bounds a fire-and-forget delivery; the emitting request's
// context may already be gone by the time the goroutine runs.
func publishContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

func (d *Dispatcher) sendEmail(event string, vars map[string]string) {
	if !d.enabled || d.email == nil || len(d.recipients) == 0 {
		return
	}

	vars["base_url"] = d.email.BaseURL()

	subject, body, err := d.templates.Render(event, vars)
	if err != nil {
		d.logger.Warnw("failed to render notification", "event", event, "error", err)
		return
	}

	goroutine.SafeGo(d.logger, "ticket-notification-email", func() {
		if err := d.email.Send(d.recipients, subject, "", body); err != nil {
			d.logger.Warnw("failed to send notification email",
				"event", event, "error", err)
		}
	})
}
