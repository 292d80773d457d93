package template

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"crmdesk/internal/shared/logger"
)

// NotificationTemplate is one renderable subject/body pair. Bodies use
// {placeholder} substitution; unknown placeholders are left verbatim.
type NotificationTemplate struct {
	Subject string `yaml:"subject"`
	Body    string `yaml:"body"`
}

// TicketTemplateLoader loads notification templates from a YAML file keyed by
// event name (ticket_created, status_changed, message_posted, ticket_purged).
// A missing file is not an error; built-in defaults are used instead.
type TicketTemplateLoader struct {
	templates map[string]NotificationTemplate
	path      string
	logger    logger.Interface
}

func NewTicketTemplateLoader(path string, logger logger.Interface) *TicketTemplateLoader {
	return &TicketTemplateLoader{
		templates: defaultTemplates(),
		path:      path,
		logger:    logger,
	}
}

// Load reads the template file, overriding defaults for every event it names.
func (l *TicketTemplateLoader) Load() error {
	if l.path == "" {
		return nil
	}

	content, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		l.logger.Warnw("notification template file not found, using defaults", "path", l.path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read notification templates: %w", err)
	}

	var loaded map[string]NotificationTemplate
	if err := yaml.Unmarshal(content, &loaded); err != nil {
		return fmt.Errorf("failed to parse notification templates: %w", err)
	}

	for event, tpl := range loaded {
		if tpl.Subject == "" || tpl.Body == "" {
			l.logger.Warnw("skipping incomplete notification template", "event", event)
			continue
		}
		l.templates[event] = tpl
	}

	l.logger.Infow("notification templates loaded", "path", l.path, "count", len(loaded))
	return nil
}

// Render produces the subject and body for an event, substituting
// {key} placeholders from vars.
func (l *TicketTemplateLoader) Render(event string, vars map[string]string) (subject, body string, err error) {
	tpl, ok := l.templates[event]
	if !ok {
		return "", "", fmt.Errorf("no notification template for event %q", event)
	}

	replacements := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		replacements = append(replacements, "{"+k+"}", v)
	}
	replacer := strings.NewReplacer(replacements...)

	return replacer.Replace(tpl.Subject), replacer.Replace(tpl.Body), nil
}

func defaultTemplates() map[string]NotificationTemplate {
	return map[string]NotificationTemplate{
		"ticket_created": {
			Subject: "[{number}] New ticket: {title}",
			Body:    "Ticket {number} was created for contract {contract_id}.\n\n{title}\n\nView it at {base_url}/tickets/{ticket_id}",
		},
		"status_changed": {
			Subject: "[{number}] Status changed to {new_status}",
			Body:    "Ticket {number} moved from {old_status} to {new_status}.\n\nView it at {base_url}/tickets/{ticket_id}",
		},
		"message_posted": {
			Subject: "[{number}] New reply",
			Body:    "A new message was posted on ticket {number}.\n\nView it at {base_url}/tickets/{ticket_id}",
		},
		"ticket_purged": {
			Subject: "[{number}] Ticket permanently removed",
			Body:    "Ticket {number} passed its retention period and was permanently removed. Its change log remains available.",
		},
	}
}
