package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/spec-kit/ack-hub/internal/config"
	"github.com/spec-kit/ack-hub/internal/directory"
	"github.com/spec-kit/ack-hub/internal/events"
)

// EmailTrigger names the situations that send mail.
type EmailTrigger string

const (
	TriggerEmployeeSubmit   EmailTrigger = "employee_submit"
	TriggerSupervisorNotify EmailTrigger = "supervisor_notify"
	TriggerAdminNotify      EmailTrigger = "admin_notify"
	TriggerConfirmation     EmailTrigger = "confirmation"
)

// EmailMessage is an outgoing notification.
type EmailMessage struct {
	Trigger EmailTrigger
	From    string
	To      string
	Subject string
	Body    string
}

// EmailSender delivers messages. The default sender only logs.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	dir        *directory.Directory
	sender     EmailSender
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service. A nil sender logs messages.
func NewNotificationService(dispatcher events.Dispatcher, dir *directory.Directory, sender EmailSender, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if sender == nil {
		sender = logSender{logger: logger}
	}
	return &NotificationService{
		dispatcher: dispatcher,
		dir:        dir,
		sender:     sender,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventSubmissionCreated, n.handleSubmissionCreated)
	n.dispatcher.Subscribe(events.EventTypeCreated, n.handleCatalogChanged)
	n.dispatcher.Subscribe(events.EventTypeUpdated, n.handleCatalogChanged)
	n.dispatcher.Subscribe(events.EventTypeDeleted, n.handleCatalogChanged)
}

// messagesFor expands a submission into the four email triggers. Recipients
// that are unknown are skipped.
func (n *NotificationService) messagesFor(payload events.SubmissionCreatedPayload) []EmailMessage {
	summary := fmt.Sprintf("%s submitted %q (request %s)", payload.EmployeeName, payload.TypeTitle, payload.RequestNumber)
	var msgs []EmailMessage

	if payload.EmployeeEmail != "" {
		msgs = append(msgs,
			EmailMessage{
				Trigger: TriggerEmployeeSubmit,
				To:      payload.EmployeeEmail,
				Subject: "Acknowledgment submitted: " + payload.TypeTitle,
				Body:    summary,
			},
			EmailMessage{
				Trigger: TriggerConfirmation,
				To:      payload.EmployeeEmail,
				Subject: "Acknowledgment confirmed: " + payload.RequestNumber,
				Body:    "Your acknowledgment has been recorded. " + summary,
			},
		)
	}
	if payload.SupervisorEmail != "" {
		msgs = append(msgs, EmailMessage{
			Trigger: TriggerSupervisorNotify,
			To:      payload.SupervisorEmail,
			Subject: "New acknowledgment in " + payload.Unit,
			Body:    summary,
		})
	}
	if n.dir != nil {
		for _, admin := range n.dir.Admins() {
			msgs = append(msgs, EmailMessage{
				Trigger: TriggerAdminNotify,
				To:      admin.Email,
				Subject: "New acknowledgment submission",
				Body:    summary,
			})
		}
	}

	for i := range msgs {
		msgs[i].From = n.cfg.EmailFrom
	}
	return msgs
}

func (n *NotificationService) handleSubmissionCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.SubmissionCreatedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	n.logger.Info("SubmissionCreated", zap.String("submission_id", event.SubjectID), zap.String("unit", payload.Unit))

	var errs error
	if strings.TrimSpace(n.cfg.EmailFrom) != "" {
		for _, msg := range n.messagesFor(payload) {
			if err := n.sender.Send(ctx, msg); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("send %s to %s: %w", msg.Trigger, msg.To, err))
			}
		}
	}
	n.sendWebhookNotificationStub(ctx, event)
	return errs
}

func (n *NotificationService) handleCatalogChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("CatalogChanged",
		zap.String("type_id", event.SubjectID),
		zap.String("event_type", string(event.Type)),
		zap.String("actor", event.Actor.Email))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("subject_id", event.SubjectID),
		zap.String("event_type", string(event.Type)))
}

type logSender struct {
	logger *zap.Logger
}

func (s logSender) Send(_ context.Context, msg EmailMessage) error {
	s.logger.Debug("sendEmailNotificationStub",
		zap.String("trigger", string(msg.Trigger)),
		zap.String("from", msg.From),
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject))
	return nil
}
