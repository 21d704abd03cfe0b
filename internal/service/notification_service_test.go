package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/ack-hub/internal/config"
	"github.com/spec-kit/ack-hub/internal/directory"
	"github.com/spec-kit/ack-hub/internal/events"
)

type captureSender struct {
	sent []EmailMessage
	fail map[EmailTrigger]bool
}

func (c *captureSender) Send(_ context.Context, msg EmailMessage) error {
	if c.fail[msg.Trigger] {
		return errors.New("mailbox unavailable")
	}
	c.sent = append(c.sent, msg)
	return nil
}

func TestNotificationsForSubmission(t *testing.T) {
	f := newFixture(t)
	sender := &captureSender{}
	notifier := NewNotificationService(f.dispatcher, directory.Default(""), sender, zap.NewNop(),
		config.NotificationConfig{EmailFrom: "noreply@domain.com"})
	notifier.RegisterHandlers()

	f.submitAs(t, "omar.khalil@domain.com", "safety")

	triggers := map[EmailTrigger][]string{}
	for _, msg := range sender.sent {
		assert.Equal(t, "noreply@domain.com", msg.From)
		triggers[msg.Trigger] = append(triggers[msg.Trigger], msg.To)
	}
	assert.Equal(t, []string{"omar.khalil@domain.com"}, triggers[TriggerEmployeeSubmit])
	assert.Equal(t, []string{"omar.khalil@domain.com"}, triggers[TriggerConfirmation])
	assert.Equal(t, []string{"supervisorC@domain.com"}, triggers[TriggerSupervisorNotify])
	assert.Equal(t, []string{"amer.alsomali@domain.com", "admin2@domain.com"}, triggers[TriggerAdminNotify])
}

func TestNotificationsSkipEmailWithoutSender(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	sender := &captureSender{}
	notifier := NewNotificationService(dispatcher, directory.Default(""), sender, zap.NewNop(), config.NotificationConfig{})
	notifier.RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:    events.EventSubmissionCreated,
		Payload: events.SubmissionCreatedPayload{EmployeeName: "Anon"},
	})
	require.NoError(t, err)
	assert.Empty(t, sender.sent)
}

func TestNotificationFailuresDoNotBlockSubmission(t *testing.T) {
	f := newFixture(t)
	sender := &captureSender{fail: map[EmailTrigger]bool{TriggerSupervisorNotify: true}}
	notifier := NewNotificationService(f.dispatcher, f.dir, sender, zap.NewNop(),
		config.NotificationConfig{EmailFrom: "noreply@domain.com"})
	notifier.RegisterHandlers()

	sub := f.submitAs(t, "ahmed.khaled@domain.com", "safety")
	assert.NotEmpty(t, sub.ID)
	assert.Len(t, sender.sent, 4)

	err := f.dispatcher.Publish(context.Background(), events.Event{Type: events.EventSubmissionCreated, Payload: "bogus"})
	assert.Error(t, err)
}
