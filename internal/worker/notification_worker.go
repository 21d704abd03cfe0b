package worker

import (
	"github.com/spec-kit/ack-hub/internal/service"
)

// StartNotificationWorker subscribes the notification service to submission
// and catalog events.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}
