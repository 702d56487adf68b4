// internal/notify/service.go
package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mindstore/order-service/internal/pkg/telegram"
	"github.com/sirupsen/logrus"
)

// DeliveryFailure records one recipient the message could not reach
type DeliveryFailure struct {
	ChatID string `json:"chat_id"`
	Reason string `json:"reason"`
}

// Result reports the outcome of a relay request. Success means the message
// was accepted (formatted and logged), never a delivery confirmation: a
// partial delivery or the zero-recipient case still reports success.
type Result struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	Delivered []string          `json:"delivered"`
	Failed    []DeliveryFailure `json:"failed"`
}

// Service delivers formatted notifications to every registered recipient.
// Deliveries fan out concurrently, each with its own timeout, so one slow
// or unreachable chat cannot block the others. There are no retries and no
// queueing: a failed delivery is logged and dropped.
type Service struct {
	registry    *Registry
	sender      telegram.Sender
	logger      *logrus.Logger
	sendTimeout time.Duration
}

// NewService creates a notification relay service
func NewService(registry *Registry, sender telegram.Sender, logger *logrus.Logger, sendTimeout time.Duration) *Service {
	if sendTimeout <= 0 {
		sendTimeout = 5 * time.Second
	}
	return &Service{
		registry:    registry,
		sender:      sender,
		logger:      logger,
		sendTimeout: sendTimeout,
	}
}

// Registry exposes the recipient registry for the subscription webhook
func (s *Service) Registry() *Registry {
	return s.registry
}

// Send delivers a message to all recipients and waits for every attempt to
// resolve before returning
func (s *Service) Send(ctx context.Context, text string) Result {
	recipients := s.registry.Recipients()

	if len(recipients) == 0 {
		// Degenerate "logged but not sent" case, deliberately a success
		s.logger.WithField("message", text).
			Info("Notification logged (not sent due to missing chat ID)")
		return Result{
			Success:   true,
			Message:   "Message logged (not sent due to missing chat ID)",
			Delivered: []string{},
			Failed:    []DeliveryFailure{},
		}
	}

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		delivered []string
		failed    []DeliveryFailure
	)

	for _, chatID := range recipients {
		wg.Add(1)
		go func(chatID string) {
			defer wg.Done()

			sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
			defer cancel()

			err := s.sender.SendMessage(sendCtx, chatID, text)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.logger.WithError(err).WithField("chat_id", chatID).
					Error("Failed to send notification")
				failed = append(failed, DeliveryFailure{ChatID: chatID, Reason: err.Error()})
				return
			}
			s.logger.WithField("chat_id", chatID).Debug("Notification sent")
			delivered = append(delivered, chatID)
		}(chatID)
	}
	wg.Wait()

	if delivered == nil {
		delivered = []string{}
	}
	if failed == nil {
		failed = []DeliveryFailure{}
	}

	message := fmt.Sprintf("Message sent to %d chat(s)", len(delivered))
	if len(failed) > 0 {
		message = fmt.Sprintf("Message sent to %d of %d chat(s)", len(delivered), len(recipients))
	}

	return Result{
		Success:   true,
		Message:   message,
		Delivered: delivered,
		Failed:    failed,
	}
}
