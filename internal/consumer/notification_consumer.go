package consumer

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/notify"
)

type ConfirmationSender interface {
	Send(ctx context.Context, c notify.Confirmation) error
}

// acknowledger is the subset of amqp.Delivery the consumer needs.
type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

type NotificationConsumer struct {
	sender ConfirmationSender
}

func NewNotificationConsumer(sender ConfirmationSender) *NotificationConsumer {
	return &NotificationConsumer{sender: sender}
}

// Start sends a confirmation email for every registration.confirmed message.
func (nc *NotificationConsumer) Start(ctx context.Context, msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			nc.handleMessage(ctx, msg.Body, msg)
		}
		log.Println("[NotificationConsumer] channel closed, stopping consumer")
	}()
}

func (nc *NotificationConsumer) handleMessage(ctx context.Context, body []byte, ack acknowledger) {
	var c notify.Confirmation
	if err := json.Unmarshal(body, &c); err != nil || c.Email == "" || c.QRCodeToken == "" {
		log.Printf("[NotificationConsumer] dropping malformed message: %v", err)
		ack.Nack(false, false)
		return
	}

	if err := nc.sender.Send(ctx, c); err != nil {
		log.Printf("[NotificationConsumer] send for registration %d failed: %v", c.RegistrationID, err)
		ack.Nack(false, true)
		return
	}

	log.Printf("[NotificationConsumer] confirmation sent for registration %d", c.RegistrationID)
	ack.Ack(false)
}
