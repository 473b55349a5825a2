package notify

import (
	"context"
	"log"

	"github.com/FlorianPALVADEAU/Overbound-sub003/pkg/rabbitmq"
)

type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// BrokerNotifier hands confirmations to the message broker; the consumer
// does the actual sending.
type BrokerNotifier struct {
	pub Publisher
}

func NewBrokerNotifier(pub Publisher) *BrokerNotifier {
	return &BrokerNotifier{pub: pub}
}

func (n *BrokerNotifier) RegistrationConfirmed(ctx context.Context, c Confirmation) {
	if err := n.pub.Publish(ctx, rabbitmq.RoutingRegistrationConfirmed, c); err != nil {
		log.Printf("[RabbitMQ] failed to publish confirmation for registration %d: %v", c.RegistrationID, err)
	}
}
