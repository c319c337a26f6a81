package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DealClosedPayload is published when a deal is credited to a weekly
// aggregate. Consumers must treat it as at-least-once.
type DealClosedPayload struct {
	EntryID      string  `json:"entry_id"`
	UserID       string  `json:"user_id"`
	ProspectName string  `json:"prospect_name"`
	Value        float64 `json:"value"`
	WeekNumber   int     `json:"week_number"`
	Year         int     `json:"year"`
}

type DealClosedPublisherInterface interface {
	PublishDealClosed(ctx context.Context, payload DealClosedPayload) error
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishDealClosed(ctx context.Context, payload DealClosedPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshalling deal-closed payload: %v", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // survives a broker restart
		},
	)

	if err != nil {
		return fmt.Errorf("publishing to RabbitMQ: %v", err)
	}

	return nil
}
