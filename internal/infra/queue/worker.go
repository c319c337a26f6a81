package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/infra/http/middleware"
)

// DealNotifier is whatever tells the coach a deal just closed. Today
// that is the SMTP sender; the worker does not care.
type DealNotifier interface {
	SendDealClosed(to, prospect string, amount float64, week, year int) error
}

type Worker struct {
	Channel    *amqp.Channel
	Notifier   DealNotifier
	CoachEmail string
}

func NewWorker(ch *amqp.Channel, notifier DealNotifier, coachEmail string) *Worker {
	return &Worker{
		Channel:    ch,
		Notifier:   notifier,
		CoachEmail: coachEmail,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual is safer)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("❌ Failed to register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload DealClosedPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] Malformed message: %s", err)
				// Poison message. Reject without requeue so the queue keeps moving.
				d.Nack(false, false)
				continue
			}

			log.Printf("📥 [WORKER] Deal closed: %s ($%.2f), week %d/%d",
				payload.ProspectName, payload.Value, payload.WeekNumber, payload.Year)
			middleware.RecordDealClosed(payload.Value)

			if err := w.Notifier.SendDealClosed(
				w.CoachEmail, payload.ProspectName, payload.Value, payload.WeekNumber, payload.Year,
			); err != nil {
				log.Printf("❌ [WORKER] Notification failed: %s", err)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker listening on queue '%s'", queueName)
	<-forever
}
