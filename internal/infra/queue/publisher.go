package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ReminderDueEvent событие о приближающемся визите
// Публикуется в очередь напоминаний, потребитель рассылает уведомления
type ReminderDueEvent struct {
	ReservationID   int64  `json:"reservationId"`
	CustomerID      int64  `json:"customerId"`
	ServiceID       int64  `json:"serviceId"`
	StaffID         *int64 `json:"staffId,omitempty"`
	ReservationDate string `json:"reservationDate"` // "2025-10-15"
	StartTime       string `json:"startTime"`       // "10:00"
	PartySize       int    `json:"partySize"`
}

// Publisher публикует события напоминаний в RabbitMQ
// Очередь durable, сообщения persistent - переживают перезапуск брокера
type Publisher struct {
	conn      *amqp.Connection
	channel   *amqp.Channel
	queueName string
}

// NewPublisher подключается к брокеру и объявляет очередь напоминаний
func NewPublisher(url, queueName string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: NewPublisher - dial: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: NewPublisher - open channel: %v", ErrConnect, err)
	}

	// Объявление идемпотентно, очередь переживает перезапуск брокера
	if _, err := ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // autoDelete
		false,     // exclusive
		false,     // noWait
		nil,       // args
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%w: NewPublisher - declare %s: %v", ErrDeclareQueue, queueName, err)
	}

	return &Publisher{
		conn:      conn,
		channel:   ch,
		queueName: queueName,
	}, nil
}

// PublishReminderDue публикует событие напоминания
func (p *Publisher) PublishReminderDue(ctx context.Context, event ReminderDueEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: PublishReminderDue - marshal event: %v", ErrPublish, err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := p.channel.PublishWithContext(ctx,
		"",          // default exchange
		p.queueName, // routing key = queue name
		false,       // mandatory
		false,       // immediate
		pub,
	); err != nil {
		return fmt.Errorf("%w: PublishReminderDue - publish: %v", ErrPublish, err)
	}

	return nil
}

// Close закрывает канал и соединение с брокером
func (p *Publisher) Close() error {
	if err := p.channel.Close(); err != nil {
		_ = p.conn.Close()
		return err
	}
	return p.conn.Close()
}
