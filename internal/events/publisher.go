// Package events публикует аудит-события бэк-офиса в RabbitMQ.
//
// Каждое изменение каталога или пользователей порождает событие с типом
// действия и идентификатором затронутой сущности. Потребители (внешние
// системы аудита) читают их из своих очередей.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

// Типы аудит-событий.
const (
	SportCreated = "sport.created"
	SportUpdated = "sport.updated"
	SportDeleted = "sport.deleted"
	UserCreated  = "user.created"
	UserUpdated  = "user.updated"
)

// AuditEvent описывает одно событие аудита.
type AuditEvent struct {
	Action     string    `json:"action"`
	Subject    string    `json:"subject"` // Идентификатор затронутой сущности
	Actor      string    `json:"actor"`   // Имя пользователя, выполнившего действие
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher отправляет события аудита в заданный exchange.
type Publisher struct {
	ch       *amqp.Channel
	exchange string
}

// Connect подключается к RabbitMQ с повторными попытками.
func Connect(connection string, retries int, delay time.Duration) (*amqp.Connection, error) {
	const op = "events.Connect"
	var conn *amqp.Connection
	var err error

	for range retries {
		conn, err = amqp.Dial(connection)
		if err == nil {
			return conn, nil
		}
		time.Sleep(delay)
	}

	return nil, fmt.Errorf("%s: %w", op, err)
}

// NewPublisher открывает канал и объявляет exchange для событий аудита.
func NewPublisher(conn *amqp.Connection, exchange string) (*Publisher, error) {
	const op = "events.NewPublisher"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Publisher{ch: ch, exchange: exchange}, nil
}

// Publish сериализует событие в JSON и публикует его с routing key,
// равным типу действия.
func (p *Publisher) Publish(event AuditEvent) error {
	const op = "events.Publish"
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = p.ch.Publish(
		p.exchange,
		event.Action,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает канал публикации.
func (p *Publisher) Close() error {
	return p.ch.Close()
}
