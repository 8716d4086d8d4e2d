package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// EventType — тип доменного события.
type EventType string

// Типы событий.
const (
	EventSpecCreated      EventType = "spec.created"
	EventVersionCreated   EventType = "version.created"
	EventVersionPublished EventType = "version.published"
	EventVersionImported  EventType = "version.imported"
)

// ExchangeEvents — topic-обменник доменных событий. Потребители
// (рендеринг, уведомления) объявляют и привязывают свои очереди сами.
const ExchangeEvents = "flowdoc.events"

// Event — событие, публикуемое в обменник.
type Event struct {
	// ID — уникальный идентификатор события.
	ID string `json:"id"`

	// Type — тип события; он же routing key.
	Type EventType `json:"type"`

	// Payload — полезная нагрузка.
	Payload any `json:"payload"`

	// Timestamp — время создания события.
	Timestamp time.Time `json:"timestamp"`
}

// SpecPayload — payload событий уровня спецификации.
type SpecPayload struct {
	SpecID uuid.UUID `json:"spec_id"`
}

// VersionPayload — payload событий уровня версии.
type VersionPayload struct {
	SpecID    uuid.UUID `json:"spec_id"`
	VersionID uuid.UUID `json:"version_id"`
	Number    int       `json:"number"`
}

// Publisher публикует доменные события в RabbitMQ.
type Publisher struct {
	conn   *Connection
	logger *slog.Logger
}

// NewPublisher создаёт новый Publisher.
func NewPublisher(conn *Connection, logger *slog.Logger) *Publisher {
	return &Publisher{conn: conn, logger: logger}
}

// SetupTopology объявляет обменник событий.
func SetupTopology(conn *Connection) error {
	return conn.WithChannel(func(ch *amqp.Channel) error {
		err := ch.ExchangeDeclare(
			ExchangeEvents, // name
			"topic",        // type
			true,           // durable
			false,          // auto-deleted
			false,          // internal
			false,          // no-wait
			nil,            // arguments
		)
		if err != nil {
			return fmt.Errorf("declare exchange %s: %w", ExchangeEvents, err)
		}
		return nil
	})
}

// Publish публикует событие. Routing key — тип события.
func (p *Publisher) Publish(ctx context.Context, eventType EventType, payload any) error {
	event := &Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	return p.conn.WithChannel(func(ch *amqp.Channel) error {
		err := ch.PublishWithContext(
			ctx,
			ExchangeEvents,
			string(eventType),
			false,
			false,
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				MessageId:    event.ID,
				Timestamp:    event.Timestamp,
				Body:         body,
			},
		)
		if err != nil {
			return fmt.Errorf("publish %s: %w", eventType, err)
		}

		p.logger.Debug("published event",
			"type", eventType,
			"event_id", event.ID,
		)
		return nil
	})
}

// SpecCreated публикует событие о создании спецификации.
func (p *Publisher) SpecCreated(ctx context.Context, specID uuid.UUID) error {
	return p.Publish(ctx, EventSpecCreated, SpecPayload{SpecID: specID})
}

// VersionCreated публикует событие о создании версии (форк).
func (p *Publisher) VersionCreated(ctx context.Context, specID, versionID uuid.UUID, number int) error {
	return p.Publish(ctx, EventVersionCreated, VersionPayload{
		SpecID: specID, VersionID: versionID, Number: number,
	})
}

// VersionPublished публикует событие о публикации версии.
func (p *Publisher) VersionPublished(ctx context.Context, specID, versionID uuid.UUID, number int) error {
	return p.Publish(ctx, EventVersionPublished, VersionPayload{
		SpecID: specID, VersionID: versionID, Number: number,
	})
}

// VersionImported публикует событие об импорте графа из таблицы.
func (p *Publisher) VersionImported(ctx context.Context, specID, versionID uuid.UUID, number int) error {
	return p.Publish(ctx, EventVersionImported, VersionPayload{
		SpecID: specID, VersionID: versionID, Number: number,
	})
}
