package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"rpg-server/internal/interfaces"
	"rpg-server/internal/models"
)

const (
	// EncounterExchange is a durable fanout exchange; the event type is the routing key.
	EncounterExchange     = "encounter_events"
	encounterExchangeType = "fanout"
)

// EncounterPublisher implements interfaces.EventPublisher on a RabbitMQ channel.
type EncounterPublisher struct {
	mu     sync.Mutex
	ch     *amqp.Channel
	logger *zap.Logger
}

var _ interfaces.EventPublisher = (*EncounterPublisher)(nil)

func NewEncounterPublisher(conn *amqp.Connection, logger *zap.Logger) (*EncounterPublisher, error) {
	if conn == nil {
		return nil, fmt.Errorf("rabbitmq connection is nil")
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}
	err = ch.ExchangeDeclare(
		EncounterExchange,
		encounterExchangeType,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed to declare exchange '%s': %w", EncounterExchange, err)
	}
	logger.Info("Encounter exchange declared", zap.String("exchange", EncounterExchange))
	return &EncounterPublisher{ch: ch, logger: logger.Named("EncounterPublisher")}, nil
}

func (p *EncounterPublisher) PublishEncounterEvent(ctx context.Context, event models.EncounterEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal encounter event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.ch.PublishWithContext(ctx,
		EncounterExchange,
		event.Type,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.NewString(),
			Type:         event.Type,
			Timestamp:    event.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}
	p.logger.Debug("Encounter event published", zap.String("type", event.Type), zap.String("chapter", event.Chapter))
	return nil
}

func (p *EncounterPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		return p.ch.Close()
	}
	return nil
}
