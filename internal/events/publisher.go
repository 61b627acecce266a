package events

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

// DefaultExchange is the topic exchange quiz events are published on.
const DefaultExchange = "simulado.events"

var warnOut io.Writer = os.Stderr

// Publisher delivers quiz events to subscribers.
type Publisher interface {
	Publish(ctx context.Context, event *QuizEvent) error
	Close() error
}

// AMQPPublisher publishes to a RabbitMQ topic exchange.
type AMQPPublisher struct {
	mu       sync.Mutex
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
	enabled  bool
}

// NewAMQPPublisher connects to uri and declares exchange. An empty uri
// returns a disabled publisher that drops every event.
func NewAMQPPublisher(uri, exchange string) (*AMQPPublisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	if uri == "" {
		return &AMQPPublisher{exchange: exchange}, nil
	}

	conn, err := amqp091.Dial(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &AMQPPublisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		enabled:  true,
	}, nil
}

// Enabled reports whether events reach a broker.
func (p *AMQPPublisher) Enabled() bool { return p.enabled }

func (p *AMQPPublisher) Publish(ctx context.Context, event *QuizEvent) error {
	if !p.enabled {
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx,
		p.exchange,         // exchange
		string(event.Type), // routing key
		false,              // mandatory
		false,              // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
			Headers: amqp091.Table{
				"event_type": string(event.Type),
				"session_id": event.SessionID,
			},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

func (p *AMQPPublisher) Close() error {
	if !p.enabled {
		return nil
	}

	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			fmt.Fprintf(warnOut, "warning: closing RabbitMQ channel: %v\n", err)
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			return fmt.Errorf("error closing RabbitMQ connection: %w", err)
		}
	}
	return nil
}

// MockPublisher records published events in memory.
type MockPublisher struct {
	mu     sync.Mutex
	Events []QuizEvent
	Err    error
}

// NewMockPublisher creates an empty MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(_ context.Context, event *QuizEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Events = append(m.Events, *event)
	return nil
}

func (m *MockPublisher) Close() error { return nil }

// Published returns a copy of the recorded events.
func (m *MockPublisher) Published() []QuizEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]QuizEvent(nil), m.Events...)
}
