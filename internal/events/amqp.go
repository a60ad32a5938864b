package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultQueue is the queue used when none is configured.
const DefaultQueue = "survey.completed"

// DefaultDialTimeout bounds the connection handshake when ctx has no deadline.
const DefaultDialTimeout = 3 * time.Second

// AMQP publishes events to a durable RabbitMQ queue through the default
// exchange. A connection is dialed per publish; completions are rare enough
// that holding a channel open is not worth the reconnect handling.
type AMQP struct {
	URL   string
	Queue string

	dial func(url string, cfg amqp.Config) (*amqp.Connection, error)
}

// NewAMQP returns a publisher for url and queue (DefaultQueue when empty).
func NewAMQP(url, queue string) *AMQP {
	if queue == "" {
		queue = DefaultQueue
	}
	return &AMQP{URL: url, Queue: queue, dial: amqp.DialConfig}
}

// PublishSurveyCompleted implements Publisher. Messages are JSON and marked
// persistent.
func (p *AMQP) PublishSurveyCompleted(ctx context.Context, ev SurveyCompleted) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("events: marshal: %w", err)
	}

	timeout, err := dialTimeout(ctx)
	if err != nil {
		return fmt.Errorf("events: dial: %w", err)
	}
	conn, err := p.dial(p.URL, amqp.Config{
		Dial:      amqp.DefaultDial(timeout),
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
	})
	if err != nil {
		return fmt.Errorf("events: dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("events: channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(p.Queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("events: declare %s: %w", p.Queue, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         "survey.completed",
		MessageId:    ev.ResponseID,
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.Queue, false, false, msg); err != nil {
		return fmt.Errorf("events: publish: %w", err)
	}
	return nil
}

// dialTimeout derives the handshake bound from ctx so a silent broker cannot
// hold the caller past its deadline.
func dialTimeout(ctx context.Context) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return DefaultDialTimeout, nil
	}
	d := time.Until(deadline)
	if d <= 0 {
		return 0, context.DeadlineExceeded
	}
	return d, nil
}
