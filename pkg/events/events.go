package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/afroforma/roommaster/pkg/logger"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type Subscriber interface {
	Subscribe(subject string, handler func(msg *Message)) error
	QueueSubscribe(subject, queue string, handler func(msg *Message)) error
	Close() error
}

type EventBus interface {
	Publisher
	Subscriber
}

type Message struct {
	Subject   string
	Data      []byte
	Timestamp time.Time
}

type NATSEventBus struct {
	conn *nats.Conn
}

func NewNATSEventBus(url string) (*NATSEventBus, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSEventBus{conn: conn}, nil
}

func (n *NATSEventBus) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "Publishing event", "subject", subject, "data", string(payload))

	return n.conn.Publish(subject, payload)
}

func (n *NATSEventBus) Subscribe(subject string, handler func(msg *Message)) error {
	_, err := n.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(&Message{
			Subject:   msg.Subject,
			Data:      msg.Data,
			Timestamp: time.Now(),
		})
	})
	return err
}

func (n *NATSEventBus) QueueSubscribe(subject, queue string, handler func(msg *Message)) error {
	_, err := n.conn.QueueSubscribe(subject, queue, func(msg *nats.Msg) {
		handler(&Message{
			Subject:   msg.Subject,
			Data:      msg.Data,
			Timestamp: time.Now(),
		})
	})
	return err
}

func (n *NATSEventBus) Close() error {
	n.conn.Close()
	return nil
}

// Event subjects
const (
	ReservationCreated       = "reservation.created"
	ReservationStatusChanged = "reservation.status_changed"
	RoomStatusChanged        = "room.status_changed"
	UserCreated              = "user.created"
)

// Event payloads. Every event carries the tenant it belongs to so that
// consumers stay partitioned the same way the API is.
type ReservationCreatedEvent struct {
	TenantID      string    `json:"tenant_id"`
	ReservationID string    `json:"reservation_id"`
	RoomID        string    `json:"room_id,omitempty"`
	GuestName     string    `json:"guest_name"`
	CheckIn       time.Time `json:"check_in"`
	CheckOut      time.Time `json:"check_out"`
	CreatedAt     time.Time `json:"created_at"`
}

type ReservationStatusChangedEvent struct {
	TenantID      string    `json:"tenant_id"`
	ReservationID string    `json:"reservation_id"`
	Status        string    `json:"status"`
	ChangedAt     time.Time `json:"changed_at"`
}

type RoomStatusChangedEvent struct {
	TenantID  string    `json:"tenant_id"`
	RoomID    string    `json:"room_id"`
	Number    string    `json:"number"`
	Status    string    `json:"status"`
	ChangedAt time.Time `json:"changed_at"`
}

type UserCreatedEvent struct {
	TenantID  string    `json:"tenant_id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
