package kafka

import (
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"

	"github.com/Astemirdum/shareit-service/pkg/circuit_breaker"
)

const BookingTopic = "shareit.bookings"

type Config struct {
	Addrs   []string `envconfig:"KAFKA_ADDRS"`
	Breaker circuit_breaker.Config
}

func (cfg Config) Enabled() bool {
	return len(cfg.Addrs) > 0
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}

type EventType string

const (
	EventBookingCreated       EventType = "BOOKING_CREATED"
	EventBookingStatusChanged EventType = "BOOKING_STATUS_CHANGED"
)

type BookingEvent struct {
	EventID   uuid.UUID `json:"eventId"`
	EventType EventType `json:"eventType"`
	BookingID int64     `json:"bookingId"`
	ItemID    int64     `json:"itemId"`
	BookerID  int64     `json:"bookerId"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func NewBookingEvent(typ EventType, bookingID, itemID, bookerID int64, status string) BookingEvent {
	return BookingEvent{
		EventID:   uuid.New(),
		EventType: typ,
		BookingID: bookingID,
		ItemID:    itemID,
		BookerID:  bookerID,
		Status:    status,
		Timestamp: time.Now().UTC(),
	}
}
