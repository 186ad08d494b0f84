package events

import (
	"context"
	"strconv"

	"github.com/IBM/sarama"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/Astemirdum/shareit-service/pkg/circuit_breaker"
	"github.com/Astemirdum/shareit-service/pkg/kafka"
	"github.com/Astemirdum/shareit-service/shareit/internal/service"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Publisher sends booking events to Kafka, keyed by item id so events of one
// item stay ordered within a partition.
type Publisher struct {
	producer sarama.SyncProducer
	cb       circuit_breaker.CircuitBreaker
	topic    string
	log      *zap.Logger
}

var _ service.Notifier = (*Publisher)(nil)

func NewPublisher(producer sarama.SyncProducer, cfg circuit_breaker.Config, log *zap.Logger) *Publisher {
	log = log.Named("publisher")
	return &Publisher{
		producer: producer,
		cb: circuit_breaker.New(cfg, circuit_breaker.OnStateChange(func(from, to circuit_breaker.Status) {
			log.Warn("kafka breaker state changed", zap.Stringer("from", from), zap.Stringer("to", to))
		})),
		topic: kafka.BookingTopic,
		log:   log,
	}
}

func (p *Publisher) BookingChanged(_ context.Context, event kafka.BookingEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		p.log.Error("marshal event", zap.Error(err))
		return
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(event.ItemID, 10)),
		Value: sarama.ByteEncoder(data),
	}
	err = p.cb.Call(func() error {
		_, _, err := p.producer.SendMessage(msg)
		return err
	})
	if err != nil {
		p.log.Warn("booking event dropped",
			zap.String("eventID", event.EventID.String()),
			zap.Int64("bookingID", event.BookingID),
			zap.Error(err))
		return
	}
	p.log.Debug("booking event sent", zap.String("eventType", string(event.EventType)), zap.Int64("bookingID", event.BookingID))
}

func (p *Publisher) Close() error {
	return p.producer.Close()
}
