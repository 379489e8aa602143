// Package audit delivers audit events after commit. Every sink is best
// effort: a failed delivery is logged and never reaches the caller's
// operation.
package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"servicedesk/internal/domain/entities"
	"servicedesk/internal/usecase/interfaces"
	"servicedesk/pkg/logger"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// DefaultQueueSize bounds the events waiting for the producer.
const DefaultQueueSize = 1024

var ErrSinkClosed = errors.New("audit sink closed")

// KafkaSink publishes events through an async producer. Publish only
// enqueues; delivery errors are drained in the background.
type KafkaSink struct {
	producer sarama.AsyncProducer
	topic    string
	queue    chan *sarama.ProducerMessage

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

var _ interfaces.IAuditSink = (*KafkaSink)(nil)

func NewProducerConfig(clientID string) *sarama.Config {
	config := sarama.NewConfig()
	config.ClientID = clientID
	config.Producer.Return.Successes = false
	config.Producer.Return.Errors = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForLocal
	config.Producer.Compression = sarama.CompressionSnappy
	return config
}

// NewKafkaSink dials the brokers and starts the error drain.
func NewKafkaSink(brokers []string, topic, clientID string) (*KafkaSink, error) {
	producer, err := sarama.NewAsyncProducer(brokers, NewProducerConfig(clientID))
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}
	logger.Logger.Info().Strs("brokers", brokers).Str("topic", topic).Msg("[audit][kafka] publisher initialized")
	return NewKafkaSinkWithProducer(producer, topic), nil
}

func NewKafkaSinkWithProducer(producer sarama.AsyncProducer, topic string) *KafkaSink {
	s := &KafkaSink{
		producer: producer,
		topic:    topic,
		queue:    make(chan *sarama.ProducerMessage, DefaultQueueSize),
	}
	s.wg.Add(2)
	go s.forward()
	go s.drain()
	return s
}

func (s *KafkaSink) forward() {
	defer s.wg.Done()
	for msg := range s.queue {
		s.producer.Input() <- msg
	}
	s.producer.AsyncClose()
}

func (s *KafkaSink) drain() {
	defer s.wg.Done()
	for perr := range s.producer.Errors() {
		logger.Logger.Error().Err(perr.Err).Str("topic", s.topic).Msg("[audit][kafka] event delivery failed")
	}
}

func (s *KafkaSink) Publish(ctx context.Context, event entities.AuditEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal audit event: %w", err)
	}

	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	headers := []sarama.RecordHeader{
		{Key: []byte("event_id"), Value: []byte(event.ID)},
		{Key: []byte("entity"), Value: []byte(event.Entity)},
		{Key: []byte("transition"), Value: []byte(event.Transition)},
	}
	for key, value := range carrier {
		headers = append(headers, sarama.RecordHeader{Key: []byte(key), Value: []byte(value)})
	}

	msg := &sarama.ProducerMessage{
		Topic:   s.topic,
		Key:     sarama.StringEncoder(event.Entity + "/" + event.EntityID),
		Value:   sarama.ByteEncoder(payload),
		Headers: headers,
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrSinkClosed
	}
	select {
	case s.queue <- msg:
		return nil
	default:
		return fmt.Errorf("audit queue full, dropped event %s", event.ID)
	}
}

// Close flushes queued messages, closes the producer and waits for the
// background goroutines.
func (s *KafkaSink) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.queue)
	s.mu.Unlock()
	s.wg.Wait()
	return nil
}
