package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"servicedesk/internal/domain/entities"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKafkaSink_Publish(t *testing.T) {
	producer := mocks.NewAsyncProducer(t, nil)
	producer.ExpectInputWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != "audit" {
			return fmt.Errorf("unexpected topic %s", msg.Topic)
		}
		key, _ := msg.Key.Encode()
		if string(key) != "service_order/so-1" {
			return fmt.Errorf("unexpected key %s", key)
		}
		raw, _ := msg.Value.Encode()
		var e entities.AuditEvent
		if err := json.Unmarshal(raw, &e); err != nil {
			return err
		}
		if e.ID != "evt-1" || e.Transition != "claim" {
			return fmt.Errorf("unexpected event %+v", e)
		}
		return nil
	})
	producer.ExpectInputAndFail(errors.New("broker unavailable"))

	sink := NewKafkaSinkWithProducer(producer, "audit")
	ctx := context.Background()

	require.NoError(t, sink.Publish(ctx, entities.AuditEvent{
		ID: "evt-1", Entity: entities.EntityServiceOrder, EntityID: "so-1", Transition: "claim",
	}))
	require.NoError(t, sink.Publish(ctx, entities.AuditEvent{
		ID: "evt-2", Entity: entities.EntityInventoryItem, EntityID: "a", Transition: entities.TransitionStockReserve,
	}))

	require.NoError(t, sink.Close())
	assert.ErrorIs(t, sink.Publish(ctx, entities.AuditEvent{ID: "evt-3"}), ErrSinkClosed)
	assert.NoError(t, sink.Close())
}
