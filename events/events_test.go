package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKafkaPublisherSendsJSON(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(value []byte) error {
		var event OrderEvent
		if err := json.Unmarshal(value, &event); err != nil {
			return err
		}
		if event.OrderID != "order-1" || event.Items != 2 {
			return errors.New("unexpected payload")
		}
		return nil
	})

	publisher := NewKafkaPublisherFromProducer(producer)
	err := publisher.Publish(context.Background(), TopicOrderCreated, "order-1", OrderEvent{
		OrderID:    "order-1",
		UserID:     "user-1",
		Status:     "PROCESSING",
		TotalPrice: decimal.RequireFromString("12.50"),
		Items:      2,
	})
	require.NoError(t, err)
	require.NoError(t, publisher.Close())
}

func TestKafkaPublisherReportsSendFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	publisher := NewKafkaPublisherFromProducer(producer)
	err := publisher.Publish(context.Background(), TopicProductRemoved, "7", ProductEvent{ProductID: 7})

	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, publisher.Close())
}

func TestKafkaPublisherHonoursCancelledContext(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	publisher := NewKafkaPublisherFromProducer(producer)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := publisher.Publish(ctx, TopicCartCleared, "user-1", CartEvent{UserID: "user-1"})
	assert.ErrorIs(t, err, context.Canceled)
	require.NoError(t, publisher.Close())
}

func TestLogPublisher(t *testing.T) {
	err := LogPublisher{}.Publish(context.Background(), TopicCartItemAdded, "user-1", CartEvent{UserID: "user-1", ProductID: 3})
	assert.NoError(t, err)
}
