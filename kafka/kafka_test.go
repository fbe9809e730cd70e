package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	profile "github.com/tair/smartskin/internal/profile/domain"
)

func TestPublisher_PublishFeedbackRecorded(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	liked := true

	var sent FeedbackRecordedEvent
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != TopicFeedbackRecorded {
			return errors.New("wrong topic " + msg.Topic)
		}
		key, _ := msg.Key.Encode()
		if string(key) != "user_7" {
			return errors.New("wrong key " + string(key))
		}
		value, _ := msg.Value.Encode()
		return json.Unmarshal(value, &sent)
	})

	p := NewPublisherWithProducer(producer)
	require.NoError(t, p.PublishFeedbackRecorded(context.Background(), profile.Feedback{UserID: 7, ProductID: 3, Liked: &liked, Rating: 4}))
	require.NoError(t, p.Close())

	assert.Equal(t, EventTypeFeedbackRecorded, sent.EventType)
	assert.NotEmpty(t, sent.EventID)
	assert.Equal(t, uint(7), sent.UserID)
	assert.Equal(t, 3, sent.ProductID)
	require.NotNil(t, sent.Liked)
	assert.True(t, *sent.Liked)
}

func TestPublisher_SendFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewPublisherWithProducer(producer)
	err := p.PublishFeedbackRecorded(context.Background(), profile.Feedback{UserID: 1})
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, p.Close())
}

func TestConsumer_HandleMessage(t *testing.T) {
	c := newConsumer(nil, "test", []string{TopicFeedbackRecorded})
	var got []FeedbackRecordedEvent
	c.RegisterHandler(EventTypeFeedbackRecorded, func(_ context.Context, e FeedbackRecordedEvent) error {
		got = append(got, e)
		return nil
	})
	h := &consumerGroupHandler{consumer: c}

	value, err := json.Marshal(FeedbackRecordedEvent{EventID: "e1", UserID: 9, ProductID: 2})
	require.NoError(t, err)

	msg := func(eventType string, value []byte) *sarama.ConsumerMessage {
		m := &sarama.ConsumerMessage{Topic: TopicFeedbackRecorded, Value: value}
		if eventType != "" {
			m.Headers = []*sarama.RecordHeader{{Key: []byte("event_type"), Value: []byte(eventType)}}
		}
		return m
	}

	ctx := context.Background()
	h.handleMessage(ctx, msg(EventTypeFeedbackRecorded, value))
	h.handleMessage(ctx, msg("", value))
	h.handleMessage(ctx, msg("other.event", value))
	h.handleMessage(ctx, msg(EventTypeFeedbackRecorded, []byte("{not json")))

	require.Len(t, got, 1)
	assert.Equal(t, uint(9), got[0].UserID)
}
