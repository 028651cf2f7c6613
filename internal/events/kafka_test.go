package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	writer := &fakeWriter{}
	publisher := &KafkaPublisher{writer: writer}
	thumbnailID := uuid.New()
	userID := uuid.New()

	event := New(ThumbnailGenerated, thumbnailID, userID, GeneratedPayload("model-a", "https://cdn/x.png"))
	require.NoError(t, publisher.Publish(context.Background(), event))

	require.Len(t, writer.messages, 1)
	msg := writer.messages[0]
	assert.Equal(t, thumbnailID.String(), string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, ThumbnailGenerated, string(msg.Headers[0].Value))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, ThumbnailGenerated, decoded["type"])
	assert.Equal(t, userID.String(), decoded["user_id"])
	payload := decoded["payload"].(map[string]interface{})
	assert.Equal(t, "https://cdn/x.png", payload["image_url"])
}

func TestKafkaPublisher_PublishError(t *testing.T) {
	publisher := &KafkaPublisher{writer: &fakeWriter{err: errors.New("broker down")}}

	err := publisher.Publish(context.Background(), New(ThumbnailDeleted, uuid.New(), uuid.New(), nil))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "thumbnail.deleted")
	assert.Contains(t, err.Error(), "broker down")
}

func TestKafkaPublisher_Close(t *testing.T) {
	writer := &fakeWriter{}
	publisher := &KafkaPublisher{writer: writer}

	require.NoError(t, publisher.Close())
	assert.True(t, writer.closed)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), New(ThumbnailFailed, uuid.New(), uuid.New(), FailedPayload("x"))))
	assert.NoError(t, p.Close())
}
