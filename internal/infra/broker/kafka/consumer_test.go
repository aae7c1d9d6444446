package kafka

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyHandler struct {
	failures int
	calls    int
	err      error
}

func (h *flakyHandler) Handle(ctx context.Context, msg *sarama.ConsumerMessage) error {
	h.calls++
	if h.calls <= h.failures {
		return h.err
	}
	return nil
}

func TestHandleRetriesTransientErrors(t *testing.T) {
	handler := &flakyHandler{failures: 2, err: errors.New("mongo down")}
	h := consumerGroupHandler{handler: handler, retries: []time.Duration{time.Millisecond, time.Millisecond, time.Millisecond}}

	require.NoError(t, h.handle(context.Background(), &sarama.ConsumerMessage{}))
	assert.Equal(t, 3, handler.calls)
}

func TestHandleStopsOnPermanentErrors(t *testing.T) {
	handler := &flakyHandler{failures: 10, err: fmt.Errorf("%w: bad payload", ErrPermanent)}
	h := consumerGroupHandler{handler: handler, retries: []time.Duration{time.Millisecond, time.Millisecond}}

	err := h.handle(context.Background(), &sarama.ConsumerMessage{})
	require.ErrorIs(t, err, ErrPermanent)
	assert.Equal(t, 1, handler.calls)
}

func TestHandleGivesUpAfterSchedule(t *testing.T) {
	handler := &flakyHandler{failures: 10, err: errors.New("still down")}
	h := consumerGroupHandler{handler: handler, retries: []time.Duration{time.Millisecond}}

	require.Error(t, h.handle(context.Background(), &sarama.ConsumerMessage{}))
	assert.Equal(t, 2, handler.calls)
}
