package redis

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisBrokerRejectsBadURL(t *testing.T) {
	logger := zerolog.Nop()
	_, err := NewRedisBroker(Config{URL: "not a url"}, &logger)
	assert.Error(t, err)
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	logger := zerolog.Nop()
	broker, err := NewRedisBroker(Config{
		// Nothing listens on port 1.
		URL:              "redis://127.0.0.1:1/0",
		MaxRetries:       -1,
		DialTimeout:      200 * time.Millisecond,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
	}, &logger)
	require.NoError(t, err)
	defer broker.Close()

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		err := broker.Publish(ctx, "hims.records", map[string]string{"n": "x"})
		require.Error(t, err)
		assert.NotErrorIs(t, err, gobreaker.ErrOpenState)
	}

	err = broker.Publish(ctx, "hims.records", map[string]string{"n": "x"})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func TestPublishRejectsUnencodableMessage(t *testing.T) {
	logger := zerolog.Nop()
	broker, err := NewRedisBroker(Config{URL: "redis://127.0.0.1:1/0"}, &logger)
	require.NoError(t, err)
	defer broker.Close()

	err = broker.Publish(context.Background(), "hims.records", make(chan int))
	assert.Error(t, err)
}
