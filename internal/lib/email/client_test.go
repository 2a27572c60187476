package email

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pressroomhq/pressroom/internal/config"
)

func TestNewClientDisabledWithoutAPIKey(t *testing.T) {
	logger := zerolog.Nop()

	assert.Nil(t, NewClient(&config.Config{}, &logger))
}

func TestNewClientWithAPIKey(t *testing.T) {
	logger := zerolog.Nop()
	cfg := &config.Config{}
	cfg.Integration.ResendAPIKey = "re_test_key"
	cfg.Integration.EmailFrom = "news@pressroom.dev"

	c := NewClient(cfg, &logger)
	require.NotNil(t, c)
	assert.Equal(t, "news@pressroom.dev", c.from)
}
