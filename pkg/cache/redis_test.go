package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/escola-api/pkg/config"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "escola:summary:totals", Key("summary", "totals"))
	assert.Equal(t, "escola:summary:*", Key("summary", "*"))
}

func TestNewRedisDisabled(t *testing.T) {
	client, err := NewRedis(config.RedisConfig{Enabled: false})
	require.NoError(t, err)
	assert.Nil(t, client)
}
