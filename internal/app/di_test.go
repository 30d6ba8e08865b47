package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/allisson/hubgate/internal/config"
)

func TestContainer(t *testing.T) {
	t.Run("LoggerIsSingleton", func(t *testing.T) {
		container := NewContainer(&config.Config{LogLevel: "info"})
		assert.NotNil(t, container.Logger())
		assert.Same(t, container.Logger(), container.Logger())
	})

	t.Run("ConfigAccessor", func(t *testing.T) {
		cfg := &config.Config{LogLevel: "debug"}
		container := NewContainer(cfg)
		assert.Same(t, cfg, container.Config())
	})

	t.Run("TokenServiceIsSingleton", func(t *testing.T) {
		container := NewContainer(&config.Config{})
		assert.NotNil(t, container.TokenService())
	})

	t.Run("MetricsDisabledYieldsNilProvider", func(t *testing.T) {
		container := NewContainer(&config.Config{MetricsEnabled: false})

		provider, err := container.MetricsProvider()
		assert.NoError(t, err)
		assert.Nil(t, provider)

		server, err := container.MetricsServer()
		assert.NoError(t, err)
		assert.Nil(t, server)
	})

	t.Run("MetricsEnabledYieldsNoopFreeAuthzMetrics", func(t *testing.T) {
		container := NewContainer(&config.Config{
			MetricsEnabled:   true,
			MetricsNamespace: "hubgate_test",
		})

		authzMetrics, err := container.AuthorizationMetrics()
		assert.NoError(t, err)
		assert.NotNil(t, authzMetrics)
	})
}
