// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "proxy-solver.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, ":8000", c.Listen)
	assert.Equal(t, int64(0), c.Seed)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.True(t, c.Metrics.Enabled)
	assert.NoError(t, c.Validate())
}

func TestLoad(t *testing.T) {
	t.Run("EmptyPath", func(t *testing.T) {
		c, err := Load("")

		require.NoError(t, err)
		assert.Equal(t, Default(), c)
	})

	t.Run("Overrides", func(t *testing.T) {
		path := writeConfig(t, `
listen: 127.0.0.1:9000
seed: 42
request_timeout: 3s
log:
  level: debug
  format: json
metrics:
  enabled: false
`)

		c, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1:9000", c.Listen)
		assert.Equal(t, int64(42), c.Seed)
		assert.Equal(t, 3*time.Second, c.RequestTimeout)
		assert.Equal(t, DefaultBodyLimit, c.BodyLimit)
		assert.Equal(t, LogConfig{Level: "debug", Format: "json"}, c.Log)
		assert.False(t, c.Metrics.Enabled)
		assert.Equal(t, DefaultNamespace, c.Metrics.Namespace)
	})

	t.Run("EmptyFile", func(t *testing.T) {
		c, err := Load(writeConfig(t, ""))

		require.NoError(t, err)
		assert.Equal(t, Default(), c)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

		assert.Error(t, err)
	})

	t.Run("UnknownField", func(t *testing.T) {
		_, err := Load(writeConfig(t, "capacity: 2\n"))

		assert.Error(t, err)
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := Load(writeConfig(t, `
listen: ""
body_limit: lots
log:
  level: loud
  format: xml
`))

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidConfig))
		for _, field := range []string{"listen", "body_limit", "log.level", "log.format"} {
			assert.Contains(t, err.Error(), field)
		}
	})
}

func TestLogConfig_Apply(t *testing.T) {
	l := logrus.New()

	require.NoError(t, LogConfig{Level: "warn", Format: "json"}.Apply(l))
	assert.Equal(t, logrus.WarnLevel, l.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, l.Formatter)

	require.NoError(t, LogConfig{Level: "debug", Format: "text"}.Apply(l))
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, l.Formatter)

	assert.Error(t, LogConfig{Level: "loud"}.Apply(l))
	assert.Error(t, LogConfig{Level: "info", Format: "xml"}.Apply(l))
}
