// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the proxy-solver configuration.
package config

import (
	"bytes"
	"io"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	gbytes "github.com/labstack/gommon/bytes"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is the inner error of every configuration Validate rejects.
var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Listen string `yaml:"listen"`
	// Seed of the lottery; keep it fixed so that solutions are reproducible.
	Seed           int64         `yaml:"seed"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	BodyLimit      string        `yaml:"body_limit"`

	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

const (
	DefaultListen         = ":8000"
	DefaultRequestTimeout = 10 * time.Second
	DefaultBodyLimit      = "1M"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
	DefaultNamespace      = "proxymatch"
)

func Default() Config {
	return Config{
		Listen:         DefaultListen,
		Seed:           0,
		RequestTimeout: DefaultRequestTimeout,
		BodyLimit:      DefaultBodyLimit,
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultNamespace,
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	byts, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return c, errors.Wrap(err, "error reading configuration file")
	}
	if err := c.merge(byts); err != nil {
		return c, err
	}
	return c, c.Validate()
}

func (c *Config) merge(byts []byte) error {
	decoder := yaml.NewDecoder(bytes.NewReader(byts))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && err != io.EOF {
		return errors.Wrap(err, "error unmarshal yaml configuration file")
	}
	return nil
}

func (c Config) Validate() error {
	var result *multierror.Error

	if c.Listen == "" {
		result = multierror.Append(result, errors.New("listen must be set"))
	}
	if c.RequestTimeout < 0 {
		result = multierror.Append(result, errors.Errorf("request_timeout %s is negative", c.RequestTimeout))
	}
	if _, err := gbytes.Parse(c.BodyLimit); err != nil {
		result = multierror.Append(result, errors.Wrapf(err, "body_limit %q", c.BodyLimit))
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		result = multierror.Append(result, errors.Wrap(err, "log.level"))
	}
	if _, err := c.Log.formatter(); err != nil {
		result = multierror.Append(result, err)
	}
	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		result = multierror.Append(result, errors.New("metrics.namespace must be set"))
	}

	if err := result.ErrorOrNil(); err != nil {
		result.ErrorFormat = joinErrors
		return errors.Wrap(ErrInvalidConfig, result.Error())
	}
	return nil
}

func joinErrors(errs []error) string {
	parts := make([]string, len(errs))
	for i, err := range errs {
		parts[i] = err.Error()
	}
	return strings.Join(parts, "; ")
}

func (c LogConfig) formatter() (logrus.Formatter, error) {
	switch c.Format {
	case "text", "":
		return &logrus.TextFormatter{FullTimestamp: true}, nil
	case "json":
		return &logrus.JSONFormatter{}, nil
	default:
		return nil, errors.Errorf("log.format %q is neither text nor json", c.Format)
	}
}

// Apply sets the level and format of the logger.
func (c LogConfig) Apply(l *logrus.Logger) error {
	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		return errors.Wrap(err, "log.level")
	}
	formatter, err := c.formatter()
	if err != nil {
		return err
	}
	l.SetLevel(level)
	l.SetFormatter(formatter)
	return nil
}
