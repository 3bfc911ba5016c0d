// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package server serves proxy solutions over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/someonegg/proxymatch/config"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	conf    config.Config
	log     *logrus.Logger
	echo    *echo.Echo
	metrics *Metrics
}

// New builds the server; reg collects its metrics when they are enabled
// and may be nil.
func New(conf config.Config, log *logrus.Logger, reg *prometheus.Registry) (*Server, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	s := &Server{conf: conf, log: log}

	s.echo = echo.New()
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.HTTPErrorHandler = s.jsonErrorHandler
	s.echo.Server.ReadTimeout = conf.RequestTimeout
	s.echo.Server.WriteTimeout = conf.RequestTimeout

	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.RequestID())
	s.echo.Use(s.logRequests)

	if conf.Metrics.Enabled {
		if reg == nil {
			reg = prometheus.NewRegistry()
		}
		metrics, err := NewMetrics(reg, conf.Metrics.Namespace)
		if err != nil {
			return nil, err
		}
		s.metrics = metrics
		s.echo.Use(s.metrics.instrument)
		s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	s.echo.GET("/health/ready", s.getHealthReady)
	s.echo.POST("/solution", s.postSolution, middleware.BodyLimit(conf.BodyLimit))

	return s, nil
}

// Handler exposes the routes, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run listens until the context is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("listen", s.conf.Listen).Info("serving proxy solutions")
		errCh <- s.echo.Start(s.conf.Listen)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "serve")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	return nil
}

func (s *Server) logRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}

		s.requestLog(c).WithFields(logrus.Fields{
			"status":  c.Response().Status,
			"latency": time.Since(start).String(),
		}).Info("request")
		return nil
	}
}

func (s *Server) requestLog(c echo.Context) *logrus.Entry {
	return s.log.WithFields(logrus.Fields{
		"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
		"method":     c.Request().Method,
		"path":       c.Path(),
	})
}
