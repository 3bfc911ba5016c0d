// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package server

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/someonegg/proxymatch/proxy"
)

// Metrics instruments the HTTP routes and the solutions they return.
// A nil *Metrics records nothing.
type Metrics struct {
	requests  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	solutions prometheus.Counter
	members   *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		solutions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "solver",
			Name:      "solutions_total",
			Help:      "Total solutions computed.",
		}),
		members: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "solver",
			Name:      "members_total",
			Help:      "Total members seen in solutions by state (present, represented, unrepresented).",
		}, []string{"state"}),
	}

	for _, c := range []prometheus.Collector{m.requests, m.latency, m.solutions, m.members} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrap(err, "register metrics")
		}
	}
	return m, nil
}

func (m *Metrics) instrument(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		if err := next(c); err != nil {
			c.Error(err)
		}

		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request().Method, route, strconv.Itoa(c.Response().Status)).Inc()
		m.latency.WithLabelValues(route).Observe(time.Since(start).Seconds())
		return nil
	}
}

func (m *Metrics) observe(metrics proxy.Metrics) {
	if m == nil {
		return
	}
	m.solutions.Inc()
	m.members.WithLabelValues("present").Add(float64(metrics.Present))
	m.members.WithLabelValues("represented").Add(float64(metrics.Represented))
	m.members.WithLabelValues("unrepresented").Add(float64(metrics.Unrepresented))
}
