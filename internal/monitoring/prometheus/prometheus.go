// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package prometheus

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/canonical/oauth2-login/internal/logging"
	"github.com/canonical/oauth2-login/internal/monitoring"
)

var _ monitoring.MonitorInterface = (*Monitor)(nil)

type Monitor struct {
	service string

	responseTime           *prometheus.HistogramVec
	dependencyAvailability *prometheus.GaugeVec

	logger logging.LoggerInterface
}

func (m *Monitor) GetService() string {
	return m.service
}

func (m *Monitor) SetResponseTimeMetric(tags map[string]string, value float64) error {
	if m.responseTime == nil {
		return fmt.Errorf("metric not instantiated")
	}

	o, err := m.responseTime.GetMetricWith(m.labels(tags))
	if err != nil {
		return err
	}

	o.Observe(value)

	return nil
}

func (m *Monitor) SetDependencyAvailability(tags map[string]string, value float64) error {
	if m.dependencyAvailability == nil {
		return fmt.Errorf("metric not instantiated")
	}

	g, err := m.dependencyAvailability.GetMetricWith(m.labels(tags))
	if err != nil {
		return err
	}

	g.Set(value)

	return nil
}

func (m *Monitor) labels(tags map[string]string) prometheus.Labels {
	l := prometheus.Labels{"service": m.service}
	for k, v := range tags {
		l[k] = v
	}

	return l
}

func (m *Monitor) register(r prometheus.Registerer) {
	m.responseTime = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_response_time_seconds",
			Help: "http_response_time_seconds",
		},
		[]string{"route", "status", "service"},
	)

	m.dependencyAvailability = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dependency_available",
			Help: "dependency_available",
		},
		[]string{"component", "service"},
	)

	for _, c := range []prometheus.Collector{m.responseTime, m.dependencyAvailability} {
		if err := r.Register(c); err != nil {
			m.logger.Errorf("metric registration failed: %v", err)
		}
	}
}

// NewMonitor creates a Prometheus monitor registered on the default registry
func NewMonitor(service string, logger logging.LoggerInterface) *Monitor {
	return NewMonitorWithRegisterer(service, prometheus.DefaultRegisterer, logger)
}

func NewMonitorWithRegisterer(service string, r prometheus.Registerer, logger logging.LoggerInterface) *Monitor {
	m := new(Monitor)

	m.service = service
	m.logger = logger

	m.register(r)

	return m
}
