// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func gatherValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		metric := family.GetMetric()[0]
		if c := metric.GetCounter(); c != nil {
			return c.GetValue()
		}
		if g := metric.GetGauge(); g != nil {
			return g.GetValue()
		}
	}
	t.Fatalf("metric %q not found", name)
	return 0
}

func TestRegistryCounterIsRegisteredAgainstPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRegistry(reg)

	c := r.NewCounter("proving_test_counter")
	c.Add(3)
	c.Inc()

	require.Equal(t, int64(4), c.Read())
	require.Equal(t, float64(4), gatherValue(t, reg, "proving_test_counter"))
}

func TestRegistryGaugeIsRegisteredAgainstPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRegistry(reg)

	g := r.NewGauge("proving_test_gauge")
	g.Set(10)
	g.Add(-3)

	require.Equal(t, float64(7), g.Read())
	require.Equal(t, float64(7), gatherValue(t, reg, "proving_test_gauge"))
}

func TestRegistryAveragerIsRegisteredAgainstPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRegistry(reg)

	a := r.NewAverager("proving_test_averager")
	a.Observe(2)
	a.Observe(4)

	require.Equal(t, float64(3), a.Read())
	require.Equal(t, float64(2), gatherValue(t, reg, "proving_test_averager_count"))
	require.Equal(t, float64(6), gatherValue(t, reg, "proving_test_averager_sum"))
}

func TestRegistryGetBeforeNewFails(t *testing.T) {
	r := NewRegistry(prometheus.NewRegistry())

	_, err := r.GetCounter("missing")
	require.Error(t, err)

	_, err = r.GetGauge("missing")
	require.Error(t, err)

	_, err = r.GetAverager("missing")
	require.Error(t, err)
}

func TestRegistryGetAfterNewSucceeds(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRegistry(reg)

	want := r.NewCounter("proving_test_get_counter")
	got, err := r.GetCounter("proving_test_get_counter")
	require.NoError(t, err)
	require.Same(t, want, got)
}
