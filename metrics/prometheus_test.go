// Copyright (c) 2025 The Aurum developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"strconv"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	dto "github.com/prometheus/client_model/go"
)

func TestPromMetrics(t *testing.T) {
	InitializePrometheusMetrics()

	count := Counter("ops_total")
	countVec := CounterVec("ops_by_kind_total", []string{"kind"})
	gauge := Gauge("staked_total")
	hist := Histogram("op_duration_ms", Bucket10s)

	count.Add(1)
	count.Add(2)

	vecTotal := 0
	for i := 0; i < 6; i++ {
		countVec.AddWithLabel(int64(i), map[string]string{"kind": strconv.Itoa(i % 2)})
		vecTotal += i
	}

	gauge.Set(42)
	gauge.Add(-2)

	histTotal := 0
	for i := 0; i < 5; i++ {
		hist.Observe(int64(i))
		histTotal += i
	}

	gatherers := prometheus.Gatherers{prometheus.DefaultGatherer}
	families, err := gatherers.Gather()
	require.NoError(t, err)

	byName := make(map[string]*dto.MetricFamily)
	for _, mf := range families {
		byName[mf.GetName()] = mf
	}

	require.Equal(t, float64(3), byName["aurum_metrics_ops_total"].Metric[0].GetCounter().GetValue())

	var vecSum float64
	for _, m := range byName["aurum_metrics_ops_by_kind_total"].Metric {
		vecSum += m.GetCounter().GetValue()
	}
	require.Equal(t, float64(vecTotal), vecSum)

	require.Equal(t, float64(40), byName["aurum_metrics_staked_total"].Metric[0].GetGauge().GetValue())
	require.Equal(t, float64(histTotal), byName["aurum_metrics_op_duration_ms"].Metric[0].GetHistogram().GetSampleSum())
}

func TestNoopByDefault(t *testing.T) {
	m := defaultNoopMetrics()
	require.Nil(t, m.GetOrCreateHandler())

	// all meters are safe to use without initialization
	m.GetOrCreateCountMeter("a").Add(1)
	m.GetOrCreateCountVecMeter("b", []string{"l"}).AddWithLabel(1, map[string]string{"l": "v"})
	m.GetOrCreateGaugeMeter("c").Set(1)
	m.GetOrCreateHistogramMeter("d", nil).Observe(1)
}
