// Copyright (c) 2025 The Aurum developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aurumchain/aurum/log"
)

const namespace = "aurum_metrics"

var logger = log.WithContext("pkg", "metrics")

// InitializePrometheusMetrics creates a new instance of the Prometheus service and
// sets the implementation as the default metrics service.
func InitializePrometheusMetrics() {
	// don't allow for reset
	if _, ok := metrics.(*prometheusMetrics); !ok {
		metrics = newPrometheusMetrics()
	}
}

type prometheusMetrics struct {
	counters    sync.Map
	counterVecs sync.Map
	gauges      sync.Map
	histograms  sync.Map
}

func newPrometheusMetrics() Metrics {
	return &prometheusMetrics{}
}

func (p *prometheusMetrics) GetOrCreateCountMeter(name string) CountMeter {
	if meter, ok := p.counters.Load(name); ok {
		return meter.(CountMeter)
	}
	meter := p.newCountMeter(name)
	p.counters.Store(name, meter)
	return meter
}

func (p *prometheusMetrics) GetOrCreateCountVecMeter(name string, labels []string) CountVecMeter {
	if meter, ok := p.counterVecs.Load(name); ok {
		return meter.(CountVecMeter)
	}
	meter := p.newCountVecMeter(name, labels)
	p.counterVecs.Store(name, meter)
	return meter
}

func (p *prometheusMetrics) GetOrCreateGaugeMeter(name string) GaugeMeter {
	if meter, ok := p.gauges.Load(name); ok {
		return meter.(GaugeMeter)
	}
	meter := p.newGaugeMeter(name)
	p.gauges.Store(name, meter)
	return meter
}

func (p *prometheusMetrics) GetOrCreateHistogramMeter(name string, buckets []int64) HistogramMeter {
	if meter, ok := p.histograms.Load(name); ok {
		return meter.(HistogramMeter)
	}
	meter := p.newHistogramMeter(name, buckets)
	p.histograms.Store(name, meter)
	return meter
}

func (p *prometheusMetrics) GetOrCreateHandler() http.Handler {
	return promhttp.Handler()
}

func (p *prometheusMetrics) newCountMeter(name string) CountMeter {
	meter := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
		},
	)
	if err := prometheus.Register(meter); err != nil {
		logger.Warn("unable to register metric", "err", err)
	}
	return &promCountMeter{counter: meter}
}

func (p *prometheusMetrics) newCountVecMeter(name string, labels []string) CountVecMeter {
	meter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
		},
		labels,
	)
	if err := prometheus.Register(meter); err != nil {
		logger.Warn("unable to register metric", "err", err)
	}
	return &promCountVecMeter{counter: meter}
}

func (p *prometheusMetrics) newGaugeMeter(name string) GaugeMeter {
	meter := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
		},
	)
	if err := prometheus.Register(meter); err != nil {
		logger.Warn("unable to register metric", "err", err)
	}
	return &promGaugeMeter{gauge: meter}
}

func (p *prometheusMetrics) newHistogramMeter(name string, buckets []int64) HistogramMeter {
	var floatBuckets []float64
	for _, bucket := range buckets {
		floatBuckets = append(floatBuckets, float64(bucket))
	}

	meter := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Buckets:   floatBuckets,
		},
	)
	if err := prometheus.Register(meter); err != nil {
		logger.Warn("unable to register metric", "err", err)
	}
	return &promHistogramMeter{histogram: meter}
}

type promCountMeter struct {
	counter prometheus.Counter
}

func (c *promCountMeter) Add(i int64) {
	c.counter.Add(float64(i))
}

type promCountVecMeter struct {
	counter *prometheus.CounterVec
}

func (c *promCountVecMeter) AddWithLabel(i int64, labels map[string]string) {
	c.counter.With(labels).Add(float64(i))
}

type promGaugeMeter struct {
	gauge prometheus.Gauge
}

func (g *promGaugeMeter) Add(i int64) {
	g.gauge.Add(float64(i))
}

func (g *promGaugeMeter) Set(i int64) {
	g.gauge.Set(float64(i))
}

type promHistogramMeter struct {
	histogram prometheus.Histogram
}

func (h *promHistogramMeter) Observe(i int64) {
	h.histogram.Observe(float64(i))
}
