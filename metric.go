package coset

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	MetricNameSpace = "coset"
)

var (
	oracleDeployedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: MetricNameSpace,
			Name:      "oracle_deployed_total",
			Help:      "oracles reconciled into the deployed stage",
		},
		[]string{"network"},
	)
	probeResultCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: MetricNameSpace,
			Name:      "endpoint_probe_total",
			Help:      "endpoint verification probes by outcome",
		},
		[]string{"outcome"},
	)
	cstPriceGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: MetricNameSpace,
			Name:      "cst_price_usdc_units",
			Help:      "one USDC in CST smallest units",
		},
	)
)

func init() {
	prometheus.MustRegister(
		oracleDeployedCounter,
		probeResultCounter,
		cstPriceGauge,
	)
}

func metricDeployed(network string) {
	oracleDeployedCounter.WithLabelValues(network).Inc()
}

func metricProbeResult(ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "failed"
	}
	probeResultCounter.WithLabelValues(outcome).Inc()
}

func metricCstPrice(units float64) {
	cstPriceGauge.Set(units)
}
