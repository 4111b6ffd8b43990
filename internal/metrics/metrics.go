// Package metrics exposes simulation counters in Prometheus format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cpusched/internal/util"
)

// Collector records every simulation served by the process.
type Collector struct {
	registry *prometheus.Registry

	simulations        *prometheus.CounterVec
	processesSimulated prometheus.Counter
	malformedRecords   prometheus.Counter
	averageTime        *prometheus.GaugeVec
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		simulations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cpusched_simulations_total",
			Help: "Number of scheduling simulations run, by algorithm",
		}, []string{"algorithm"}),
		processesSimulated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cpusched_processes_simulated_total",
			Help: "Number of processes fed through any simulator",
		}),
		malformedRecords: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cpusched_malformed_records_total",
			Help: "Number of input records skipped because they did not parse",
		}),
		averageTime: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "cpusched_average_time",
			Help: "Average time of the latest simulation, by algorithm and metric",
		}, []string{"algorithm", "metric"}),
	}

	c.registry.MustRegister(c.simulations, c.processesSimulated, c.malformedRecords, c.averageTime)
	return c
}

// RecordSimulation counts one run of processCount processes and keeps its averages.
func (c *Collector) RecordSimulation(averages util.Averages, processCount int) {
	c.simulations.WithLabelValues(averages.Algorithm).Inc()
	c.processesSimulated.Add(float64(processCount))
	c.averageTime.WithLabelValues(averages.Algorithm, "turnaround").Set(averages.TurnAroundTime)
	c.averageTime.WithLabelValues(averages.Algorithm, "response").Set(averages.ResponseTime)
	c.averageTime.WithLabelValues(averages.Algorithm, "waiting").Set(averages.WaitingTime)
}

func (c *Collector) RecordMalformed(count int) {
	c.malformedRecords.Add(float64(count))
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
