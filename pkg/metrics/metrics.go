// Package metrics reports counters and timings to a statsd-compatible agent.
package metrics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/DataDog/datadog-go/statsd"
)

// Reporter is the subset of statsd the bridge emits.
type Reporter interface {
	Count(name string, value int64, tags map[string]string, rate float64) error
	TimeInMilliseconds(name string, value float64, tags map[string]string, rate float64) error
	Close() error
}

// DataDogReporter sends metrics to a DogStatsD agent over UDP.
type DataDogReporter struct {
	client *statsd.Client
}

// NewDataDogReporter dials addr. Every metric name is prefixed with namespace.
func NewDataDogReporter(addr, namespace string) (*DataDogReporter, error) {
	c, err := statsd.New(addr, statsd.WithNamespace(namespace))
	if err != nil {
		return nil, fmt.Errorf("create statsd client: %w", err)
	}
	return &DataDogReporter{client: c}, nil
}

func (r *DataDogReporter) Count(name string, value int64, tags map[string]string, rate float64) error {
	return r.client.Count(name, value, convertTags(tags), rate)
}

func (r *DataDogReporter) TimeInMilliseconds(name string, value float64, tags map[string]string, rate float64) error {
	return r.client.TimeInMilliseconds(name, value, convertTags(tags), rate)
}

func (r *DataDogReporter) Close() error {
	return r.client.Close()
}

// NoopReporter drops everything. Used when metrics are disabled.
type NoopReporter struct{}

func (NoopReporter) Count(string, int64, map[string]string, float64) error                { return nil }
func (NoopReporter) TimeInMilliseconds(string, float64, map[string]string, float64) error { return nil }
func (NoopReporter) Close() error                                                          { return nil }

// converts {"Route":"POST /x"} to ["route:post /x"], sorted by key
func convertTags(tags map[string]string) []string {
	result := make([]string, 0, len(tags))
	for k, v := range tags {
		k = strings.ToLower(strings.TrimSpace(k))
		v = strings.ToLower(strings.TrimSpace(v))
		result = append(result, k+":"+v)
	}
	sort.Strings(result)
	return result
}
