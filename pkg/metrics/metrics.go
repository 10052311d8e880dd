// Package metrics holds values shared by the Prometheus collectors used across
// the application.
package metrics

// DefaultBuckets are the histogram buckets, in seconds, used for latency
// metrics. The lower buckets resolve in-process handlers; the upper ones cover
// requests that wait on the database.
var DefaultBuckets = []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals
