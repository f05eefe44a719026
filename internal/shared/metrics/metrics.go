package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	promhttppkg "github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	FieldErrorCode = "error_code"
	FieldTypeCode  = "type_code"
	FieldProvider  = "provider"
	FieldOutcome   = "outcome"

	ValueNoError = ""

	Namespace      = "loadtest_report"
	SubIngestion   = "ingestion"
	SubParsing     = "parsing"
	SubRules       = "rules"
	SubAggregation = "aggregation"
	SubStream      = "stream"
	SubHTTP        = "http"
)

// CounterOpts is a type alias for prometheus.CounterOpts.
type CounterOpts = prometheus.CounterOpts

// GaugeOpts is a type alias for prometheus.GaugeOpts.
type GaugeOpts = prometheus.GaugeOpts

// HistogramOpts is a type alias for prometheus.HistogramOpts.
type HistogramOpts = prometheus.HistogramOpts

// DefBuckets is a re-export of prometheus.DefBuckets.
var DefBuckets = prometheus.DefBuckets

// NewCounterVec creates a new CounterVec with the given CounterOpts and label names.
// It is automatically registered with the default prometheus registry.
var NewCounterVec = promauto.NewCounterVec

// NewCounter creates a new Counter registered with the default prometheus registry.
var NewCounter = promauto.NewCounter

// NewGaugeVec creates a new GaugeVec registered with the default prometheus registry.
var NewGaugeVec = promauto.NewGaugeVec

// NewHistogramVec creates a new HistogramVec with the given HistogramOpts and label names.
// It is automatically registered with the default prometheus registry.
var NewHistogramVec = promauto.NewHistogramVec

// PromHTTP wraps the promhttp package to provide access via metrics.promhttp.
type promHTTP struct{}

// Handler returns an http.Handler for the Prometheus metrics endpoint.
func (promHTTP) Handler() http.Handler {
	return promhttppkg.Handler()
}

// PromHTTP is an instance that wraps the promhttp package functionality.
// Access it via metrics.PromHTTP.
var PromHTTP = promHTTP{}
