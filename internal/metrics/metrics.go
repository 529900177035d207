// SPDX-License-Identifier: EPL-2.0

// Package metrics holds the Prometheus collectors of the wavmark service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation labels.
const (
	OpInsert = "insert"
	OpRemove = "remove"
)

// Result labels.
const (
	ResultOK         = "ok"
	ResultDescriptor = "descriptor_error"
	ResultTooShort   = "insufficient_length"
	ResultFormat     = "format_error"
	ResultBadRequest = "bad_request"
	ResultTooLarge   = "too_large"
	ResultInternal   = "internal_error"
)

var (
	FilesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wavmark_files_total",
		Help: "Uploaded files by operation and result",
	}, []string{"op", "result"})

	ProcessDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wavmark_process_duration_seconds",
		Help:    "Time to decode, transform and re-encode one file",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
	}, []string{"op"})

	UploadBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wavmark_upload_bytes",
		Help:    "Size of accepted uploads",
		Buckets: prometheus.ExponentialBuckets(64<<10, 4, 8),
	})

	CatalogQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wavmark_catalog_queries_total",
		Help: "Catalog queries by result",
	}, []string{"result"})
)
