// SPDX-License-Identifier: EPL-2.0

package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ik5/wavmark/audio"
	"github.com/ik5/wavmark/formats/wav"
	"github.com/ik5/wavmark/internal/catalog"
	"github.com/ik5/wavmark/internal/metrics"
	"github.com/ik5/wavmark/watermark"
)

// formField is the multipart field holding the uploaded file.
const formField = "audio"

type operation struct {
	name   string
	prefix string
	apply  func(s *Server, r io.Reader, w io.Writer) error
}

var (
	opInsert = operation{
		name:   metrics.OpInsert,
		prefix: "watermarked_",
		apply:  func(s *Server, r io.Reader, w io.Writer) error { return s.marker.InsertWAV(r, w) },
	}
	opRemove = operation{
		name:   metrics.OpRemove,
		prefix: "unwatermarked_",
		apply:  func(s *Server, r io.Reader, w io.Writer) error { return s.marker.RemoveWAV(r, w) },
	}
)

func (s *Server) transform(op operation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := s.log.With("op", op.name, "remote", r.RemoteAddr)

		limit := s.cfg.MaxUploadBytes
		if limit > 0 {
			if r.ContentLength > limit {
				s.reject(w, op, metrics.ResultTooLarge, http.StatusRequestEntityTooLarge, "File too large")
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
		}

		file, hdr, err := r.FormFile(formField)
		if err != nil {
			var tooLarge *http.MaxBytesError
			switch {
			case errors.As(err, &tooLarge):
				s.reject(w, op, metrics.ResultTooLarge, http.StatusRequestEntityTooLarge, "File too large")
			case errors.Is(err, http.ErrMissingFile):
				s.reject(w, op, metrics.ResultBadRequest, http.StatusBadRequest, "No audio file provided")
			default:
				log.Debug("multipart parse failed", "err", err)
				s.reject(w, op, metrics.ResultBadRequest, http.StatusBadRequest, "Invalid multipart request")
			}
			return
		}
		defer file.Close()

		name := filepath.Base(hdr.Filename)
		if hdr.Filename == "" || name == "." || name == string(filepath.Separator) {
			s.reject(w, op, metrics.ResultBadRequest, http.StatusBadRequest, "No file selected")
			return
		}
		if !strings.EqualFold(filepath.Ext(name), ".wav") {
			s.reject(w, op, metrics.ResultBadRequest, http.StatusBadRequest, "Only WAV files are supported")
			return
		}
		metrics.UploadBytes.Observe(float64(hdr.Size))

		var out bytes.Buffer
		if err := op.apply(s, file, &out); err != nil {
			result, status := classify(err)
			if status == http.StatusInternalServerError {
				log.Error("processing failed", "file", name, "err", err)
				s.reject(w, op, result, status, "Error processing file")
				return
			}
			log.Info("rejected upload", "file", name, "reason", err)
			s.reject(w, op, result, status, err.Error())
			return
		}

		metrics.ProcessDuration.WithLabelValues(op.name).Observe(time.Since(start).Seconds())
		metrics.FilesTotal.WithLabelValues(op.name, metrics.ResultOK).Inc()
		log.Info("file processed",
			"file", name,
			"in_bytes", hdr.Size,
			"out_bytes", out.Len(),
			"elapsed", time.Since(start),
		)

		w.Header().Set("Content-Type", "audio/wav")
		w.Header().Set("Content-Disposition",
			mime.FormatMediaType("attachment", map[string]string{"filename": op.prefix + name}))
		w.Header().Set("Content-Length", strconv.Itoa(out.Len()))
		w.WriteHeader(http.StatusOK)
		if _, err := out.WriteTo(w); err != nil {
			log.Warn("write response", "err", err)
		}
	}
}

// classify maps a processing error to a metrics result and HTTP status.
// Errors caused by the uploaded content are client errors.
func classify(err error) (string, int) {
	switch {
	case audio.IsDescriptorError(err):
		return metrics.ResultDescriptor, http.StatusBadRequest
	case errors.Is(err, watermark.ErrInsufficientLength):
		return metrics.ResultTooShort, http.StatusBadRequest
	case wav.IsFormatError(err):
		return metrics.ResultFormat, http.StatusBadRequest
	default:
		return metrics.ResultInternal, http.StatusInternalServerError
	}
}

func (s *Server) reject(w http.ResponseWriter, op operation, result string, status int, msg string) {
	metrics.FilesTotal.WithLabelValues(op.name, result).Inc()
	http.Error(w, msg, status)
}

func (s *Server) handleNodes(w http.ResponseWriter, r *http.Request) {
	if s.nodes == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "catalog is not configured"})
		return
	}

	nodes, err := s.nodes.ListNodes(r.Context())
	if err != nil {
		metrics.CatalogQueries.WithLabelValues(metrics.ResultInternal).Inc()
		s.log.Error("list nodes", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list nodes"})
		return
	}
	metrics.CatalogQueries.WithLabelValues(metrics.ResultOK).Inc()

	if nodes == nil {
		nodes = []catalog.Node{}
	}
	writeJSON(w, http.StatusOK, nodes)
}

// writeJSON encodes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encode json response", "err", err)
	}
}
