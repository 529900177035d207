// SPDX-License-Identifier: EPL-2.0

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestFilesTotal(t *testing.T) {
	before := testutil.ToFloat64(FilesTotal.WithLabelValues(OpInsert, ResultOK))

	FilesTotal.WithLabelValues(OpInsert, ResultOK).Inc()

	after := testutil.ToFloat64(FilesTotal.WithLabelValues(OpInsert, ResultOK))
	if after-before != 1 {
		t.Errorf("counter moved by %v, want 1", after-before)
	}
}

func TestCollectorsRegistered(t *testing.T) {
	ProcessDuration.WithLabelValues(OpRemove).Observe(0.01)
	UploadBytes.Observe(1024)
	CatalogQueries.WithLabelValues(ResultOK).Inc()

	if n := testutil.CollectAndCount(ProcessDuration); n == 0 {
		t.Error("ProcessDuration collected no series")
	}
	if n := testutil.CollectAndCount(UploadBytes); n != 1 {
		t.Errorf("UploadBytes collected %d series, want 1", n)
	}
	if n := testutil.CollectAndCount(CatalogQueries); n == 0 {
		t.Error("CatalogQueries collected no series")
	}
}
