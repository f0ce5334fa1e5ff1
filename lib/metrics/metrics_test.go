package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	Init()
	Init()

	t.Run(`decision counter`, func(t *testing.T) {
		before := testutil.ToFloat64(decisionsTotal.WithLabelValues("Approved"))
		ObserveDecision("Approved")
		require.Equal(t, before+1, testutil.ToFloat64(decisionsTotal.WithLabelValues("Approved")))
	})

	t.Run(`sync result label`, func(t *testing.T) {
		before := testutil.ToFloat64(syncRunsTotal.WithLabelValues("slack", "success"))
		ObserveSync("slack", nil)
		require.Equal(t, before+1, testutil.ToFloat64(syncRunsTotal.WithLabelValues("slack", "success")))
	})
}
