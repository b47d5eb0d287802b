package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestSet_RegisterAndCount(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	s := NewSet()
	require.NoError(t, s.Register(reg))

	s.GatewayRetries.Inc()
	s.GatewayRetries.Inc()
	s.Mutations.WithLabelValues("couriers", "deactivate", "ok").Inc()

	require.Equal(t, 2.0, testutil.ToFloat64(s.GatewayRetries))
	require.Equal(t, 1.0, testutil.ToFloat64(s.Mutations.WithLabelValues("couriers", "deactivate", "ok")))
	require.Equal(t, 0.0, testutil.ToFloat64(s.StaleResponses))
}

func TestSet_RegisterTwiceFails(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	s := NewSet()
	require.NoError(t, s.Register(reg))
	require.Error(t, s.Register(reg))
}

func TestLabelAdapters(t *testing.T) {
	t.Parallel()

	mut := NewMutationsTotal()
	leads := NewLeadsTotal()
	audit := NewAuditEventsTotal()

	Mutations(mut).Inc("riders", "user.activate", "ok")
	Leads(leads).Inc("local", "error")
	Leads(leads).Inc("local", "error")
	Outcomes(audit).Inc("stored")

	require.Equal(t, 1.0, testutil.ToFloat64(mut.WithLabelValues("riders", "user.activate", "ok")))
	require.Equal(t, 2.0, testutil.ToFloat64(leads.WithLabelValues("local", "error")))
	require.Equal(t, 1.0, testutil.ToFloat64(audit.WithLabelValues("stored")))
}
