package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRequest("GET", "/api/material", "200", 0.01)
		m.LedgerOperation("reserve", nil)
		m.CompensationFailed()
		m.DatesRestored(3)
		m.CacheLookup(true)
	})
}

func TestCounters(t *testing.T) {
	m := New()

	m.LedgerOperation("reserve", nil)
	m.LedgerOperation("reserve", errors.New("x"))
	m.LedgerOperation("reserve", nil)
	m.CompensationFailed()
	m.DatesRestored(2)
	m.DatesRestored(0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ledgerOps.WithLabelValues("reserve", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ledgerOps.WithLabelValues("reserve", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.compensationFailures))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.datesRestored))
}
