package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestInitializeIsIdempotent(t *testing.T) {
	assert.Same(t, Initialize(), Get())
}

func TestRecordInteraction(t *testing.T) {
	before := testutil.ToFloat64(Get().InteractionsTotal.WithLabelValues("like"))
	RecordInteraction("like")
	RecordInteraction("like")
	assert.Equal(t, before+2, testutil.ToFloat64(Get().InteractionsTotal.WithLabelValues("like")))
}

func TestRecordLoginKinds(t *testing.T) {
	stored := testutil.ToFloat64(Get().LoginsTotal.WithLabelValues("stored"))
	synth := testutil.ToFloat64(Get().LoginsTotal.WithLabelValues("synthesized"))

	RecordLogin(false)
	RecordLogin(true)

	assert.Equal(t, stored+1, testutil.ToFloat64(Get().LoginsTotal.WithLabelValues("stored")))
	assert.Equal(t, synth+1, testutil.ToFloat64(Get().LoginsTotal.WithLabelValues("synthesized")))
}
