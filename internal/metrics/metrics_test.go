package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordProfile(t *testing.T) {
	c := ProfilesExtracted.WithLabelValues("podcast", "rich")
	before := testutil.ToFloat64(c)
	RecordProfile("podcast", "rich")
	assert.Equal(t, before+1, testutil.ToFloat64(c))
}

func TestRecordCandidate(t *testing.T) {
	admitted := CandidatesEvaluated.WithLabelValues("true")
	rejected := CandidatesEvaluated.WithLabelValues("false")
	a0, r0 := testutil.ToFloat64(admitted), testutil.ToFloat64(rejected)

	RecordCandidate(42, true)
	RecordCandidate(12, false)
	RecordCandidate(18, false)

	assert.Equal(t, a0+1, testutil.ToFloat64(admitted))
	assert.Equal(t, r0+2, testutil.ToFloat64(rejected))
}

func TestRecordMCPCall(t *testing.T) {
	ok := MCPCalls.WithLabelValues("tools/call", "validate", "ok")
	failed := MCPCalls.WithLabelValues("tools/call", "validate", "error")
	ok0, f0 := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	RecordMCPCall("tools/call", "validate", nil)
	RecordMCPCall("tools/call", "validate", errors.New("boom"))

	assert.Equal(t, ok0+1, testutil.ToFloat64(ok))
	assert.Equal(t, f0+1, testutil.ToFloat64(failed))
}

func TestHistogramsAcceptObservations(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordRecommend("api", 3, 2*time.Millisecond)
		RecordBatch(5)
	})
	assert.Positive(t, testutil.CollectAndCount(RecommendDuration))
}
