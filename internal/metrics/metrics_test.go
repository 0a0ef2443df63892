package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(UsersCreated.WithLabelValues(KindSuperuser))
	UsersCreated.WithLabelValues(KindSuperuser).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(UsersCreated.WithLabelValues(KindSuperuser)))

	before = testutil.ToFloat64(TokensIssued)
	TokensIssued.Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(TokensIssued))
}
