package metrics

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/mmynk/pennypool/internal/models"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", Outcome(nil))
	assert.Equal(t, "insufficient_funds", Outcome(fmt.Errorf("wrapped: %w", models.ErrInsufficientFunds)))
	assert.Equal(t, "not_member", Outcome(models.ErrNotMember))
	assert.Equal(t, "error", Outcome(fmt.Errorf("boom")))
}

func TestObserveContribution(t *testing.T) {
	before := testutil.ToFloat64(contributions.WithLabelValues("group", "conflict"))
	ObserveContribution(models.TargetGroup, models.ErrConflict)
	after := testutil.ToFloat64(contributions.WithLabelValues("group", "conflict"))
	assert.Equal(t, before+1, after)
}
