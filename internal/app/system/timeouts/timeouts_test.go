package timeouts_test

import (
	"testing"

	"github.com/mizanlegal/mizan/internal/app/system/timeouts"
)

func TestTiersAreOrdered(t *testing.T) {
	if !(timeouts.Ping() < timeouts.Short() &&
		timeouts.Short() < timeouts.Medium() &&
		timeouts.Medium() < timeouts.Long()) {
		t.Errorf("tiers not strictly increasing: ping=%v short=%v medium=%v long=%v",
			timeouts.Ping(), timeouts.Short(), timeouts.Medium(), timeouts.Long())
	}
}
