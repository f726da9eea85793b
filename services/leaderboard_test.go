package services

import (
	"testing"
	"time"
)

func TestComposePointsOrdersByPointsFirst(t *testing.T) {
	now := time.Now().UnixNano()
	if composePoints(100, now) <= composePoints(99, now) {
		t.Error("expected higher points to outrank lower points")
	}
}

func TestComposePointsBreaksTiesByArrival(t *testing.T) {
	earlier := time.Now().UnixNano()
	later := earlier + int64(time.Hour)

	// Same point total: whoever reached it first ranks higher.
	if composePoints(100, earlier) <= composePoints(100, later) {
		t.Error("expected the earlier arrival to outrank the later one")
	}
}

func TestBasePointsRecoversTotal(t *testing.T) {
	now := time.Now().UnixNano()
	for _, points := range []int{0, 1, 100, 99999} {
		if got := basePoints(composePoints(points, now)); got != points {
			t.Errorf("expected %d points back from composite, got %d", points, got)
		}
	}
}
