package domain

import (
	"testing"
	"time"
)

func TestTemperatureScoreFullHouse(t *testing.T) {
	in := TemperatureInput{
		OperationDisclosed:    true,
		PropertyTypeDisclosed: true,
		NeighborhoodDisclosed: true,
		MaxBudgetDisclosed:    true,
		UrgencyDetected:       true,
		AvgResponseLatency:    time.Minute,
		LatencyKnown:          true,
		AnyLongMessage:        true,
	}
	if got := TemperatureScore(in); got != 100 {
		t.Fatalf("TemperatureScore() = %d, want 100", got)
	}
}

func TestTemperatureScoreEmpty(t *testing.T) {
	if got := TemperatureScore(TemperatureInput{}); got != 0 {
		t.Fatalf("TemperatureScore() = %d, want 0", got)
	}
}

func TestTemperatureScoreRange(t *testing.T) {
	inputs := []TemperatureInput{
		{OperationDisclosed: true},
		{UrgencyDetected: true, AnyLongMessage: true},
		{LatencyKnown: true, AvgResponseLatency: 10 * time.Minute},
		{OperationDisclosed: true, PropertyTypeDisclosed: true, MaxBudgetDisclosed: true},
	}
	for _, in := range inputs {
		got := TemperatureScore(in)
		if got < 0 || got > 100 {
			t.Fatalf("TemperatureScore() = %d, out of [0,100]", got)
		}
	}
}

func TestClassifyTemperatureBoundaries(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{49, TemperatureCold},
		{50, TemperatureWarm},
		{79, TemperatureWarm},
		{80, TemperatureHot},
		{0, TemperatureCold},
		{100, TemperatureHot},
	}
	for _, tc := range cases {
		if got := ClassifyTemperature(tc.score); got != tc.want {
			t.Fatalf("ClassifyTemperature(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestPriorityMirrorsTemperature(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{80, PriorityHigh},
		{79, PriorityMedium},
		{50, PriorityMedium},
		{49, PriorityLow},
	}
	for _, tc := range cases {
		if got := Priority(tc.score); got != tc.want {
			t.Fatalf("Priority(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestSlowRepliesEarnNothing(t *testing.T) {
	fast := TemperatureInput{LatencyKnown: true, AvgResponseLatency: 4 * time.Minute}
	slow := TemperatureInput{LatencyKnown: true, AvgResponseLatency: 5 * time.Minute}
	if got := TemperatureScore(fast); got != 10 {
		t.Fatalf("fast replies: TemperatureScore() = %d, want 10", got)
	}
	if got := TemperatureScore(slow); got != 0 {
		t.Fatalf("five-minute average: TemperatureScore() = %d, want 0", got)
	}
}
