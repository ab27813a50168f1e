package domain

import "time"

// Lead temperature classification labels and their priorities.
const (
	TemperatureHot  = "hot"
	TemperatureWarm = "warm"
	TemperatureCold = "cold"

	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Fixed weights of the temperature heuristic. A fully disclosed, urgent,
// fast-typing, talkative session sums to exactly 100.
const (
	weightOperation    = 20
	weightPropertyType = 20
	weightNeighborhood = 15
	weightMaxBudget    = 15
	weightUrgency      = 15
	weightFastReplies  = 10
	weightLongMessage  = 5
)

// fastReplyLatency is the average response latency under which a session
// counts as engaged.
const fastReplyLatency = 5 * time.Minute

// longMessageChars is the length past which a single message signals intent.
const longMessageChars = 50

// TemperatureInput carries the observed session signals. Latency and message
// length come from the stored message history, the rest from the state.
type TemperatureInput struct {
	OperationDisclosed    bool
	PropertyTypeDisclosed bool
	NeighborhoodDisclosed bool
	MaxBudgetDisclosed    bool
	UrgencyDetected       bool

	AvgResponseLatency time.Duration
	LatencyKnown       bool
	AnyLongMessage     bool
}

// TemperatureScore sums the fixed weights. The result is always in [0, 100].
func TemperatureScore(in TemperatureInput) int {
	score := 0
	if in.OperationDisclosed {
		score += weightOperation
	}
	if in.PropertyTypeDisclosed {
		score += weightPropertyType
	}
	if in.NeighborhoodDisclosed {
		score += weightNeighborhood
	}
	if in.MaxBudgetDisclosed {
		score += weightMaxBudget
	}
	if in.UrgencyDetected {
		score += weightUrgency
	}
	if in.LatencyKnown && in.AvgResponseLatency < fastReplyLatency {
		score += weightFastReplies
	}
	if in.AnyLongMessage {
		score += weightLongMessage
	}
	return score
}

// ClassifyTemperature maps a score to hot/warm/cold. 80 is already hot and
// 50 already warm; both boundaries are inclusive.
func ClassifyTemperature(score int) string {
	switch {
	case score >= 80:
		return TemperatureHot
	case score >= 50:
		return TemperatureWarm
	default:
		return TemperatureCold
	}
}

// Priority mirrors the temperature thresholds for pipeline ordering.
func Priority(score int) string {
	switch {
	case score >= 80:
		return PriorityHigh
	case score >= 50:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// TemperatureInputFrom derives the state-driven signals; callers fill in the
// message-history signals afterwards.
func TemperatureInputFrom(c Conversation) TemperatureInput {
	return TemperatureInput{
		OperationDisclosed:    c.Operation != "",
		PropertyTypeDisclosed: c.PropertyType != "",
		NeighborhoodDisclosed: len(c.Neighborhoods) > 0,
		MaxBudgetDisclosed:    c.MaxBudgetCents != nil,
		UrgencyDetected:       c.UrgencyDetected,
	}
}
