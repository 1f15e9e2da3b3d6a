package engine

// The scorer is an ordered lookup table of (predicate, points) pairs,
// evaluated top-down, first match wins. Keeping the buckets as data makes
// each boundary independently testable.
type scoreRule struct {
	match  func(v float64) bool
	points int
}

func applyRules(rules []scoreRule, v float64) int {
	for _, r := range rules {
		if r.match(v) {
			return r.points
		}
	}
	return 0
}

// frequencyRules scores the daily sale rate, max 40 points.
var frequencyRules = []scoreRule{
	{func(d float64) bool { return d >= 5 }, 40},
	{func(d float64) bool { return d >= 1 }, 30},
	{func(d float64) bool { return d >= 0.5 }, 20},
	{func(d float64) bool { return d > 0 }, 10},
}

// reliabilityRules scores the coefficient of variation, max 30 points.
// Lower CV means steadier demand.
var reliabilityRules = []scoreRule{
	{func(cv float64) bool { return cv < 0.3 }, 30},
	{func(cv float64) bool { return cv < 0.6 }, 20},
	{func(cv float64) bool { return cv < 1.0 }, 10},
	{func(cv float64) bool { return true }, 5},
}

// criticalityRules scores the stock-to-threshold ratio, max 30 points.
var criticalityRules = []scoreRule{
	{func(r float64) bool { return r <= 0.5 }, 30},
	{func(r float64) bool { return r <= 1.0 }, 20},
	{func(r float64) bool { return r <= 2.0 }, 10},
}

// ComputeScore produces the bounded 0-100 composite priority score from
// demand frequency, demand reliability and stock criticality.
func ComputeScore(profile DemandProfile, currentStock, lowStockThreshold int) ScoreResult {
	result := ScoreResult{
		FrequencyScore: applyRules(frequencyRules, profile.DailyDemand),
	}

	if profile.DailyDemand > 0 {
		cv := profile.DemandStdDev / profile.DailyDemand
		result.ReliabilityScore = applyRules(reliabilityRules, cv)
	}

	switch {
	case currentStock <= 0:
		// Out of stock is maximally critical regardless of threshold.
		result.CriticalityScore = 30
	case lowStockThreshold <= 0:
		result.CriticalityScore = 0
	default:
		ratio := float64(currentStock) / float64(lowStockThreshold)
		result.CriticalityScore = applyRules(criticalityRules, ratio)
	}

	result.TotalScore = result.FrequencyScore + result.ReliabilityScore + result.CriticalityScore
	return result
}
