package similarity

// EnergyPenalty is min(0.5, |e1-e2|*0.5); 0 when either value is missing.
// Missing is modeled as a negative sentinel by callers that don't have an
// energy reading; use EnergyPenaltyOptional when a value may be absent.
func EnergyPenalty(e1, e2 float64) float64 {
	if e1 < 0 || e2 < 0 {
		return 0
	}
	p := abs(e1-e2) * 0.5
	if p > 0.5 {
		return 0.5
	}
	return p
}

// EnergyPenaltyOptional mirrors EnergyPenalty but treats either pointer
// being nil as "missing", returning 0 per §4.5.
func EnergyPenaltyOptional(e1, e2 *float64) float64 {
	if e1 == nil || e2 == nil {
		return 0
	}
	return EnergyPenalty(*e1, *e2)
}
