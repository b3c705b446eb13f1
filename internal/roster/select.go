package roster

// Eligibility answers the two questions the selection passes ask about a
// candidate minister. Callers precompute the answers from unavailability
// records and existing assignments for the occasion being filled.
type Eligibility struct {
	// Blocked reports whether the minister has a matching unavailability
	// record for the occasion.
	Blocked func(ministerID string) bool
	// Busy reports whether the minister already holds an assignment for a
	// different mass at the same date and time label.
	Busy func(ministerID string) bool
}

// Select fills up to required slots and returns the chosen minister IDs in
// selection order.
//
// Candidates from matching fixed rules are taken first, in rule order,
// deduplicated by minister and skipping anyone blocked by unavailability.
// If slots remain, the general pool is walked in its given (name) order,
// additionally skipping ministers already booked elsewhere at the same date
// and time. Fixed-rule candidates are not subject to the double-booking
// check; a fixed rule is an explicit commitment for that occasion.
//
// The result never exceeds required entries and may be shorter when the
// pool is exhausted; that is a valid partial roster, not an error.
func Select(required int, fixed []string, pool []string, elig Eligibility) []string {
	if required <= 0 {
		return nil
	}

	blocked := elig.Blocked
	if blocked == nil {
		blocked = func(string) bool { return false }
	}
	busy := elig.Busy
	if busy == nil {
		busy = func(string) bool { return false }
	}

	selected := make([]string, 0, required)
	seen := make(map[string]struct{}, required)

	for _, ministerID := range fixed {
		if len(selected) >= required {
			break
		}
		if _, ok := seen[ministerID]; ok {
			continue
		}
		if blocked(ministerID) {
			continue
		}
		seen[ministerID] = struct{}{}
		selected = append(selected, ministerID)
	}

	if len(selected) >= required {
		return selected
	}

	for _, ministerID := range pool {
		if len(selected) >= required {
			break
		}
		if _, ok := seen[ministerID]; ok {
			continue
		}
		if busy(ministerID) {
			continue
		}
		if blocked(ministerID) {
			continue
		}
		seen[ministerID] = struct{}{}
		selected = append(selected, ministerID)
	}

	return selected
}

// BlockedByAbsences builds an Eligibility.Blocked func from the absences
// recorded for the occasion's date.
func BlockedByAbsences(absences []Absence, occasion Occasion) func(string) bool {
	blocked := make(map[string]struct{}, len(absences))
	for _, absence := range absences {
		if absence.Blocks(occasion.Date, occasion.TimeLabel) {
			blocked[absence.MinisterID] = struct{}{}
		}
	}
	return func(ministerID string) bool {
		_, ok := blocked[ministerID]
		return ok
	}
}

// BusySet builds an Eligibility.Busy func from the minister IDs already
// assigned elsewhere at the occasion's date and time.
func BusySet(ministerIDs []string) func(string) bool {
	busy := make(map[string]struct{}, len(ministerIDs))
	for _, id := range ministerIDs {
		busy[id] = struct{}{}
	}
	return func(ministerID string) bool {
		_, ok := busy[ministerID]
		return ok
	}
}
