package booking

// The availability ledger is a multiset: a date booked twice on the same
// material appears twice, so retracting one booking leaves it covered by
// the other.

// Reserve appends dates to unavailable.
func Reserve(unavailable, dates []string) []string {
	out := make([]string, 0, len(unavailable)+len(dates))
	out = append(out, unavailable...)
	return append(out, dates...)
}

// Retract removes one occurrence of each date. Dates that are not present
// are ignored.
func Retract(unavailable, dates []string) []string {
	remove := counts(dates)

	out := make([]string, 0, len(unavailable))
	for _, d := range unavailable {
		if remove[d] > 0 {
			remove[d]--
			continue
		}
		out = append(out, d)
	}
	return out
}

func Replace(unavailable, old, new []string) []string {
	return Reserve(Retract(unavailable, old), new)
}

// Missing returns the booked dates not covered by unavailable, honoring
// multiplicity.
func Missing(unavailable, booked []string) []string {
	have := counts(unavailable)

	var out []string
	for _, d := range booked {
		if have[d] > 0 {
			have[d]--
			continue
		}
		out = append(out, d)
	}
	return out
}

// Intersect returns the dates of a also present in b, honoring
// multiplicity, in the order of a.
func Intersect(a, b []string) []string {
	have := counts(b)

	var out []string
	for _, d := range a {
		if have[d] > 0 {
			have[d]--
			out = append(out, d)
		}
	}
	return out
}

func counts(dates []string) map[string]int {
	m := make(map[string]int, len(dates))
	for _, d := range dates {
		m[d]++
	}
	return m
}
