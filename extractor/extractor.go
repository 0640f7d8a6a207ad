// Package extractor reads the data balance out of the portal's result page.
//
// The page layout is not under our control, so the balance is looked up by
// several strategies in a fixed order and the first one that matches wins.
// Strategies are pure functions of a Snapshot and never touch the browser.
package extractor

// Outcome is the result of running the strategies over one Snapshot.
type Outcome struct {
	Found bool
	Match

	// Preview is the head of the page text, set only when nothing matched.
	Preview string
}

// Extract runs the default strategies against s.
func Extract(s *Snapshot) Outcome {
	return ExtractWith(s, Strategies)
}

// ExtractWith runs strategies in order and stops at the first match.
func ExtractWith(s *Snapshot, strategies []Strategy) Outcome {
	for _, st := range strategies {
		if m, ok := st.Find(s); ok {
			return Outcome{Found: true, Match: m}
		}
	}
	return Outcome{
		Match:   Match{Unit: UnitMegabytes, Method: MethodNone},
		Preview: s.Preview(),
	}
}
