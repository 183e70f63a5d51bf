package random

// Script is a Service that replays queued values, then defers to Fallback.
// Values returned by Range are clamped into the requested range so a script
// written for one layout cannot produce out-of-range results on another.
type Script struct {
	Ranges   []int
	Chances  []bool
	Fallback Service

	rangeCalls  int
	chanceCalls int
}

// NewScript creates a Script that falls back to a source seeded with 0
func NewScript(ranges []int, chances []bool) *Script {
	return &Script{
		Ranges:   ranges,
		Chances:  chances,
		Fallback: New(0),
	}
}

// Range returns the next queued value clamped to [minInclusive, maxExclusive)
func (s *Script) Range(minInclusive, maxExclusive int) int {
	s.rangeCalls++
	if len(s.Ranges) == 0 {
		if s.Fallback != nil {
			return s.Fallback.Range(minInclusive, maxExclusive)
		}
		return minInclusive
	}
	v := s.Ranges[0]
	s.Ranges = s.Ranges[1:]
	if maxExclusive <= minInclusive || v < minInclusive {
		return minInclusive
	}
	if v >= maxExclusive {
		return maxExclusive - 1
	}
	return v
}

// Chance returns the next queued outcome
func (s *Script) Chance(p float64) bool {
	s.chanceCalls++
	if len(s.Chances) == 0 {
		if s.Fallback != nil {
			return s.Fallback.Chance(p)
		}
		return false
	}
	v := s.Chances[0]
	s.Chances = s.Chances[1:]
	return v
}

// Calls returns how many Range and Chance calls the script has served
func (s *Script) Calls() (ranges, chances int) {
	return s.rangeCalls, s.chanceCalls
}
