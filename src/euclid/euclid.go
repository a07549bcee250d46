package euclid

// Package euclid implements Björklund's algorithm and the two rotation
// semantics used everywhere else: interval rotation (rotate the gap sequence,
// rebuild positions) and slice rotation (rotate the realized boolean array).
// They produce different patterns and are intentionally not unified.

// Rhythm distributes pulses as evenly as possible over steps.
// pulses > steps returns an empty slice (caller error sentinel).
func Rhythm(pulses int, steps int) []bool {
	if pulses < 0 || steps < 0 || pulses > steps {
		return []bool{}
	}
	pattern := make([]bool, steps)
	if pulses == 0 {
		return pattern
	}
	if pulses == steps {
		for i := range pattern {
			pattern[i] = true
		}
		return pattern
	}

	// Björklund: repeatedly fold the remainder groups into the head groups
	// until at most one remainder group is left.
	head := make([][]bool, 0, pulses)
	tail := make([][]bool, 0, steps-pulses)
	for i := 0; i < pulses; i++ {
		head = append(head, []bool{true})
	}
	for i := 0; i < steps-pulses; i++ {
		tail = append(tail, []bool{false})
	}
	for len(tail) > 1 {
		n := len(head)
		if len(tail) < n {
			n = len(tail)
		}
		next := make([][]bool, 0, n)
		for i := 0; i < n; i++ {
			next = append(next, append(head[i], tail[i]...))
		}
		if len(head) > n {
			tail = head[n:]
		} else {
			tail = tail[n:]
		}
		head = next
	}
	pattern = pattern[:0]
	for _, group := range head {
		pattern = append(pattern, group...)
	}
	for _, group := range tail {
		pattern = append(pattern, group...)
	}
	return pattern
}

// PatternToIntervals returns the cyclic gaps between active positions,
// including the wrap-around gap. Fewer than 2 active positions yields an
// empty list.
func PatternToIntervals(pattern []bool) []int {
	indices := ActiveIndices(pattern)
	if len(indices) < 2 {
		return []int{}
	}
	intervals := make([]int, 0, len(indices))
	for i := 1; i < len(indices); i++ {
		intervals = append(intervals, indices[i]-indices[i-1])
	}
	intervals = append(intervals, len(pattern)-indices[len(indices)-1]+indices[0])
	return intervals
}

// IntervalsToPattern rebuilds a pattern of the given length, placing the
// first pulse at index 0. The last interval is the wrap-closing distance and
// is not used for placement.
func IntervalsToPattern(intervals []int, steps int) []bool {
	pattern := make([]bool, steps)
	if len(intervals) == 0 || steps <= 0 {
		return pattern
	}
	pos := 0
	pattern[0] = true
	for i := 0; i < len(intervals)-1; i++ {
		pos += intervals[i]
		if pos >= steps {
			break
		}
		pattern[pos] = true
	}
	return pattern
}

// RotateIntervals cyclically shifts an interval list. The pulse shape is
// preserved; a different pulse becomes the new origin.
func RotateIntervals(intervals []int, rotation int) []int {
	n := len(intervals)
	if n == 0 {
		return []int{}
	}
	rotation = ((rotation % n) + n) % n
	out := make([]int, 0, n)
	out = append(out, intervals[rotation:]...)
	out = append(out, intervals[:rotation]...)
	return out
}

// RotateByInterval rotates a pattern in interval space: convert to gaps,
// shift, rebuild from index 0. Patterns with fewer than 2 pulses come back
// unchanged (copied).
func RotateByInterval(pattern []bool, rotation int) []bool {
	intervals := PatternToIntervals(pattern)
	if len(intervals) == 0 {
		out := make([]bool, len(pattern))
		copy(out, pattern)
		return out
	}
	return IntervalsToPattern(RotateIntervals(intervals, rotation), len(pattern))
}

// RotateSlice rotates the realized boolean array directly (wrap-around
// slice). Used for portamento and sequence-pool rotation.
func RotateSlice(pattern []bool, rotation int) []bool {
	n := len(pattern)
	if n == 0 {
		return []bool{}
	}
	rotation = ((rotation % n) + n) % n
	out := make([]bool, 0, n)
	out = append(out, pattern[rotation:]...)
	out = append(out, pattern[:rotation]...)
	return out
}

// ActiveIndices lists the indices holding true, in order.
func ActiveIndices(pattern []bool) []int {
	indices := make([]int, 0, len(pattern))
	for i, on := range pattern {
		if on {
			indices = append(indices, i)
		}
	}
	return indices
}

// Count returns the number of active steps.
func Count(pattern []bool) int {
	n := 0
	for _, on := range pattern {
		if on {
			n++
		}
	}
	return n
}
