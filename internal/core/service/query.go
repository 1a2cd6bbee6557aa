package service

// DefaultPageLimit is applied when a caller does not ask for a page size.
const DefaultPageLimit = 10

// Page is an offset/limit window over an already-filtered result set.
// Filtering always runs before pagination, so the window never sees raw
// store order gaps.
type Page struct {
	Offset int
	Limit  int
}

// normalize clamps the window to usable values. Boundary validation rejects
// negative offsets and non-positive limits before they reach the core, so
// this only fills in defaults.
func (p Page) normalize() Page {
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	return p
}

// filter keeps the elements matching keep, preserving order.
func filter[T any](in []T, keep func(T) bool) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// paginate slices the window out of in. An offset past the end yields an
// empty slice, not an error.
func paginate[T any](in []T, p Page) []T {
	p = p.normalize()
	if p.Offset >= len(in) {
		return []T{}
	}
	end := p.Offset + p.Limit
	if end > len(in) {
		end = len(in)
	}
	return in[p.Offset:end]
}

// inRange checks an optional closed interval. A bound set to zero is a real
// bound: absence is expressed by a nil pointer, never by a zero value.
func inRange(v float64, min, max *float64) bool {
	if min != nil && v < *min {
		return false
	}
	if max != nil && v > *max {
		return false
	}
	return true
}

func intInRange(v int, min, max *int) bool {
	if min != nil && v < *min {
		return false
	}
	if max != nil && v > *max {
		return false
	}
	return true
}
