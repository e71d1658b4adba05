package geometry

import "sort"

// AngleIndex provides O(log n + k) angle overlap queries for hit-testing.
// Spans are loaded once when the scene is built and never modified after.
type AngleIndex struct {
	spans  []AngleSpan
	maxEnd []float64 // maxEnd[i] = max(End) for spans[i:]
}

// AngleSpan is one arc's angular range tagged with its arc index.
type AngleSpan struct {
	Start float64
	End   float64
	Index int
}

// BuildAngleIndex creates an angle index from a slice of spans.
func BuildAngleIndex(spans []AngleSpan) *AngleIndex {
	if len(spans) == 0 {
		return &AngleIndex{}
	}

	sorted := make([]AngleSpan, len(spans))
	copy(sorted, spans)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	// Build suffix-max array: maxEnd[i] = max(end) for sorted[i:]
	maxEnd := make([]float64, len(sorted))
	maxEnd[len(sorted)-1] = sorted[len(sorted)-1].End
	for i := len(sorted) - 2; i >= 0; i-- {
		maxEnd[i] = sorted[i].End
		if maxEnd[i+1] > maxEnd[i] {
			maxEnd[i] = maxEnd[i+1]
		}
	}

	return &AngleIndex{spans: sorted, maxEnd: maxEnd}
}

// FindOverlaps returns the indices of all spans whose [Start, End] range
// contains the given angle, in ascending start order.
func (x *AngleIndex) FindOverlaps(angle float64) []int {
	if len(x.spans) == 0 {
		return nil
	}

	// First span with Start > angle bounds the scan.
	limit := sort.Search(len(x.spans), func(i int) bool {
		return x.spans[i].Start > angle
	})

	var hits []int
	for i := 0; i < limit; i++ {
		if x.maxEnd[i] < angle {
			break
		}
		if x.spans[i].End >= angle {
			hits = append(hits, x.spans[i].Index)
		}
	}
	return hits
}
