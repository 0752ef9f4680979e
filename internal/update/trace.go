package update

import "github.com/sandeepkv93/nextup/internal/recommend"

const traceRingSize = 12

// traceRing keeps the most recent scoring breakdowns for the debug pane.
// It satisfies recommend.Tracer and is only wired in when tracing is on.
type traceRing struct {
	max     int
	entries []recommend.ScoredCandidate
}

func newTraceRing(max int) *traceRing {
	return &traceRing{max: max}
}

func (r *traceRing) Trace(c recommend.ScoredCandidate) {
	r.entries = append(r.entries, c)
	if len(r.entries) > r.max {
		r.entries = r.entries[len(r.entries)-r.max:]
	}
}

func (r *traceRing) Entries() []recommend.ScoredCandidate {
	return r.entries
}

func (r *traceRing) Reset() {
	r.entries = nil
}
