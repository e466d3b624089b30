package sim

import (
	"strconv"

	"github.com/pagesim/pagesim/sim/trace"
)

// References is an ordered reference sequence. The engine never mutates it.
type References []trace.PageID

// IntReferences builds a reference sequence from integer page numbers.
func IntReferences(pages ...int) References {
	refs := make(References, len(pages))
	for i, p := range pages {
		refs[i] = trace.PageID(strconv.Itoa(p))
	}
	return refs
}

// StringReferences builds a reference sequence from page names.
func StringReferences(pages ...string) References {
	refs := make(References, len(pages))
	for i, p := range pages {
		refs[i] = trace.PageID(p)
	}
	return refs
}

// Clone returns an independent copy of the sequence.
func (r References) Clone() References {
	if r == nil {
		return nil
	}
	out := make(References, len(r))
	copy(out, r)
	return out
}

// Distinct returns the number of distinct pages referenced.
func (r References) Distinct() int {
	seen := make(map[trace.PageID]struct{}, len(r))
	for _, p := range r {
		seen[p] = struct{}{}
	}
	return len(seen)
}
