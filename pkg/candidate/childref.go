package candidate

// HasChildRefs is implemented by a composite candidate's ScoreDetails
// when it references other candidates by ID (the Go stand-in for the
// source's "score_details that reference child candidates"). The
// schema generator uses this, not field names, to resolve which
// selected children belong to which declared element-tree field.
type HasChildRefs interface {
	ChildRefs() []ID
}

// ChildRefsOf returns the child candidate IDs referenced by c's
// ScoreDetails, or nil if it doesn't reference any (atomic candidates,
// or composites whose details type hasn't implemented HasChildRefs).
func ChildRefsOf(c AnyCandidate) []ID {
	if hc, ok := c.ScoreDetails().(HasChildRefs); ok {
		return hc.ChildRefs()
	}
	return nil
}
