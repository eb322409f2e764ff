package scoring

// FilterByIntersectingHierarchy returns the elements of a that overlap the
// hierarchy of b: a model m from a is kept iff it equals some model in b,
// is an ancestor of some model in b, or is a descendant of some model in b
// (spec.md §4.2, Invariant 4). When b is empty, a is returned unchanged.
//
// The implementation indexes b's ids and the ids of all of b's descendants
// once, giving O(|a| + |b| + descendants(b)|) instead of the naive
// O(|a| * |b| * depth).
func FilterByIntersectingHierarchy(a, b []ContentModel) []ContentModel {
	if len(b) == 0 {
		return a
	}

	bIDs := make(map[ObjectID]struct{}, len(b))
	descendantIDs := make(map[ObjectID]struct{})
	ancestorIDs := make(map[ObjectID]struct{})
	for _, m := range b {
		bIDs[m.ID()] = struct{}{}
		collectDescendantIDs(m, descendantIDs)
		for _, anc := range m.Ancestors(false) {
			ancestorIDs[anc.ID()] = struct{}{}
		}
	}

	out := make([]ContentModel, 0, len(a))
	for _, m := range a {
		if _, ok := bIDs[m.ID()]; ok {
			out = append(out, m)
			continue
		}
		if _, ok := descendantIDs[m.ID()]; ok {
			// m is a descendant of some element of b.
			out = append(out, m)
			continue
		}
		if _, ok := ancestorIDs[m.ID()]; ok {
			// m is an ancestor of some element of b.
			out = append(out, m)
			continue
		}
		if isDescendantOfAny(m, bIDs) {
			out = append(out, m)
		}
	}
	return out
}

func collectDescendantIDs(m ContentModel, into map[ObjectID]struct{}) {
	for _, c := range m.Children() {
		into[c.ID()] = struct{}{}
		collectDescendantIDs(c, into)
	}
}

func isDescendantOfAny(m ContentModel, ids map[ObjectID]struct{}) bool {
	for _, anc := range m.Ancestors(false) {
		if _, ok := ids[anc.ID()]; ok {
			return true
		}
	}
	return false
}

// uniqueModels de-duplicates a model slice by id, preserving first-seen
// order.
func uniqueModels(models []ContentModel) []ContentModel {
	seen := make(map[ObjectID]struct{}, len(models))
	out := make([]ContentModel, 0, len(models))
	for _, m := range models {
		if _, ok := seen[m.ID()]; ok {
			continue
		}
		seen[m.ID()] = struct{}{}
		out = append(out, m)
	}
	return out
}

// modelIsAvailableInHierarchy reports whether m and every one of its
// ancestors (inclusive) is attached and available (spec.md §3 derived
// views, §7 DetachedModel).
func modelIsAvailableInHierarchy(m ContentModel) bool {
	if m == nil {
		return false
	}
	for _, n := range m.Ancestors(true) {
		if !n.IsAttached() || !n.IsAvailable() {
			return false
		}
	}
	return true
}

// availableModels restricts models to those whose ancestors are all
// attached and available (spec.md §3: availableModels).
func availableModels(models []ContentModel) []ContentModel {
	out := make([]ContentModel, 0, len(models))
	for _, m := range models {
		if modelIsAvailableInHierarchy(m) {
			out = append(out, m)
		}
	}
	return out
}
