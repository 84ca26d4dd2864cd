package workflow

// Order returns the steps in a single deterministic linear order respecting
// the resolvable depends_on edges. It is a stable Kahn sort: at every point
// the earliest step in file order among those whose prerequisites are all
// placed comes next, so re-running on unchanged input always reproduces the
// sequence the author laid out, and a step is never pushed behind an
// unrelated later one just because a dependency edge released it late.
//
// The function is total. Dangling depends_on ids are ignored, steps caught
// in a dependency cycle are appended in file order, and steps without an id
// are appended last, also in file order. The worst case (everything cyclic
// or id-less) degrades to the original file order, which is still a valid,
// navigable sequence.
//
// When two steps share an id, the last-loaded record shadows the earlier one
// and the id is emitted once.
func Order(steps []Step) []Step {
	byID := make(map[string]Step, len(steps))
	var ids []string // known ids, first-appearance order
	for _, s := range steps {
		if s.ID == "" {
			continue
		}
		if _, dup := byID[s.ID]; !dup {
			ids = append(ids, s.ID)
		}
		byID[s.ID] = s
	}

	// In-degree per known id, counting only edges whose source resolves.
	indeg := make(map[string]int, len(ids))
	for _, id := range ids {
		indeg[id] = 0
	}
	for _, s := range steps {
		if s.ID == "" {
			continue
		}
		for _, dep := range s.DependsOn {
			if _, known := indeg[dep]; known {
				indeg[s.ID]++
			}
		}
	}

	// Emit the earliest-in-file-order ready id until none remain ready. A
	// plain FIFO queue would order ids by when their last edge released
	// them, letting a dependent overtake an independent step that appears
	// earlier in the file.
	ordered := make([]string, 0, len(ids))
	placed := make(map[string]bool, len(ids))
	for {
		next := ""
		for _, id := range ids {
			if !placed[id] && indeg[id] == 0 {
				next = id
				break
			}
		}
		if next == "" {
			break
		}
		placed[next] = true
		ordered = append(ordered, next)

		// Release dependents.
		for _, t := range steps {
			if t.ID == "" || placed[t.ID] {
				continue
			}
			if _, known := indeg[t.ID]; !known {
				continue
			}
			if containsID(t.DependsOn, next) {
				indeg[t.ID]--
			}
		}
	}

	// Cycle leftovers keep their file order.
	for _, id := range ids {
		if !placed[id] {
			ordered = append(ordered, id)
		}
	}

	out := make([]Step, 0, len(steps))
	for _, id := range ordered {
		out = append(out, byID[id])
	}
	// Id-less steps go last, in file order.
	for _, s := range steps {
		if s.ID == "" {
			out = append(out, s)
		}
	}
	return out
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
