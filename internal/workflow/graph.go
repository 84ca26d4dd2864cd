package workflow

// Graph is a read-only view of the resolvable depends_on edges between
// steps, used by the dag and doctor commands. Unlike the sequencer it keeps
// the edge structure around for parent/child queries and cycle reporting.
//
// Construction is tolerant by the same contract as Order: edges to unknown
// ids and self-loops are dropped, duplicate edges are deduped, and a step
// without an id is not a node.
type Graph struct {
	order    []string            // known ids, file-appearance order
	parents  map[string][]string // dependent -> prerequisites
	children map[string][]string // prerequisite -> dependents
}

// NewGraph builds the reference graph for the given steps.
func NewGraph(steps []Step) *Graph {
	g := &Graph{
		parents:  make(map[string][]string),
		children: make(map[string][]string),
	}
	known := make(map[string]bool, len(steps))
	for _, s := range steps {
		if s.ID == "" || known[s.ID] {
			continue
		}
		known[s.ID] = true
		g.order = append(g.order, s.ID)
		g.parents[s.ID] = nil
		g.children[s.ID] = nil
	}
	for _, s := range steps {
		if s.ID == "" {
			continue
		}
		for _, dep := range s.DependsOn {
			if !known[dep] || dep == s.ID {
				continue
			}
			if containsID(g.parents[s.ID], dep) {
				continue
			}
			g.parents[s.ID] = append(g.parents[s.ID], dep)
			g.children[dep] = append(g.children[dep], s.ID)
		}
	}
	return g
}

// IDs returns the node ids in file-appearance order.
func (g *Graph) IDs() []string { return g.order }

// Parents returns the prerequisites of id.
func (g *Graph) Parents(id string) []string { return g.parents[id] }

// Children returns the steps that depend on id.
func (g *Graph) Children(id string) []string { return g.children[id] }

// NodeCount returns the number of steps participating in the graph.
func (g *Graph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of resolvable dependency edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, deps := range g.parents {
		n += len(deps)
	}
	return n
}

// HasCycle reports whether the graph contains a dependency cycle, along with
// one representative cycle path. A cycle is a data-quality finding here, not
// an error: ordering still terminates by falling back to file order.
func (g *Graph) HasCycle() (bool, []string) {
	visited := make(map[string]bool)
	inStack := make(map[string]bool)
	prev := make(map[string]string)

	var cycle []string
	var dfs func(id string) bool
	dfs = func(id string) bool {
		visited[id] = true
		inStack[id] = true

		for _, child := range g.children[id] {
			if !visited[child] {
				prev[child] = id
				if dfs(child) {
					return true
				}
			} else if inStack[child] {
				cycle = []string{child}
				for cur := id; cur != child; cur = prev[cur] {
					cycle = append([]string{cur}, cycle...)
				}
				cycle = append([]string{child}, cycle...)
				return true
			}
		}

		inStack[id] = false
		return false
	}

	for _, id := range g.order {
		if !visited[id] {
			if dfs(id) {
				return true, cycle
			}
		}
	}
	return false, nil
}

// Levels groups steps by dependency depth: level 0 holds steps with no
// resolvable prerequisites, level N steps whose prerequisites all sit at
// levels below N. Steps trapped in a cycle cannot be assigned a depth and
// are grouped into a final trailing level, in file order, so the result is
// always total.
func (g *Graph) Levels() [][]string {
	indeg := make(map[string]int, len(g.order))
	for _, id := range g.order {
		indeg[id] = len(g.parents[id])
	}

	assigned := make(map[string]bool, len(g.order))
	var levels [][]string
	current := zeroDegree(g.order, indeg, assigned)
	for len(current) > 0 {
		levels = append(levels, current)
		for _, id := range current {
			assigned[id] = true
			for _, child := range g.children[id] {
				indeg[child]--
			}
		}
		current = zeroDegree(g.order, indeg, assigned)
	}

	// Whatever is left sits on a cycle.
	var rest []string
	for _, id := range g.order {
		if !assigned[id] {
			rest = append(rest, id)
		}
	}
	if len(rest) > 0 {
		levels = append(levels, rest)
	}
	return levels
}

func zeroDegree(order []string, indeg map[string]int, assigned map[string]bool) []string {
	var out []string
	for _, id := range order {
		if !assigned[id] && indeg[id] <= 0 {
			out = append(out, id)
		}
	}
	return out
}
