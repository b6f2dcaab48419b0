// Package construction builds an initial assignment from scratch: a
// DSATUR-style graph-coloring pass assigns periods, generalized from
// "merge compatible sessions into one color group" to "pick the
// least-loaded conflict-free period per exam", followed by a greedy room
// assignment pass using a score-then-pick strategy that may leave a DUD
// list of exams without a feasible room for the repair phase to pick up.
package construction

import (
	"sort"

	"timetabling-UDP/internal/model"
)

// conflictGraph is an adjacency list over exam ids, edge weight equal to
// the number of shared students+instructors — the same notion of
// "conflict" the criteria package's attendeeDirectConflicts scores.
type conflictGraph struct {
	adjacency map[int]map[int]int // examID -> neighbourID -> shared attendee count
}

func buildConflictGraph(m *model.Model) *conflictGraph {
	g := &conflictGraph{adjacency: make(map[int]map[int]int)}
	ids := make([]int, 0, len(m.Exams))
	for id := range m.Exams {
		ids = append(ids, id)
		g.adjacency[id] = make(map[int]int)
	}
	sort.Ints(ids)

	attendeesOf := func(e *model.Exam) map[int]bool {
		set := make(map[int]bool, len(e.StudentIDs)+len(e.InstructorIDs))
		for _, id := range e.StudentIDs {
			set[id] = true
		}
		for _, id := range e.InstructorIDs {
			set[id] = true
		}
		return set
	}
	cache := make(map[int]map[int]bool, len(ids))
	for _, id := range ids {
		cache[id] = attendeesOf(m.Exams[id])
	}

	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			a, b := ids[i], ids[j]
			shared := 0
			for att := range cache[a] {
				if cache[b][att] {
					shared++
				}
			}
			if shared > 0 {
				g.adjacency[a][b] = shared
				g.adjacency[b][a] = shared
			}
		}
	}
	return g
}

func (g *conflictGraph) degree(examID int) int { return len(g.adjacency[examID]) }

// ColoringConstruction assigns every exam a period using a DSATUR
// ordering: at each step, pick the uncoloured exam with the highest
// "saturation" (count of distinct periods already used by its conflict
// neighbours), breaking ties by conflict-graph degree, a "vertex of
// maximal degree" pivot rule adapted to DSATUR's dynamic saturation
// metric instead of a static degree-only ordering, since exam-timetabling
// period grids are large enough that plain max-degree ordering colors
// poorly.
type ColoringConstruction struct {
	graph *conflictGraph
}

func NewColoringConstruction(m *model.Model) *ColoringConstruction {
	return &ColoringConstruction{graph: buildConflictGraph(m)}
}

// Run assigns a period (attendee-conflict-free where possible) to every
// exam in m, returning examID -> periodID. Exams for which no
// conflict-free period exists are still given the least-bad (lowest
// extra-conflict) period; the resulting soft conflicts are left for the
// criteria framework and repair phase to resolve.
func (c *ColoringConstruction) Run(m *model.Model) map[int]int {
	periodIDs := make([]int, 0, len(m.Periods))
	for id, p := range m.Periods {
		if !p.Hard {
			periodIDs = append(periodIDs, id)
		}
	}
	sort.Ints(periodIDs)

	colorOf := make(map[int]int, len(m.Exams)) // examID -> periodID
	periodLoad := make(map[int]int, len(periodIDs))

	remaining := make(map[int]bool, len(m.Exams))
	for id := range m.Exams {
		remaining[id] = true
	}

	for len(remaining) > 0 {
		pivot := pickPivot(c.graph, remaining, colorOf)
		exam := m.Exams[pivot]

		best, bestLoad, bestConflicts := -1, -1, -1
		for _, periodID := range periodIDs {
			if !m.Periods[periodID].ExamAvailable(pivot) {
				continue
			}
			conflicts := 0
			for neighbor := range c.graph.adjacency[pivot] {
				if period, colored := colorOf[neighbor]; colored && period == periodID {
					conflicts++
				}
			}
			load := periodLoad[periodID]
			if best == -1 || conflicts < bestConflicts || (conflicts == bestConflicts && load < bestLoad) {
				best, bestLoad, bestConflicts = periodID, load, conflicts
			}
		}
		if best == -1 && len(periodIDs) > 0 {
			best = periodIDs[0]
		}

		if best != -1 {
			colorOf[pivot] = best
			periodLoad[best]++
		}
		_ = exam
		delete(remaining, pivot)
	}

	return colorOf
}

// pickPivot selects the next exam to color: highest saturation degree
// (distinct colors already used by neighbours), ties broken by raw
// conflict-graph degree, further ties broken by lowest exam id for
// determinism.
func pickPivot(g *conflictGraph, remaining map[int]bool, colorOf map[int]int) int {
	best, bestSat, bestDeg := -1, -1, -1
	ids := make([]int, 0, len(remaining))
	for id := range remaining {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		seen := make(map[int]bool)
		for neighbor := range g.adjacency[id] {
			if period, ok := colorOf[neighbor]; ok {
				seen[period] = true
			}
		}
		sat := len(seen)
		deg := g.degree(id)
		if sat > bestSat || (sat == bestSat && deg > bestDeg) {
			best, bestSat, bestDeg = id, sat, deg
		}
	}
	return best
}
