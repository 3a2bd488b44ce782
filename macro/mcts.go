package macro

import (
	"math"

	"golang.org/x/exp/rand"

	"scrimmage/dice"
	"scrimmage/game"
	"scrimmage/meta"
)

const exploration = 1.4

// node is one macro choice in the search tree; children are only the
// macros available after replaying this node's own macro, built
// lazily on first visit.
type node struct {
	macro      Macro
	parent     *node
	children   []*node
	visits     int
	totalValue float64
	prior      float64
	expanded   bool
}

func (n *node) meanValue() float64 {
	if n.visits == 0 {
		return 0
	}
	return n.totalValue / float64(n.visits)
}

// bestChildPUCT picks the child maximizing Q+U, with first-play-urgency
// set to the mean of already-visited children, the same FPU rule the
// original's bestChildPUCT implements.
func (n *node) bestChildPUCT() *node {
	if len(n.children) == 0 {
		return nil
	}
	fpu, visited := 0.0, 0
	for _, c := range n.children {
		if c.visits > 0 {
			fpu += c.meanValue()
			visited++
		}
	}
	if visited > 0 {
		fpu /= float64(visited)
	}

	var best *node
	bestScore := math.Inf(-1)
	for _, c := range n.children {
		q := fpu
		if c.visits > 0 {
			q = c.meanValue()
		}
		u := exploration * c.prior * math.Sqrt(float64(n.visits)) / float64(1+c.visits)
		if score := q + u; score > bestScore {
			bestScore = score
			best = c
		}
	}
	return best
}

func (n *node) mostVisited() *node {
	var best *node
	bestVisits := -1
	for _, c := range n.children {
		if c.visits > bestVisits {
			bestVisits = c.visits
			best = c
		}
	}
	return best
}

// Search runs MCTS over the macro space: each tree edge is a macro,
// each simulation replays the macros along a path against a fresh
// clone (open-loop, same replay discipline as the primitive searcher),
// greedily expanding each one via expandInPlace before descending further.
type Search struct {
	episodes int
	evaluate game.Evaluate
	seed     uint64
}

func NewSearch(evaluate game.Evaluate, episodes int, seed uint64) *Search {
	if evaluate == nil {
		evaluate = game.EvaluatePosition
	}
	if episodes <= 0 {
		episodes = meta.MacroEpisodes
	}
	return &Search{episodes: episodes, evaluate: evaluate, seed: seed}
}

// Choose returns the macro with the most visits after the search
// budget is spent, or the sole available macro without spending any
// budget when there is nothing to choose between.
func (s *Search) Choose(state *game.MatchState) Macro {
	macros := AvailableMacros(state)
	if len(macros) == 1 {
		return macros[0]
	}

	root := &node{visits: 0}
	root.children = makeChildren(root, macros)

	for i := 0; i < s.episodes; i++ {
		s.seed++
		leaf, path := s.selectAndExpand(state, root)
		value := s.simulate(state, path, s.seed)
		backprop(leaf, value)
	}

	best := root.mostVisited()
	if best == nil {
		return macros[0]
	}
	return best.macro
}

func makeChildren(parent *node, macros []Macro) []*node {
	children := make([]*node, len(macros))
	prior := 1.0 / float64(len(macros))
	for i, m := range macros {
		children[i] = &node{macro: m, parent: parent, prior: prior}
	}
	return children
}

// selectAndExpand descends via PUCT from root, replaying each edge's
// macro against a clone to discover the next level's available macros,
// stopping at the first not-yet-expanded node or a terminal/EndTurn
// node.
func (s *Search) selectAndExpand(rootState *game.MatchState, root *node) (*node, []*node) {
	clone := rootState.Clone()
	path := []*node{root}
	current := root

	for {
		if current.macro.Type == EndTurn && current != root {
			return current, path
		}
		if !current.expanded {
			plan := expandInPlace(clone, dice.NewSeeded(s.seed), current.macro)
			_ = plan
			if clone.Phase == game.Play && !plan.Turnover {
				current.children = makeChildren(current, AvailableMacros(clone))
			}
			current.expanded = true
			return current, path
		}
		next := current.bestChildPUCT()
		if next == nil {
			return current, path
		}
		plan := expandInPlace(clone, dice.NewSeeded(s.seed), next.macro)
		_ = plan
		path = append(path, next)
		current = next
		if clone.Phase != game.Play || plan.Turnover {
			return current, path
		}
	}
}

// simulate replays the path's macros from scratch against a private
// clone (the node-visit above already mutated its own clone, discarded
// here) then runs a short random rollout to a static evaluation,
// mirroring the primitive searcher's cutoff-rollout convention.
func (s *Search) simulate(rootState *game.MatchState, path []*node, seed uint64) float64 {
	clone := rootState.Clone()
	d := dice.NewSeeded(seed)
	startSide := rootState.ActiveSide

	for _, n := range path[1:] {
		if clone.Phase != game.Play {
			break
		}
		expandInPlace(clone, d, n.macro)
	}

	r := rand.New(rand.NewSource(seed + 1))
	for step := 0; step < meta.Cutoff && clone.Phase == game.Play; step++ {
		legal := game.LegalActions(clone)
		if len(legal) == 0 {
			break
		}
		action := legal[r.Intn(len(legal))]
		game.Resolve(d, clone, action, nil)
	}

	value := s.evaluate(clone)
	if clone.Phase == game.GameOver {
		if winner, decided := clone.Winner(); decided {
			value = 1
			if winner != startSide {
				value = -1
			}
		}
	} else if clone.ActiveSide != startSide {
		value = -value
	}
	return value
}

// backprop adds value, a fixed score from the root's perspective, to
// every node on the path to root — macros don't alternate side the way
// primitive actions do, so there is no per-level sign flip here, unlike
// searcher.Node.backupEdge.
func backprop(n *node, value float64) {
	for cur := n; cur != nil; cur = cur.parent {
		cur.visits++
		cur.totalValue += value
	}
}
