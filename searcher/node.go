package searcher

import (
	"math"
	"sort"
	"sync"

	"golang.org/x/exp/rand"

	"scrimmage/game"
)

// virtualLoss is subtracted from an edge's running value while it is
// in flight, so concurrent goroutines descending the same node spread
// out across its edges rather than piling onto whichever one currently
// looks best. Reversed at backup once the edge's real outcome lands.
const virtualLoss = 1.0

// edge is one legal action out of a Node, carrying its own visit/value
// statistics and, once selected past the tree frontier, the Node reached
// by taking it. Per the open-loop design the child is reused across
// iterations even though resolving the action again draws fresh dice and
// can land on a different resulting state — the tree is keyed by action
// sequence, never by a cached post-roll state.
type edge struct {
	action game.Action
	prior  float64
	visits int
	value  float64
	child  *Node
}

// Node is one decision point in the search tree: the set of legal
// actions available at whatever state was current the first time play
// reached it, plus PUCT statistics per action. Node itself never stores
// a MatchState — state only ever exists in the goroutine-local state the
// simulation thread is carrying, rebuilt by replaying the path down from
// the root with fresh dice each iteration.
type Node struct {
	mu       sync.Mutex
	side     game.Side
	edges    []edge
	visits   int
	expanded bool
}

func newNode(state *game.MatchState) *Node {
	return &Node{side: state.ActiveSide}
}

// expand installs this node's action set and priors exactly once;
// concurrent callers that lose the race are no-ops.
func (n *Node) expand(actions []game.Action, priors []float64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.expanded {
		return
	}
	edges := make([]edge, len(actions))
	for i, a := range actions {
		edges[i] = edge{action: a, prior: priors[i]}
	}
	sort.SliceStable(edges, func(i, j int) bool { return edges[i].prior > edges[j].prior })
	n.edges = edges
	n.expanded = true
}

func (n *Node) isExpanded() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.expanded
}

// selectEdge picks the best PUCT-scored edge among those the current
// visit count has widened into, applies virtual loss, and returns its
// index together with a copy of the chosen action. exploration is the
// PUCT constant supplied by the owning MCTS (see WithExploration).
func (n *Node) selectEdge(exploration float64) (int, game.Action) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if len(n.edges) == 0 {
		return -1, game.Action{}
	}

	limit := widenLimit(n.visits, len(n.edges))
	best := 0
	bestScore := math.Inf(-1)
	for i := 0; i < limit; i++ {
		e := &n.edges[i]
		q := 0.0
		if e.visits > 0 {
			q = e.value / float64(e.visits)
		}
		score := puct(q, e.prior, n.visits, e.visits, exploration)
		if score > bestScore {
			bestScore = score
			best = i
		}
	}

	n.visits++
	n.edges[best].visits++
	n.edges[best].value -= virtualLoss
	return best, n.edges[best].action
}

// childFor returns the existing child Node for edge idx, creating one
// rooted at state's active side if this is the first time the edge has
// been taken past the tree frontier. The bool reports whether the child
// was newly created (i.e. this simulation has now reached the frontier).
func (n *Node) childFor(idx int, state *game.MatchState) (*Node, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	e := &n.edges[idx]
	if e.child != nil {
		return e.child, false
	}
	e.child = newNode(state)
	return e.child, true
}

// addRootNoise mixes Dirichlet(1,...,1) noise into the root's priors so
// repeated searches from the same position don't always explore the
// same handful of actions first. Dirichlet(1,...,1) is exactly a set of
// independent Exp(1) draws normalized to sum to one.
func (n *Node) addRootNoise(eps float64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.edges) == 0 {
		return
	}
	noise := make([]float64, len(n.edges))
	sum := 0.0
	for i := range noise {
		noise[i] = rand.ExpFloat64()
		sum += noise[i]
	}
	for i := range n.edges {
		n.edges[i].prior = (1-eps)*n.edges[i].prior + eps*(noise[i]/sum)
	}
	sort.SliceStable(n.edges, func(i, j int) bool { return n.edges[i].prior > n.edges[j].prior })
}

// peekChild returns edge idx's child without creating one, for lineage
// lookups that must never fabricate a node the live search hasn't
// actually expanded yet.
func (n *Node) peekChild(idx int) *Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.edges[idx].child
}

// backupEdge reverses the virtual loss applied at selection and records
// the real outcome, expressed in homeValue from Home's perspective and
// converted here to this node's own side-relative sign.
func (n *Node) backupEdge(idx int, homeValue float64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	v := homeValue
	if n.side != game.Home {
		v = -v
	}
	n.edges[idx].value += virtualLoss + v
}

// Policy returns the visit-count distribution over this node's legal
// actions, the standard MCTS move-selection signal: more visits means
// more confidence, regardless of the raw value estimate.
func (n *Node) Policy() map[game.Action]float64 {
	n.mu.Lock()
	defer n.mu.Unlock()

	total := 0
	for _, e := range n.edges {
		total += e.visits
	}
	policy := make(map[game.Action]float64, len(n.edges))
	if total == 0 {
		for _, e := range n.edges {
			policy[e.action] = 1.0 / float64(len(n.edges))
		}
		return policy
	}
	for _, e := range n.edges {
		policy[e.action] = float64(e.visits) / float64(total)
	}
	return policy
}

// BestAction returns the most-visited legal action, the move the search
// actually recommends playing.
func (n *Node) BestAction() game.Action {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.edges) == 0 {
		panic("searcher: node has no legal actions")
	}
	best := 0
	for i, e := range n.edges {
		if e.visits > n.edges[best].visits {
			best = i
		}
	}
	return n.edges[best].action
}
