package searcher

import (
	"sync"
	"time"

	"golang.org/x/exp/rand"

	"scrimmage/dice"
	"scrimmage/game"
)

// Option configures an MCTS before it starts searching.
type Option func(m *MCTS)

// Segment identifies one step of a previously-searched path, used to
// relocate a prior search's subtree when the real match advances by
// exactly that action — tree reuse across decisions within one turn.
type Segment struct {
	Action    game.Action
	StateHash game.StateHash
}

// MCTS runs an open-loop PUCT search over primitive actions: every
// simulation clones the real state and replays the path from the root
// with a fresh dice source, so no post-roll state is ever cached inside
// the tree — only per-action visit/value statistics are.
type MCTS struct {
	goroutines  int
	duration    time.Duration
	episodes    int
	cutoff      int
	evaluate    game.Evaluate
	priors      PriorFn
	seed        uint64
	exploration float64
	root        *Node
	metrics     Collector
	rootNoise   sync.Once
}

// PriorFn supplies a prior probability per legal action at a freshly
// expanded node. DefaultPriors gives every action equal weight; a policy
// network adapter can be plugged in here without the searcher needing
// to import anything about how that network is served.
type PriorFn func(state *game.MatchState, actions []game.Action) []float64

// DefaultPriors spreads prior mass uniformly across legal actions.
func DefaultPriors(state *game.MatchState, actions []game.Action) []float64 {
	priors := make([]float64, len(actions))
	if len(actions) == 0 {
		return priors
	}
	p := 1.0 / float64(len(actions))
	for i := range priors {
		priors[i] = p
	}
	return priors
}

func WithDuration(d time.Duration) Option {
	return func(m *MCTS) {
		if d > 0 {
			m.duration = d
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

func WithEvaluate(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithPriors(priors PriorFn) Option {
	return func(m *MCTS) {
		if priors != nil {
			m.priors = priors
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) { m.seed = seed }
}

// WithExploration overrides the PUCT exploration constant (defaultExploration
// if never set), trading off value exploitation against prior-weighted
// exploration of less-visited edges.
func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c > 0 {
			m.exploration = c
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) { m.metrics = NewCollector() }
}

const defaultCutoff = 200

// New builds an MCTS that spreads its episodes/duration budget across
// goroutines workers. At least one of WithEpisodes or WithDuration must
// be in effect; if both are, the episode budget is used.
func New(goroutines int, options ...Option) *MCTS {
	if goroutines < 1 {
		goroutines = 1
	}
	m := &MCTS{
		goroutines:  goroutines,
		cutoff:      defaultCutoff,
		evaluate:    game.EvaluatePosition,
		priors:      DefaultPriors,
		exploration: defaultExploration,
		metrics:     NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("searcher: must specify search episodes or duration")
	}
	return m
}

// Simulate runs the search rooted at state (state is never mutated —
// every iteration works on its own clone) and returns the resulting
// visit-count policy over state's legal actions plus this call's
// metrics. lineage, if non-empty, names a path from a previously
// returned root that the real game actually took, letting the new
// search reuse that subtree's statistics instead of starting cold.
func (m *MCTS) Simulate(state *game.MatchState, lineage []Segment) (map[game.Action]float64, SearchMetric) {
	m.findRoot(lineage, state)
	m.rootNoise = sync.Once{}

	m.metrics.Start()
	switch {
	case m.episodes > 0:
		m.iterate(state)
	case m.duration > 0:
		m.countdown(state)
	default:
		panic("searcher: must specify search episodes or duration")
	}
	metric := m.metrics.Complete()

	return m.root.Policy(), metric
}

// BestAction is a convenience wrapper around Simulate that returns the
// single most-visited action rather than the full policy.
func (m *MCTS) BestAction(state *game.MatchState, lineage []Segment) game.Action {
	m.Simulate(state, lineage)
	return m.root.BestAction()
}

func (m *MCTS) findRoot(lineage []Segment, state *game.MatchState) {
	root := traverse(m.root, lineage)
	if root == nil {
		m.root = newNode(state)
		m.metrics.SetTreeReset(true)
		return
	}
	m.root = root
	m.metrics.SetTreeReset(false)
}

// traverse walks root down through lineage's recorded actions, returning
// the Node reached or nil if the path has not been expanded that far (or
// was never walked at all).
func traverse(root *Node, lineage []Segment) *Node {
	node := root
	for _, segment := range lineage {
		if node == nil || !node.isExpanded() {
			return nil
		}
		idx := -1
		node.mu.Lock()
		for i, e := range node.edges {
			if e.action == segment.Action {
				idx = i
				break
			}
		}
		node.mu.Unlock()
		if idx < 0 {
			return nil
		}
		node = node.peekChild(idx)
	}
	return node
}

func (m *MCTS) iterate(state *game.MatchState) {
	tasks := make(chan struct{}, m.episodes)
	for i := 0; i < m.episodes; i++ {
		tasks <- struct{}{}
	}
	close(tasks)

	var wg sync.WaitGroup
	for w := 0; w < m.goroutines; w++ {
		wg.Add(1)
		go func(seed uint64) {
			defer wg.Done()
			src := dice.NewSeeded(seed)
			for range tasks {
				m.simulate(state, src)
				m.metrics.AddEpisode()
			}
		}(m.seed + uint64(w) + 1)
	}
	wg.Wait()
}

func (m *MCTS) countdown(state *game.MatchState) {
	done := make(chan struct{})
	var wg sync.WaitGroup
	for w := 0; w < m.goroutines; w++ {
		wg.Add(1)
		go func(seed uint64) {
			defer wg.Done()
			src := dice.NewSeeded(seed)
			for {
				select {
				case <-done:
					return
				default:
					m.simulate(state, src)
					m.metrics.AddEpisode()
				}
			}
		}(m.seed + uint64(w) + 1)
	}
	time.AfterFunc(m.duration, func() { close(done) })
	wg.Wait()
}

type pathStep struct {
	node *Node
	idx  int
}

// simulate runs one open-loop episode: select down through expanded
// nodes (replaying each chosen action against the cloned state with d's
// dice), expand the frontier node reached, roll out from there to
// termination or the cutoff depth, then back the resulting value up the
// path of edges actually taken.
func (m *MCTS) simulate(rootState *game.MatchState, d dice.Source) {
	state := rootState.Clone()
	node := m.root
	var path []pathStep

	for {
		if !node.isExpanded() {
			actions := game.LegalActions(state)
			if len(actions) == 0 {
				break
			}
			node.expand(actions, m.priors(state, actions))
			if node == m.root {
				m.rootNoise.Do(func() { node.addRootNoise(dirichletEps) })
			}
		}

		idx, action := node.selectEdge(m.exploration)
		if idx < 0 {
			break
		}
		path = append(path, pathStep{node: node, idx: idx})

		game.Resolve(d, state, action, nil)

		child, frontier := node.childFor(idx, state)
		node = child
		if frontier || state.Phase == game.GameOver {
			break
		}
	}

	value := m.rollout(state, d)
	m.backup(path, value)
}

// rollout plays uniformly-random legal actions from state until the
// match ends or cutoff primitive actions have elapsed, then returns a
// value in [-1, 1] from Home's perspective — either the actual outcome
// or, at cutoff, the static evaluation.
func (m *MCTS) rollout(state *game.MatchState, d dice.Source) float64 {
	depth := 0
	for state.Phase != game.GameOver && depth < m.cutoff {
		actions := game.LegalActions(state)
		if len(actions) == 0 {
			break
		}
		action := actions[rand.Intn(len(actions))]
		game.Resolve(d, state, action, nil)
		depth++
	}

	if state.Phase == game.GameOver {
		m.metrics.AddFullPlayout()
		winner, decided := state.Winner()
		if !decided {
			return 0
		}
		if winner == game.Home {
			return 1
		}
		return -1
	}

	raw := m.evaluate(state)
	if state.ActiveSide != game.Home {
		raw = -raw
	}
	return raw
}

func (m *MCTS) backup(path []pathStep, homeValue float64) {
	for _, step := range path {
		step.node.backupEdge(step.idx, homeValue)
	}
}
