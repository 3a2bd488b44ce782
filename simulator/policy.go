package simulator

import (
	"golang.org/x/exp/rand"

	"scrimmage/dice"
	"scrimmage/game"
	"scrimmage/searcher"
)

// RandomPolicy picks uniformly among the current legal actions — the
// rollout policy promoted to a standalone Policy for baseline matches.
type RandomPolicy struct{}

func (RandomPolicy) ChooseAction(state *game.MatchState) game.Action {
	legal := game.LegalActions(state)
	return legal[rand.Intn(len(legal))]
}

// GreedyPolicy picks the legal action whose one-ply resolution (on a
// clone, with its own dice draw) scores best under Evaluate, a cheap
// stand-in for search when a full MCTS budget is not wanted.
type GreedyPolicy struct {
	Evaluate game.Evaluate
	seed     uint64
}

func NewGreedyPolicy(evaluate game.Evaluate) *GreedyPolicy {
	if evaluate == nil {
		evaluate = game.EvaluatePosition
	}
	return &GreedyPolicy{Evaluate: evaluate}
}

func (g *GreedyPolicy) ChooseAction(state *game.MatchState) game.Action {
	legal := game.LegalActions(state)
	side := state.ActiveSide

	best := legal[0]
	bestScore := -1e18
	for _, action := range legal {
		clone := state.Clone()
		g.seed++
		src := dice.NewSeeded(g.seed)
		game.Resolve(src, clone, action, nil)
		score := g.Evaluate(clone)
		if clone.ActiveSide != side {
			score = -score
		}
		if score > bestScore {
			bestScore = score
			best = action
		}
	}
	return best
}

// MCTSPolicy drives one side with a full primitive search per decision,
// reusing the prior decision's subtree via the Segment lineage the real
// match actually walked.
type MCTSPolicy struct {
	mcts    *searcher.MCTS
	lineage []searcher.Segment
}

func NewMCTSPolicy(mcts *searcher.MCTS) *MCTSPolicy {
	return &MCTSPolicy{mcts: mcts}
}

func (p *MCTSPolicy) ChooseAction(state *game.MatchState) game.Action {
	before := state.Hash()
	action := p.mcts.BestAction(state, p.lineage)
	p.lineage = append(p.lineage, searcher.Segment{Action: action, StateHash: before})
	return action
}

// Reset clears the policy's tree-reuse lineage, for starting a fresh
// match with the same *MCTSPolicy instance.
func (p *MCTSPolicy) Reset() { p.lineage = nil }
