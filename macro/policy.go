package macro

import (
	"scrimmage/game"
	"scrimmage/meta"
	"scrimmage/utils"
)

// MCTSPolicy searches over the macro space each time its plan runs dry,
// expands the winning macro into a primitive action plan on a scratch
// clone, and replays that plan one action at a time — the Go analog of
// the original's stateful MacroMCTSPolicy holding currentPlan_/
// planIndex_.
type MCTSPolicy struct {
	search   *Search
	seed     uint64
	plan     []game.Action
	planHead int
}

func NewMCTSPolicy(evaluate game.Evaluate, episodes int, seed uint64) *MCTSPolicy {
	return &MCTSPolicy{search: NewSearch(evaluate, episodes, seed), seed: seed}
}

func (p *MCTSPolicy) ChooseAction(state *game.MatchState) game.Action {
	if action, ok := p.nextQueued(state); ok {
		return action
	}

	mac := p.search.Choose(state)
	p.seed++
	result := ExpandPlan(state, p.seed+uint64(meta.MacroEpisodes), mac)
	p.plan = result.Actions
	p.planHead = 0

	if action, ok := p.nextQueued(state); ok {
		return action
	}

	// The plan's first action is already illegal against the real state
	// (a turnover happened mid-expansion on the scratch clone, or the
	// macro expanded to nothing) — fall back to whatever is legal.
	p.plan = nil
	legal := game.LegalActions(state)
	return legal[0]
}

// nextQueued pops the next planned action if one remains and it is
// still legal against state, clearing the plan otherwise.
func (p *MCTSPolicy) nextQueued(state *game.MatchState) (game.Action, bool) {
	for p.planHead < len(p.plan) {
		action := p.plan[p.planHead]
		p.planHead++
		if utils.FindIndex(game.LegalActions(state), action) >= 0 {
			return action, true
		}
		p.plan = nil
		p.planHead = 0
		return game.Action{}, false
	}
	p.plan = nil
	return game.Action{}, false
}

// Reset clears the in-flight plan, for reuse across a new match.
func (p *MCTSPolicy) Reset() {
	p.plan = nil
	p.planHead = 0
}
