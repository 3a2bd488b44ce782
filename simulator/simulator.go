// Package simulator drives one complete match from coin toss through
// game over: placement, kickoff, the turn-by-turn primitive action loop,
// and the half-time/touchdown transitions between drives. It is the
// single place that owns a live *game.MatchState outside of search —
// the teacher's engine.Run loop generalized from Risk's single
// attack/fortify/reinforce cycle to this ruleset's richer phase machine.
package simulator

import (
	"time"

	"github.com/rs/zerolog/log"

	"scrimmage/dice"
	"scrimmage/game"
	"scrimmage/meta"
	"scrimmage/roster"
	"scrimmage/utils"
)

// Policy chooses the next action for the side to move. The simulator
// never inspects how a Policy arrived at its answer — it only needs the
// chosen action to be present in the state's current legal list (and
// falls back to the first legal action if it is not, the same
// defensive fallback the teacher's MCTSAdapter.FindMove applies against
// a phase-invalid move).
type Policy interface {
	ChooseAction(state *game.MatchState) game.Action
}

// DecisionRecord is one step of the match log the bench harness and
// feature-extraction pipeline consume.
type DecisionRecord struct {
	Side   game.Side
	Action game.Action
}

// Result summarizes one completed (or forcibly stopped) match.
type Result struct {
	Winner       game.Side
	Decided      bool
	HomeScore    int
	AwayScore    int
	Decisions    int
	StoppedEarly bool // hit meta.MaxDecisions before reaching GameOver
}

// Match owns the live state for one simulated game and the two
// policies driving it.
type Match struct {
	state     *game.MatchState
	dice      dice.Source
	sink      game.Sink
	home      Policy
	away      Policy
	homeR     *roster.Roster
	awayR     *roster.Roster
	formation roster.Formation
	log       []DecisionRecord
}

// New builds a match ready to run, with Home kicking first.
func New(homeR, awayR *roster.Roster, home, away Policy, formation roster.Formation, source dice.Source, sink game.Sink) *Match {
	return &Match{
		state:     game.NewMatchState(game.Home),
		dice:      source,
		sink:      sink,
		home:      home,
		away:      away,
		homeR:     homeR,
		awayR:     awayR,
		formation: formation,
	}
}

// Run drives the match to completion, or to meta.MaxDecisions primitive
// actions, whichever comes first.
func (m *Match) Run() Result {
	m.setupDrive()

	decisions := 0
	for m.state.Phase != game.GameOver && decisions < meta.MaxDecisions {
		switch m.state.Phase {
		case game.Play:
			m.step()
			decisions++
		case game.Touchdown:
			m.restartDrive()
		case game.HalfTime:
			m.startSecondHalf()
		default:
			// CoinToss/Setup/Kickoff are only ever transient — setupDrive
			// and the transition handlers above always leave Phase in
			// Play, Touchdown, HalfTime, or GameOver.
			log.Warn().Int("phase", int(m.state.Phase)).Msg("simulator: unexpected phase in main loop")
			decisions++
		}
	}

	winner, decided := m.state.Winner()
	return Result{
		Winner:       winner,
		Decided:      decided,
		HomeScore:    m.state.Home.Score,
		AwayScore:    m.state.Away.Score,
		Decisions:    decisions,
		StoppedEarly: m.state.Phase != game.GameOver,
	}
}

// State exposes the live state for callers that want to drive the match
// one decision at a time instead of calling Run (e.g. to interleave UI
// rendering), at the cost of driving setup, kickoff and phase transitions
// themselves; Match exports no step or transition method.
func (m *Match) State() *game.MatchState { return m.state }

// Decisions returns the recorded side/action history for the match so
// far, consumed by the bench harness for move-level logging.
func (m *Match) Decisions() []DecisionRecord { return m.log }

func (m *Match) setupDrive() {
	m.state.Phase = game.Setup
	game.SetupHalf(m.state, m.state.KickingTeam, m.homeR, m.awayR, m.formation)
	m.kickoff()
}

func (m *Match) kickoff() {
	m.state.Phase = game.Kickoff
	game.ResolveKickoff(m.dice, m.state, m.sink)
	m.state.Phase = game.Play
	m.state.ActiveSide = m.state.KickingTeam.Opponent()
}

func (m *Match) step() {
	policy := m.policyFor(m.state.ActiveSide)
	legal := game.LegalActions(m.state)
	if len(legal) == 0 {
		panic("simulator: no legal actions in Play phase, EndTurn should always be present")
	}

	action := policy.ChooseAction(m.state)
	if utils.FindIndex(legal, action) < 0 {
		log.Warn().Msg("simulator: policy chose an action outside the legal set, forcing the first legal action")
		action = legal[0]
	}

	m.log = append(m.log, DecisionRecord{Side: m.state.ActiveSide, Action: action})
	// Resolve itself advances Phase to Touchdown/HalfTime/GameOver via its
	// own post-action checks; the loop in Run reacts to whatever Phase it
	// leaves behind.
	game.Resolve(m.dice, m.state, action, m.sink)
}

func (m *Match) policyFor(side game.Side) Policy {
	if side == game.Home {
		return m.home
	}
	return m.away
}

// restartDrive resets both sides to their starting formation and kicks
// off again after a score, conceding side receiving the next kickoff.
func (m *Match) restartDrive() {
	scoringSide := m.lastScorer()
	m.state.KickingTeam = scoringSide
	m.setupDrive()
}

func (m *Match) lastScorer() game.Side {
	if m.state.Home.Score > 0 && m.state.Home.Score >= m.state.Away.Score {
		return game.Home
	}
	return game.Away
}

func (m *Match) startSecondHalf() {
	m.state.Half = 2
	m.state.Home.TurnNumber = 0
	m.state.Away.TurnNumber = 0
	m.state.KickingTeam = m.state.KickingTeam.Opponent()
	m.setupDrive()
}

// RunTimed is a convenience wrapper reporting wall-clock duration
// alongside Run's result, used by the bench harness.
func RunTimed(m *Match) (Result, time.Duration) {
	start := time.Now()
	result := m.Run()
	return result, time.Since(start)
}
