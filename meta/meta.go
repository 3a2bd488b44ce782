// Package meta holds named tuning constants for the search and
// simulation loop, the way the teacher's own meta package holds its
// MCTS defaults as plain package-level constants.
package meta

// GoRoutines is the default number of parallel search workers.
const GoRoutines = 8

// Episodes is the default number of MCTS simulations run per decision.
const Episodes = 150

// Cutoff bounds how many primitive actions a rollout plays before
// falling back to the static evaluation instead of continuing to a real
// match conclusion.
const Cutoff = 100

// MaxDecisions bounds how many primitive actions the simulator will
// resolve in a single match before forcing it to a stop, a hard
// runaway backstop independent of the per-half turn limit.
const MaxDecisions = 5000

// MacroEpisodes is the default episode budget for the macro-action
// search layer, smaller than the primitive budget since each macro
// simulation itself expands into several primitive ones.
const MacroEpisodes = 50
