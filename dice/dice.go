// Package dice provides the abstract dice source consumed by every
// sub-resolver, plus the two concrete implementations the core ships:
// a seeded PRNG source for production and a scripted source for tests.
package dice

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// BlockFace names the six faces of the asymmetric block die.
type BlockFace int

const (
	AttackerDown BlockFace = iota
	BothDown
	Pushed
	DefenderStumbles
	DefenderDown
)

func (f BlockFace) String() string {
	switch f {
	case AttackerDown:
		return "attacker_down"
	case BothDown:
		return "both_down"
	case Pushed:
		return "pushed"
	case DefenderStumbles:
		return "defender_stumbles"
	case DefenderDown:
		return "defender_down"
	default:
		return "unknown"
	}
}

// blockFaces maps a d6 roll (1-indexed) to its named face: 1→attacker_down,
// 2→both_down, 3|4→pushed, 5→defender_stumbles, 6→defender_down.
var blockFaces = [6]BlockFace{AttackerDown, BothDown, Pushed, Pushed, DefenderStumbles, DefenderDown}

// Source is the dice interface every sub-resolver depends on. Implementors
// never need to be goroutine-safe: each search worker and each simulated
// match owns exactly one Source.
type Source interface {
	D6() int
	D8() int
	D2D6() int
	BlockDie() BlockFace
}

// Seeded is the production dice source, backed by a seeded PRNG so that a
// fixed seed reproduces a bit-identical trajectory.
type Seeded struct {
	rng *rand.Rand
}

func NewSeeded(seed uint64) *Seeded {
	return &Seeded{rng: rand.New(rand.NewSource(seed))}
}

func (s *Seeded) D6() int {
	return s.rng.Intn(6) + 1
}

func (s *Seeded) D8() int {
	return s.rng.Intn(8) + 1
}

func (s *Seeded) D2D6() int {
	return s.D6() + s.D6()
}

func (s *Seeded) BlockDie() BlockFace {
	return blockFaces[s.rng.Intn(6)]
}

// Scripted is the test dice source: a fixed queue of d6-scale rolls
// consumed in order. Drawing past the end of the queue is a hard failure —
// per the error-handling design, dice exhaustion is always a programming
// error in a test, never a recoverable condition.
type Scripted struct {
	rolls []int
	index int
}

func NewScripted(rolls ...int) *Scripted {
	return &Scripted{rolls: rolls}
}

func (s *Scripted) next() int {
	if s.index >= len(s.rolls) {
		panic(fmt.Sprintf("dice: scripted roller exhausted after %d rolls", len(s.rolls)))
	}
	v := s.rolls[s.index]
	s.index++
	return v
}

func (s *Scripted) D6() int {
	return s.next()
}

func (s *Scripted) D8() int {
	return s.next()
}

func (s *Scripted) D2D6() int {
	return s.next() + s.next()
}

// BlockDie interprets the next scripted value either as a raw 1-6 d6 roll
// (translated through the standard face table) or, if it falls outside
// 1-6, as a direct BlockFace ordinal — scenarios in the testable-properties
// section script faces by name (e.g. "defender_down") rather than by raw
// roll, so both forms are accepted.
func (s *Scripted) BlockDie() BlockFace {
	v := s.next()
	if v >= 1 && v <= 6 {
		return blockFaces[v-1]
	}
	face := BlockFace(v - 100)
	if face < AttackerDown || face > DefenderDown {
		panic(fmt.Sprintf("dice: scripted block die value %d is not a valid face", v))
	}
	return face
}

// Face encodes a named block face as a scripted roll value accepted by
// Scripted.BlockDie, for tests that script dice by face name.
func Face(f BlockFace) int {
	return int(f) + 100
}
