package game

import (
	"scrimmage/grid"
	"scrimmage/roster"
	"scrimmage/skill"
)

// SetupHalf places both sides' figures for the start of a half, per the
// supplied formation, specialists filled first from the back rank with
// linemen backfilling the line of scrimmage. This is the sole placement
// entry point the core exposes; an earlier variant of this routine that
// ignored which side is kicking was a leftover and is not carried
// forward.
func SetupHalf(m *MatchState, kickingTeam Side, home, away *roster.Roster, formation roster.Formation) {
	m.KickingTeam = kickingTeam
	m.Phase = Setup

	for i := range m.Figures {
		m.Figures[i] = Figure{}
	}

	placeSide(m, Home, home, formation, kickingTeam == Home)
	placeSide(m, Away, away, formation, kickingTeam == Away)

	m.Phase = Kickoff
}

// placeSide instantiates up to 11 figures for side from r's position
// templates, filling slots from the roster's specialist-heaviest templates
// first (so linemen backfill whatever the formation leaves over), at the
// formation offsets mirrored so each side sets up in its own half.
// isKicking is not used.
func placeSide(m *MatchState, side Side, r *roster.Roster, formation roster.Formation, isKicking bool) {
	baseID := 1
	if side == Away {
		baseID = 12
	}

	fill := buildFillOrder(r)

	losX := grid.Width / 2
	if side == Away {
		losX = grid.Width/2 - 1
	}
	mirror := -1
	if side == Away {
		mirror = 1
	}
	midY := grid.Height / 2

	for slot := 0; slot < len(formation.Offsets) && slot < 11; slot++ {
		offset := formation.Offsets[slot]
		tmpl := fill[slot%len(fill)]

		id := baseID + slot
		cell := grid.Cell{X: losX + mirror*offset.DX, Y: midY + offset.DY}
		cell = clampOnPitch(cell)

		skills := tmpl.Skills
		if offset.WantsKick {
			skills = skills.With(skill.Kick)
		}

		m.Figures[id] = Figure{
			ID:                id,
			Side:              side,
			Position:          cell,
			Move:              tmpl.Move,
			Strength:          tmpl.Strength,
			Agility:           tmpl.Agility,
			Armour:            tmpl.Armour,
			Skills:            skills,
			MovementRemaining: tmpl.Move,
			State:             Standing,
		}
	}

	m.Team(side).HasApothecary = r.HasApothecary
	m.Team(side).Rerolls = r.StartingRerolls
}

// buildFillOrder orders a roster's position templates specialists-first
// (lower Max count implies more specialised), linemen last so they
// backfill whatever slots specialists didn't take.
func buildFillOrder(r *roster.Roster) []roster.PositionTemplate {
	out := make([]roster.PositionTemplate, len(r.Positions))
	copy(out, r.Positions)
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].Max < out[i].Max {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out
}
