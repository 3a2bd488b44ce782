package macro

import (
	"scrimmage/feature"
	"scrimmage/game"
	"scrimmage/grid"
)

// ExtractFeatures builds a macro's feature vector in the same slot
// count as feature.ActionSize, so a policy network trained on primitive
// action features can score macros with the same weights — the
// original engine's stated reason for sizing extractMacroFeatures to
// NUM_ACTION_FEATURES.
//
//	0: macro-type bucket
//	1: primary figure distance to its target cell/figure
//	2: primary figure's end-zone-distance delta this macro would cause
//	3: needs-dodge flag (primary figure starts in an enemy tacklezone)
//	4: already-blitzed-or-fouled-this-turn flag for the team
//	5: strength differential, if the macro has a figure target
//	6: reserved
//	7-14: reserved
func ExtractFeatures(m *game.MatchState, mac Macro) [feature.ActionSize]float32 {
	var v [feature.ActionSize]float32

	v[0] = float32(mac.Type) / float32(Count)

	figure := m.Figure(mac.FigureID)
	if figure == nil {
		return v
	}

	var target grid.Cell
	switch {
	case mac.TargetID != noFigure:
		if t := m.Figure(mac.TargetID); t != nil {
			target = t.Position
		} else {
			target = grid.Off
		}
	default:
		target = mac.TargetCell
	}

	if !target.IsOff() {
		v[1] = clampUnit(float32(grid.Chebyshev(figure.Position, target)) / float32(grid.Width))
	}

	before := distToEndzone(figure.Position, figure.Side)
	after := before
	if !target.IsOff() {
		after = distToEndzone(target, figure.Side)
	}
	v[2] = clampUnit(float32(before-after) / float32(grid.Width))

	if game.TacklezoneCount(&m.Figures, figure.Position, figure.Side, figure.ID) > 0 {
		v[3] = 1
	}

	team := m.Team(figure.Side)
	if team.BlitzUsed || team.FoulUsed {
		v[4] = 1
	}

	if mac.TargetID != noFigure {
		if def := m.Figure(mac.TargetID); def != nil {
			v[5] = clampUnit(float32(figure.Strength-def.Strength) / 5)
		}
	}

	return v
}

func clampUnit(f float32) float32 {
	if f > 1 {
		return 1
	}
	if f < -1 {
		return -1
	}
	return f
}
