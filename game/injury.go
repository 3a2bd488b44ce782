package game

import (
	"scrimmage/dice"
	"scrimmage/skill"
)

// InjuryResult names the outcome of a resolved injury roll.
type InjuryResult int

const (
	NoBreak InjuryResult = iota
	StunnedResult
	KOResult
	CasualtyResult
)

// ResolveArmour rolls armour against the target figure: 2d6 + modifier
// breaks armour if it exceeds the figure's Armour stat, or meets/exceeds 8
// when the attacker has Claw regardless of the figure's actual armour
// value.
func ResolveArmour(d dice.Source, target *Figure, modifier int, attackerHasClaw bool, sink Sink, from, to int) bool {
	roll := d.D2D6() + modifier
	broken := roll > target.Armour
	if attackerHasClaw && roll >= 8 {
		broken = true
	}
	emit(sink, Event{Kind: ArmourBreak, PrimaryID: target.ID, Roll: roll, Success: broken, From: target.Position, To: target.Position})
	return broken
}

// ResolveInjury rolls the injury table for target once armour has broken,
// applying stunty, decay, thick-skull, and regeneration per their written
// effects. crowdSurf adds +1 and forces at least a KO result, matching the
// "crowd surf" special case.
func ResolveInjury(d dice.Source, target *Figure, modifier int, crowdSurf bool, sink Sink) InjuryResult {
	if target.Has(skill.Stunty) {
		modifier++
	}
	if crowdSurf {
		modifier++
	}

	roll := rollInjury(d, target, modifier)

	result := classifyInjury(roll)
	if crowdSurf && result == StunnedResult {
		result = KOResult
	}

	if result == KOResult && target.Has(skill.ThickSkull) {
		if d.D6() >= 4 {
			result = StunnedResult
		}
	}

	if result == CasualtyResult && target.Has(skill.Regeneration) && !target.Has(skill.Stakes) {
		if d.D6() >= 4 {
			result = KOResult
			emit(sink, Event{Kind: Regeneration, PrimaryID: target.ID, Success: true})
		}
	}

	applyInjuryResult(target, result)
	emit(sink, Event{Kind: InjuryEvent, PrimaryID: target.ID, Roll: roll, Success: result == CasualtyResult})
	if result == CasualtyResult {
		emit(sink, Event{Kind: Casualty, PrimaryID: target.ID, Success: true})
	}
	return result
}

// rollInjury rolls 2d6 (twice, taking the worse, if the target has decay)
// plus modifier.
func rollInjury(d dice.Source, target *Figure, modifier int) int {
	roll := d.D2D6()
	if target.Has(skill.Decay) {
		second := d.D2D6()
		if second > roll {
			roll = second
		}
	}
	return roll + modifier
}

func classifyInjury(roll int) InjuryResult {
	switch {
	case roll <= 7:
		return StunnedResult
	case roll <= 9:
		return KOResult
	default:
		return CasualtyResult
	}
}

func applyInjuryResult(target *Figure, result InjuryResult) {
	switch result {
	case StunnedResult:
		target.State = Stunned
	case KOResult:
		target.State = KO
		target.Position = offPitchSentinel()
	case CasualtyResult:
		target.State = Injured
		target.Position = offPitchSentinel()
	}
}
