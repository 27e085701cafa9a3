package parser

import (
	"fmt"

	"showdown-tracker/game"
)

// Apply folds one event into the battle state and returns its narration, or
// "" for events that have none. On error the state is left unchanged.
func Apply(state *game.BattleState, ev Event) (string, error) {
	switch e := ev.(type) {
	case TurnStart:
		state.RecordTurnStart()
		return "", nil
	case Switch:
		return applySwitch(state, e)
	case Move:
		return applyMove(state, e)
	case Damage:
		delta, err := applyCondition(state, e.Ident, e.HP)
		if err != nil {
			return "", err
		}
		if e.Source != "" {
			return narrate("%s took %d damage from %s.", e.Ident.Species, delta, e.Source), nil
		}
		return narrate("%s took %d damage.", e.Ident.Species, delta), nil
	case Heal:
		delta, err := applyCondition(state, e.Ident, e.HP)
		if err != nil {
			return "", err
		}
		if e.Source != "" {
			return narrate("%s healed %d HP from %s.", e.Ident.Species, delta, e.Source), nil
		}
		return narrate("%s healed %d HP.", e.Ident.Species, delta), nil
	case Faint:
		c, err := state.Require(e.Ident.Key())
		if err != nil {
			return "", err
		}
		c.Faint()
		return narrate("%s fainted.", c.Species), nil
	case AbilityReveal:
		c, err := state.Require(e.Ident.Key())
		if err != nil {
			return "", err
		}
		c.SetAbility(e.Ability)
		return narrate("%s's ability is %s.", c.Species, e.Ability), nil
	case StatusApplied:
		c, err := state.Require(e.Ident.Key())
		if err != nil {
			return "", err
		}
		c.SetStatus(e.Status)
		return narrate("%s is now %s.", c.Species, e.Status), nil
	case StatusCured:
		c, err := state.Require(e.Ident.Key())
		if err != nil {
			return "", err
		}
		c.CureStatus()
		return narrate("%s was cured of %s.", c.Species, e.Status), nil
	case Boost:
		c, err := state.Require(e.Ident.Key())
		if err != nil {
			return "", err
		}
		stage := c.Boost(e.Stat, e.Stages)
		return narrate("%s's %s changed by %+d (now %+d).", c.Species, e.Stat, e.Stages, stage), nil
	case WeatherChange:
		state.SetWeather(e.Weather)
		if e.Upkeep {
			return "", nil
		}
		return narrate("Weather is %s.", e.Weather), nil
	case PlayerJoin:
		if e.Name == "" {
			return "", nil
		}
		state.SetPlayer(e.Side, e.Name)
		return narrate("%s joined as %s.", e.Name, e.Side), nil
	case Win:
		state.SetWinner(e.Winner)
		return narrate("%s won the battle!", e.Winner), nil
	}
	return "", fmt.Errorf("%w: %T", ErrUnrecognizedTag, ev)
}

func applySwitch(state *game.BattleState, e Switch) (string, error) {
	key := e.Ident.Key()
	c, _, err := state.GetOrCreate(key, &game.CreatureDetails{
		Level:  e.Details.Level,
		Gender: e.Details.Gender,
		HP:     e.HP.Current,
		MaxHP:  e.HP.Max,
	})
	if err != nil {
		return "", err
	}
	c.SetStatus(e.HP.Status)
	state.SetActive(e.Ident.Slot, key)
	return narrate("%s switches in.", c.Species), nil
}

func applyMove(state *game.BattleState, e Move) (string, error) {
	actor, err := state.Require(e.Actor.Key())
	if err != nil {
		return "", err
	}
	actor.AddMove(e.Move)
	if e.Target == nil {
		return narrate("%s used %s.", actor.Species, e.Move), nil
	}
	// An unseen target is named but not created: there is nothing to build it from.
	target := e.Target.String()
	if c, ok := state.LookupCreature(e.Target.Key()); ok {
		target = c.Species
	}
	if e.Missed {
		return narrate("%s used %s on %s, but it missed!", actor.Species, e.Move, target), nil
	}
	return narrate("%s used %s on %s.", actor.Species, e.Move, target), nil
}

func applyCondition(state *game.BattleState, id Ident, hp HP) (int, error) {
	c, err := state.Require(id.Key())
	if err != nil {
		return 0, err
	}
	if hp.Status != game.StatusNone {
		c.SetStatus(hp.Status)
	}
	return c.UpdateHP(hp.Current, hp.Max), nil
}
