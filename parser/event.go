package parser

import (
	"fmt"
	"strconv"
	"strings"

	"showdown-tracker/game"
)

type Tag string

const (
	TagTurn       Tag = "turn"
	TagSwitch     Tag = "switch"
	TagDrag       Tag = "drag"
	TagReplace    Tag = "replace"
	TagMove       Tag = "move"
	TagDamage     Tag = "-damage"
	TagHeal       Tag = "-heal"
	TagFaint      Tag = "faint"
	TagAbility    Tag = "-ability"
	TagStatus     Tag = "-status"
	TagCureStatus Tag = "-curestatus"
	TagBoost      Tag = "-boost"
	TagUnboost    Tag = "-unboost"
	TagWeather    Tag = "-weather"
	TagPlayer     Tag = "player"
	TagWin        Tag = "win"
)

const (
	missMarker    = "[miss]"
	upkeepMarker  = "[upkeep]"
	fromPrefix    = "[from]"
	faintSentinel = "fnt"
	defaultLevel  = 100
)

// Event is one decoded log occurrence. The set of implementations is closed.
type Event interface {
	Tag() Tag
	event()
}

type TurnStart struct {
	// Number is the turn number the log reports; 0 when absent.
	Number int
}

// Details is the comma separated "species, Lnn, gender" field of a switch.
type Details struct {
	Species string
	Level   int
	Gender  game.Gender
}

func (d Details) String() string {
	s := fmt.Sprintf("%s, L%d", d.Species, d.Level)
	if code := d.Gender.Code(); code != "" {
		s += ", " + code
	}
	return s
}

// HP is a "current/max [status]" condition field.
type HP struct {
	Current int
	Max     int
	Status  game.Status
	Fainted bool
}

func (h HP) String() string {
	if h.Max == 0 {
		if h.Fainted {
			return "0 " + faintSentinel
		}
		return strconv.Itoa(h.Current)
	}
	s := fmt.Sprintf("%d/%d", h.Current, h.Max)
	switch {
	case h.Fainted:
		s += " " + faintSentinel
	case h.Status != game.StatusNone:
		s += " " + string(h.Status)
	}
	return s
}

type Switch struct {
	Kind    Tag
	Ident   Ident
	Details Details
	HP      HP
}

type Move struct {
	Actor  Ident
	Move   string
	Target *Ident
	Missed bool
}

type Damage struct {
	Ident  Ident
	HP     HP
	Source string
}

type Heal struct {
	Ident  Ident
	HP     HP
	Source string
}

type Faint struct {
	Ident Ident
}

type AbilityReveal struct {
	Ident   Ident
	Ability string
}

type StatusApplied struct {
	Ident  Ident
	Status game.Status
}

type StatusCured struct {
	Ident  Ident
	Status game.Status
}

// Boost records a stat stage change; Stages is negative for -unboost.
type Boost struct {
	Kind   Tag
	Ident  Ident
	Stat   string
	Stages int
}

type WeatherChange struct {
	Weather string
	Upkeep  bool
}

type PlayerJoin struct {
	Side game.Side
	Name string
}

type Win struct {
	Winner string
}

func (TurnStart) Tag() Tag     { return TagTurn }
func (e Switch) Tag() Tag      { return e.Kind }
func (Move) Tag() Tag          { return TagMove }
func (Damage) Tag() Tag        { return TagDamage }
func (Heal) Tag() Tag          { return TagHeal }
func (Faint) Tag() Tag         { return TagFaint }
func (AbilityReveal) Tag() Tag { return TagAbility }
func (StatusApplied) Tag() Tag { return TagStatus }
func (StatusCured) Tag() Tag   { return TagCureStatus }
func (e Boost) Tag() Tag       { return e.Kind }
func (WeatherChange) Tag() Tag { return TagWeather }
func (PlayerJoin) Tag() Tag    { return TagPlayer }
func (Win) Tag() Tag           { return TagWin }

func (TurnStart) event()     {}
func (Switch) event()        {}
func (Move) event()          {}
func (Damage) event()        {}
func (Heal) event()          {}
func (Faint) event()         {}
func (AbilityReveal) event() {}
func (StatusApplied) event() {}
func (StatusCured) event()   {}
func (Boost) event()         {}
func (WeatherChange) event() {}
func (PlayerJoin) event()    {}
func (Win) event()           {}

func hasMarker(fields []string, marker string) bool {
	for _, f := range fields {
		if f == marker {
			return true
		}
	}
	return false
}

func sourceOf(fields []string) string {
	for _, f := range fields {
		if rest, ok := strings.CutPrefix(f, fromPrefix); ok {
			return strings.TrimSpace(rest)
		}
	}
	return ""
}
