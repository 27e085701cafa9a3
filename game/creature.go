package game

import (
	"fmt"
	"maps"
	"sort"
)

type Gender uint8

const (
	GenderUnknown Gender = iota
	GenderMale
	GenderFemale
)

// Code returns the protocol letter for the gender, empty when unknown.
func (g Gender) Code() string {
	switch g {
	case GenderMale:
		return "M"
	case GenderFemale:
		return "F"
	}
	return ""
}

func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	}
	return "unknown"
}

func ParseGender(code string) (Gender, bool) {
	switch code {
	case "M":
		return GenderMale, true
	case "F":
		return GenderFemale, true
	}
	return GenderUnknown, false
}

// Status is a non-volatile status condition code as it appears in the log.
// Codes outside the constants below are kept verbatim.
type Status string

const (
	StatusNone      Status = ""
	StatusBurn      Status = "brn"
	StatusParalysis Status = "par"
	StatusSleep     Status = "slp"
	StatusFreeze    Status = "frz"
	StatusPoison    Status = "psn"
	StatusToxic     Status = "tox"
)

type CreatureDetails struct {
	Level  int
	Gender Gender
	HP     int
	MaxHP  int
}

type Creature struct {
	Species string
	Level   int
	Gender  Gender
	HP      int
	MaxHP   int
	Ability string
	Status  Status
	Fainted bool
	Boosts  map[string]int

	moves map[string]struct{}
}

func newCreature(species string, d CreatureDetails) *Creature {
	c := &Creature{
		Species: species,
		Level:   d.Level,
		Gender:  d.Gender,
		MaxHP:   d.MaxHP,
		moves:   make(map[string]struct{}),
	}
	c.HP = c.clampHP(d.HP)
	return c
}

func (c *Creature) clone() *Creature {
	out := *c
	out.Boosts = maps.Clone(c.Boosts)
	out.moves = maps.Clone(c.moves)
	return &out
}

func (c *Creature) clampHP(hp int) int {
	if hp < 0 {
		return 0
	}
	if c.MaxHP > 0 && hp > c.MaxHP {
		return c.MaxHP
	}
	return hp
}

// UpdateHP sets the current HP and returns the absolute change from the HP
// held before the line. A positive maxHP rescales the creature first, e.g.
// when a log switches from percentages to exact values.
func (c *Creature) UpdateHP(hp, maxHP int) int {
	old := c.HP
	if maxHP > 0 {
		c.MaxHP = maxHP
	}
	c.HP = c.clampHP(hp)
	diff := old - c.HP
	if diff < 0 {
		return -diff
	}
	return diff
}

func (c *Creature) AddMove(move string) {
	if c.moves == nil {
		c.moves = make(map[string]struct{})
	}
	c.moves[move] = struct{}{}
}

func (c *Creature) KnowsMove(move string) bool {
	_, ok := c.moves[move]
	return ok
}

func (c *Creature) KnownMoves() []string {
	moves := make([]string, 0, len(c.moves))
	for m := range c.moves {
		moves = append(moves, m)
	}
	sort.Strings(moves)
	return moves
}

func (c *Creature) SetAbility(ability string) {
	c.Ability = ability
}

func (c *Creature) SetStatus(status Status) {
	c.Status = status
}

// CureStatus clears the status, and reports whether anything was cleared.
func (c *Creature) CureStatus() bool {
	cured := c.Status != StatusNone
	c.Status = StatusNone
	return cured
}

func (c *Creature) Boost(stat string, stages int) int {
	if c.Boosts == nil {
		c.Boosts = make(map[string]int)
	}
	c.Boosts[stat] += stages
	return c.Boosts[stat]
}

// Faint marks the creature fainted. It never reverts.
func (c *Creature) Faint() {
	c.Fainted = true
}

func (c *Creature) String() string {
	return fmt.Sprintf("%s (Lv.%d, HP: %d/%d)", c.Species, c.Level, c.HP, c.MaxHP)
}
