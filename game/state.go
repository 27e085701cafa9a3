package game

import (
	"errors"
	"fmt"
	"maps"

	"github.com/google/uuid"
)

var (
	ErrMissingCreatureDetails = errors.New("missing creature details")
	ErrUnknownCreature        = errors.New("unknown creature")
)

const DefaultWeather = "none"

type Side uint8

const (
	SideOne Side = iota + 1
	SideTwo
)

func (s Side) String() string {
	switch s {
	case SideOne:
		return "p1"
	case SideTwo:
		return "p2"
	}
	return fmt.Sprintf("side(%d)", uint8(s))
}

// ParseSide maps a two character side code ("p1", "p2") to a Side.
func ParseSide(code string) (Side, bool) {
	switch code {
	case "p1":
		return SideOne, true
	case "p2":
		return SideTwo, true
	}
	return 0, false
}

// Slot is a canonical position identifier such as "p1a".
type Slot string

func (s Slot) Side() Side {
	if len(s) < 2 {
		return 0
	}
	side, _ := ParseSide(string(s[:2]))
	return side
}

// Key identifies a creature for the lifetime of a battle.
type Key struct {
	Side    Side
	Species string
}

func (k Key) String() string {
	return k.Side.String() + ": " + k.Species
}

type Team struct {
	Player string
	Roster map[string]*Creature
}

type BattleState struct {
	ID      string
	Teams   map[Side]*Team
	Active  map[Slot]Key
	Turn    int
	Weather string
	Winner  string
}

func NewBattleState() *BattleState {
	return &BattleState{
		ID: uuid.NewString(),
		Teams: map[Side]*Team{
			SideOne: {Roster: make(map[string]*Creature)},
			SideTwo: {Roster: make(map[string]*Creature)},
		},
		Active:  make(map[Slot]Key),
		Turn:    0,
		Weather: DefaultWeather,
	}
}

// Clone returns a deep copy of the state. Creatures in the copy are distinct
// values, so mutating one side never shows through the other.
func (s *BattleState) Clone() *BattleState {
	out := *s
	out.Active = maps.Clone(s.Active)
	out.Teams = make(map[Side]*Team, len(s.Teams))
	for side, t := range s.Teams {
		roster := make(map[string]*Creature, len(t.Roster))
		for species, c := range t.Roster {
			roster[species] = c.clone()
		}
		out.Teams[side] = &Team{Player: t.Player, Roster: roster}
	}
	return &out
}

func (s *BattleState) team(side Side) *Team {
	t, ok := s.Teams[side]
	if !ok {
		t = &Team{Roster: make(map[string]*Creature)}
		s.Teams[side] = t
	}
	return t
}

// CreateCreature registers a creature from its details. An existing creature
// under the same key is returned untouched.
func (s *BattleState) CreateCreature(key Key, details CreatureDetails) *Creature {
	roster := s.team(key.Side).Roster
	if c, ok := roster[key.Species]; ok {
		return c
	}
	c := newCreature(key.Species, details)
	roster[key.Species] = c
	return c
}

func (s *BattleState) LookupCreature(key Key) (*Creature, bool) {
	t, ok := s.Teams[key.Side]
	if !ok {
		return nil, false
	}
	c, ok := t.Roster[key.Species]
	return c, ok
}

// GetOrCreate returns the creature for key, creating it from details on first
// sight. When the creature already exists and details are given, its HP is
// refreshed and the magnitude of the change is returned.
func (s *BattleState) GetOrCreate(key Key, details *CreatureDetails) (*Creature, int, error) {
	if c, ok := s.LookupCreature(key); ok {
		if details == nil {
			return c, 0, nil
		}
		return c, c.UpdateHP(details.HP, details.MaxHP), nil
	}
	if details == nil {
		return nil, 0, fmt.Errorf("%w: %s", ErrMissingCreatureDetails, key)
	}
	return s.CreateCreature(key, *details), 0, nil
}

// Require is LookupCreature for callers that cannot proceed without the creature.
func (s *BattleState) Require(key Key) (*Creature, error) {
	c, ok := s.LookupCreature(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCreature, key)
	}
	return c, nil
}

func (s *BattleState) SetActive(slot Slot, key Key) {
	s.Active[slot] = key
}

func (s *BattleState) ActiveCreature(slot Slot) (*Creature, bool) {
	key, ok := s.Active[slot]
	if !ok {
		return nil, false
	}
	return s.LookupCreature(key)
}

func (s *BattleState) RecordTurnStart() int {
	s.Turn++
	return s.Turn
}

func (s *BattleState) SetWeather(name string) {
	s.Weather = name
}

func (s *BattleState) SetPlayer(side Side, name string) {
	s.team(side).Player = name
}

func (s *BattleState) SetWinner(name string) {
	s.Winner = name
}
