package parser

import (
	"fmt"
	"sort"
	"strings"

	"showdown-tracker/game"
)

// RenderBattleState returns a plain text summary of the battle, sorted so the
// output is stable.
func RenderBattleState(state *game.BattleState) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Turn: %d\n", state.Turn)
	fmt.Fprintf(&sb, "Weather: %s\n", state.Weather)
	if state.Winner != "" {
		fmt.Fprintf(&sb, "Winner: %s\n", state.Winner)
	}

	for _, side := range []game.Side{game.SideOne, game.SideTwo} {
		team := state.Teams[side]
		if team == nil {
			continue
		}
		name := team.Player
		if name == "" {
			name = "?"
		}
		fmt.Fprintf(&sb, "\n%s (%s)\n", side, name)

		active := activeSpecies(state, side)
		species := make([]string, 0, len(team.Roster))
		for s := range team.Roster {
			species = append(species, s)
		}
		sort.Strings(species)

		for _, s := range species {
			sb.WriteString(renderCreature(team.Roster[s], active[s]))
		}
	}
	return sb.String()
}

func activeSpecies(state *game.BattleState, side game.Side) map[string]bool {
	active := make(map[string]bool)
	for slot, key := range state.Active {
		if slot.Side() == side {
			active[key.Species] = true
		}
	}
	return active
}

func renderCreature(c *game.Creature, active bool) string {
	var sb strings.Builder
	marker := " "
	if active {
		marker = "*"
	}
	fmt.Fprintf(&sb, "%s %s L%d %d/%d", marker, c.Species, c.Level, c.HP, c.MaxHP)
	if c.Fainted {
		sb.WriteString(" fainted")
	}
	if c.Status != game.StatusNone {
		fmt.Fprintf(&sb, " [%s]", c.Status)
	}
	if c.Ability != "" {
		fmt.Fprintf(&sb, " ability:%s", c.Ability)
	}
	sb.WriteString("\n")

	if len(c.Boosts) > 0 {
		stats := make([]string, 0, len(c.Boosts))
		for stat := range c.Boosts {
			stats = append(stats, stat)
		}
		sort.Strings(stats)
		boosts := make([]string, 0, len(stats))
		for _, stat := range stats {
			if v := c.Boosts[stat]; v != 0 {
				boosts = append(boosts, fmt.Sprintf("%+d %s", v, stat))
			}
		}
		if len(boosts) > 0 {
			sb.WriteString("    boosts: " + strings.Join(boosts, ", ") + "\n")
		}
	}
	if moves := c.KnownMoves(); len(moves) > 0 {
		sb.WriteString("    moves: " + strings.Join(moves, ", ") + "\n")
	}
	return sb.String()
}
