package parser

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"showdown-tracker/game"
)

const sampleLog = `|j|☆Ash
|player|p1|Ash|red|1500
|player|p2|Misty|misty|1480
|teamsize|p1|6
|gametype|singles
|start
|switch|p1a: Pikachu|Pikachu, L50, M|100/100
|switch|p2a: Starmie|Starmie, L52|100/100
|turn|1
|move|p2a: Starmie|Surf|p1a: Pikachu
|-damage|p1a: Pikachu|55/100
|move|p1a: Pikachu|Thunderbolt|p2a: Starmie
|-damage|p2a: Starmie|fnt
|faint|p2a: Starmie
|upkeep
|turn|2
|-weather|RainDance
|c|☆Misty|gg
|win|Ash
`

type recordingObserver struct {
	lines   int
	applied map[Tag]int
	skipped map[string]int
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{applied: map[Tag]int{}, skipped: map[string]int{}}
}

func (o *recordingObserver) LineProcessed()                 { o.lines++ }
func (o *recordingObserver) EventApplied(tag Tag)           { o.applied[tag]++ }
func (o *recordingObserver) LineSkipped(_ string, r string) { o.skipped[r]++ }

func TestParseLog(t *testing.T) {
	obs := newRecordingObserver()
	var streamed []Narration
	p := ParseLog(sampleLog, WithObserver(obs), WithNarrationSink(func(n Narration) {
		streamed = append(streamed, n)
	}))
	state := p.State()

	assert.Equal(t, 2, state.Turn)
	assert.Equal(t, "RainDance", state.Weather)
	assert.Equal(t, "Ash", state.Winner)
	assert.True(t, p.Finished())
	assert.Equal(t, "Misty", state.Teams[game.SideTwo].Player)

	starmie, ok := state.LookupCreature(game.Key{Side: game.SideTwo, Species: "Starmie"})
	require.True(t, ok)
	assert.True(t, starmie.Fainted)
	assert.Equal(t, 0, starmie.HP)
	assert.Equal(t, game.GenderUnknown, starmie.Gender)

	pika, ok := state.ActiveCreature("p1a")
	require.True(t, ok)
	assert.Equal(t, 55, pika.HP)
	assert.Equal(t, []string{"Thunderbolt"}, pika.KnownMoves())

	assert.Empty(t, p.Diagnostics())
	assert.Equal(t, p.Narration(), streamed)
	assert.Equal(t, []Narration{
		{Turn: 0, Text: "Ash joined as p1."},
		{Turn: 0, Text: "Misty joined as p2."},
		{Turn: 0, Text: "Pikachu switches in."},
		{Turn: 0, Text: "Starmie switches in."},
		{Turn: 1, Text: "Starmie used Surf on Pikachu."},
		{Turn: 1, Text: "Pikachu took 45 damage."},
		{Turn: 1, Text: "Pikachu used Thunderbolt on Starmie."},
		{Turn: 1, Text: "Starmie took 100 damage."},
		{Turn: 1, Text: "Starmie fainted."},
		{Turn: 2, Text: "Weather is RainDance."},
		{Turn: 2, Text: "Ash won the battle!"},
	}, p.Narration())

	// 19 log lines plus the empty string after the trailing newline.
	assert.Equal(t, 20, obs.lines)
	assert.Equal(t, 2, obs.applied[TagTurn])
	assert.Equal(t, 2, obs.applied[TagDamage])
	assert.Equal(t, 6, obs.skipped["unrecognized_tag"])
}

func TestScenarios(t *testing.T) {
	p := New()
	state := p.State()

	// A: switch creates and activates the creature.
	require.NoError(t, p.ProcessLine("|switch|p1a: Pikachu|Pikachu, L50, M|100/100"))
	pika, ok := state.ActiveCreature("p1a")
	require.True(t, ok)
	assert.Equal(t, &game.CreatureDetails{Level: 50, Gender: game.GenderMale, HP: 100, MaxHP: 100},
		&game.CreatureDetails{Level: pika.Level, Gender: pika.Gender, HP: pika.HP, MaxHP: pika.MaxHP})

	// B: damage to 40/100 is a delta of 60.
	require.NoError(t, p.ProcessLine("|-damage|p1a: Pikachu|40/100"))
	assert.Equal(t, 40, pika.HP)
	assert.Equal(t, "Pikachu took 60 damage.", last(p).Text)

	// C: faint sentinel drops HP to 0.
	require.NoError(t, p.ProcessLine("|-damage|p1a: Pikachu|fnt"))
	assert.Equal(t, 0, pika.HP)
	assert.Equal(t, "Pikachu took 40 damage.", last(p).Text)

	// D: an unseen target is not fabricated.
	require.NoError(t, p.ProcessLine("|move|p1a: Pikachu|Thunderbolt|p2a: Charizard"))
	_, ok = state.LookupCreature(game.Key{Side: game.SideTwo, Species: "Charizard"})
	assert.False(t, ok)
	assert.True(t, pika.KnowsMove("Thunderbolt"))

	// E: unrecognized tags change nothing.
	snap := state.Clone()
	before := len(p.Narration())
	require.NoError(t, p.ProcessLine("|-fieldstart|move: Electric Terrain|[from] ability: Electric Surge"))
	assert.Equal(t, snap, state)
	assert.Len(t, p.Narration(), before)
	assert.Empty(t, p.Diagnostics())
}

func last(p *Parser) Narration {
	n := p.Narration()
	return n[len(n)-1]
}

func TestTurnCounter(t *testing.T) {
	lines := []struct {
		raw   string
		delta int
	}{
		{"|turn|1", 1},
		{"|switch|p1a: Pikachu|Pikachu, L50, M|100/100", 0},
		{"|-weather|Sandstorm", 0},
		{"", 0},
		{"|upkeep", 0},
		{"|turn|2", 1},
		{"|turn|", 1},
		{"|-damage|p2a: Nobody|10/100", 0},
	}

	p := New()
	for _, l := range lines {
		before := p.State().Turn
		p.ProcessLine(l.raw)
		assert.Equal(t, before+l.delta, p.State().Turn, l.raw)
	}
}

func TestBadLinesAreSkipped(t *testing.T) {
	var logs bytes.Buffer
	obs := newRecordingObserver()
	p := New(
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
		WithObserver(obs),
	)

	p.Parse(`|switch|p1a: Pikachu|Pikachu|100/100
|switch|p1abc: Pikachu|Pikachu, L50|100/100
|-damage|p1a: Pikachu|40/100
|switch|p1a: Pikachu|Pikachu, L50, M|100/100
|-damage|p1a: Pikachu|lots
|-heal|p1a: Pikachu|70/100
|faint|p2a: Ghost`)

	diags := p.Diagnostics()
	require.Len(t, diags, 5)
	assert.ErrorIs(t, diags[0].Err, ErrMalformedDetails)
	assert.ErrorIs(t, diags[1].Err, ErrMalformedIdentifier)
	assert.ErrorIs(t, diags[2].Err, game.ErrUnknownCreature)
	assert.ErrorIs(t, diags[3].Err, ErrUnparseableHP)
	assert.ErrorIs(t, diags[4].Err, game.ErrUnknownCreature)
	assert.Equal(t, 5, diags[3].LineNo)
	assert.Equal(t, "-damage", diags[3].Tag)

	pika, ok := p.State().ActiveCreature("p1a")
	require.True(t, ok)
	assert.Equal(t, 70, pika.HP)
	assert.Equal(t, map[string]int{
		"malformed_details":    1,
		"malformed_identifier": 1,
		"unknown_creature":     2,
		"unparseable_hp":       1,
	}, obs.skipped)
	assert.Contains(t, logs.String(), "skipping line")
	assert.Contains(t, logs.String(), "battle_id="+p.State().ID)
}
