package parser

import (
	"fmt"
	"strconv"
	"strings"

	"showdown-tracker/game"
)

// Decode builds the typed event for a tokenized line. Tags outside the
// supported set yield ErrUnrecognizedTag.
func Decode(line Line) (Event, error) {
	switch tag := Tag(line.Tag); tag {
	case TagTurn:
		n, _ := strconv.Atoi(line.Field(2))
		return TurnStart{Number: n}, nil
	case TagSwitch, TagDrag, TagReplace:
		return decodeSwitch(tag, line)
	case TagMove:
		return decodeMove(line)
	case TagDamage:
		id, hp, err := decodeCondition(line)
		if err != nil {
			return nil, err
		}
		return Damage{Ident: id, HP: hp, Source: sourceOf(line.Fields[4:])}, nil
	case TagHeal:
		id, hp, err := decodeCondition(line)
		if err != nil {
			return nil, err
		}
		return Heal{Ident: id, HP: hp, Source: sourceOf(line.Fields[4:])}, nil
	case TagFaint:
		id, err := ParseIdent(line.Field(2))
		if err != nil {
			return nil, err
		}
		return Faint{Ident: id}, nil
	case TagAbility:
		id, payload, err := decodePayload(line)
		if err != nil {
			return nil, err
		}
		return AbilityReveal{Ident: id, Ability: payload}, nil
	case TagStatus:
		id, payload, err := decodePayload(line)
		if err != nil {
			return nil, err
		}
		return StatusApplied{Ident: id, Status: game.Status(payload)}, nil
	case TagCureStatus:
		id, payload, err := decodePayload(line)
		if err != nil {
			return nil, err
		}
		return StatusCured{Ident: id, Status: game.Status(payload)}, nil
	case TagBoost, TagUnboost:
		return decodeBoost(tag, line)
	case TagWeather:
		weather := line.Field(2)
		if weather == "" {
			return nil, fmt.Errorf("%w: weather without a name", ErrMalformedLine)
		}
		return WeatherChange{Weather: weather, Upkeep: hasMarker(line.Fields[3:], upkeepMarker)}, nil
	case TagPlayer:
		side, ok := game.ParseSide(line.Field(2))
		if !ok {
			return nil, fmt.Errorf("%w: player side %q", ErrMalformedIdentifier, line.Field(2))
		}
		return PlayerJoin{Side: side, Name: line.Field(3)}, nil
	case TagWin:
		return Win{Winner: line.Field(2)}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnrecognizedTag, line.Tag)
	}
}

func decodeSwitch(tag Tag, line Line) (Event, error) {
	if len(line.Fields) < 5 {
		return nil, fmt.Errorf("%w: %s needs ident, details and hp", ErrMalformedDetails, tag)
	}
	id, err := ParseIdent(line.Field(2))
	if err != nil {
		return nil, err
	}
	details, err := ParseDetails(line.Field(3))
	if err != nil {
		return nil, err
	}
	hp, err := parseHP(line.Field(4))
	if err != nil || hp.Max == 0 {
		return nil, fmt.Errorf("%w: hp %q is not current/max", ErrMalformedDetails, line.Field(4))
	}
	return Switch{Kind: tag, Ident: id, Details: details, HP: hp}, nil
}

func decodeMove(line Line) (Event, error) {
	if len(line.Fields) < 4 {
		return nil, fmt.Errorf("%w: move without a name", ErrMalformedLine)
	}
	actor, err := ParseIdent(line.Field(2))
	if err != nil {
		return nil, err
	}
	ev := Move{Actor: actor, Move: line.Field(3)}
	if raw := line.Field(4); raw != "" {
		target, err := ParseIdent(raw)
		if err != nil {
			return nil, err
		}
		ev.Target = &target
	}
	ev.Missed = line.Field(5) == missMarker
	return ev, nil
}

func decodeCondition(line Line) (Ident, HP, error) {
	id, err := ParseIdent(line.Field(2))
	if err != nil {
		return Ident{}, HP{}, err
	}
	hp, err := parseHP(line.Field(3))
	if err != nil {
		return Ident{}, HP{}, err
	}
	return id, hp, nil
}

func decodePayload(line Line) (Ident, string, error) {
	id, err := ParseIdent(line.Field(2))
	if err != nil {
		return Ident{}, "", err
	}
	payload := line.Field(3)
	if payload == "" {
		return Ident{}, "", fmt.Errorf("%w: %s without a value", ErrMalformedLine, line.Tag)
	}
	return id, payload, nil
}

func decodeBoost(tag Tag, line Line) (Event, error) {
	id, err := ParseIdent(line.Field(2))
	if err != nil {
		return nil, err
	}
	stat := line.Field(3)
	stages, err := strconv.Atoi(line.Field(4))
	if stat == "" || err != nil {
		return nil, fmt.Errorf("%w: %s needs a stat and a stage count", ErrMalformedLine, tag)
	}
	if tag == TagUnboost {
		stages = -stages
	}
	return Boost{Kind: tag, Ident: id, Stat: stat, Stages: stages}, nil
}

// ParseDetails reads "Species, L50, M". Parts after the species are matched
// by shape; level defaults to 100 since the protocol omits L100.
func ParseDetails(field string) (Details, error) {
	parts := strings.Split(field, ",")
	if len(parts) < 2 {
		return Details{}, fmt.Errorf("%w: %q has fewer than 2 parts", ErrMalformedDetails, field)
	}
	d := Details{Species: strings.TrimSpace(parts[0]), Level: defaultLevel}
	if d.Species == "" {
		return Details{}, fmt.Errorf("%w: %q has no species", ErrMalformedDetails, field)
	}
	for _, p := range parts[1:] {
		p = strings.TrimSpace(p)
		if g, ok := game.ParseGender(p); ok {
			d.Gender = g
			continue
		}
		if lvl, ok := strings.CutPrefix(p, "L"); ok {
			n, err := strconv.Atoi(lvl)
			if err != nil || n < 1 {
				return Details{}, fmt.Errorf("%w: level %q", ErrMalformedDetails, p)
			}
			d.Level = n
		}
	}
	return d, nil
}

// parseHP reads "current/max", "current/max status" or a faint sentinel
// ("fnt", "0 fnt").
func parseHP(field string) (HP, error) {
	fields := strings.Fields(field)
	if len(fields) == 0 {
		return HP{}, fmt.Errorf("%w: empty", ErrUnparseableHP)
	}
	cur, maxHP, ok := strings.Cut(fields[0], "/")
	if !ok {
		if isFaintSentinel(fields) {
			return HP{Fainted: true}, nil
		}
		return HP{}, fmt.Errorf("%w: %q", ErrUnparseableHP, field)
	}
	var hp HP
	var err error
	if hp.Current, err = strconv.Atoi(cur); err != nil {
		return HP{}, fmt.Errorf("%w: %q", ErrUnparseableHP, field)
	}
	if hp.Max, err = strconv.Atoi(maxHP); err != nil || hp.Max <= 0 {
		return HP{}, fmt.Errorf("%w: %q", ErrUnparseableHP, field)
	}
	if len(fields) > 1 {
		if fields[1] == faintSentinel {
			hp.Current = 0
			hp.Fainted = true
		} else {
			hp.Status = game.Status(fields[1])
		}
	}
	return hp, nil
}

func isFaintSentinel(fields []string) bool {
	switch len(fields) {
	case 1:
		return fields[0] == faintSentinel
	case 2:
		return fields[0] == "0" && fields[1] == faintSentinel
	}
	return false
}
