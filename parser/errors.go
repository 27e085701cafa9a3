package parser

import (
	"errors"

	"showdown-tracker/game"
)

var (
	ErrMalformedIdentifier = errors.New("malformed identifier")
	ErrMalformedDetails    = errors.New("malformed details")
	ErrUnparseableHP       = errors.New("unparseable hp")
	ErrMalformedLine       = errors.New("malformed line")
	ErrUnrecognizedTag     = errors.New("unrecognized tag")
)

// Reason maps a per-line error to a short label for logs and metrics.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMalformedIdentifier):
		return "malformed_identifier"
	case errors.Is(err, ErrMalformedDetails):
		return "malformed_details"
	case errors.Is(err, ErrUnparseableHP):
		return "unparseable_hp"
	case errors.Is(err, ErrMalformedLine):
		return "malformed_line"
	case errors.Is(err, ErrUnrecognizedTag):
		return "unrecognized_tag"
	case errors.Is(err, game.ErrUnknownCreature):
		return "unknown_creature"
	case errors.Is(err, game.ErrMissingCreatureDetails):
		return "missing_creature_details"
	}
	return "other"
}
