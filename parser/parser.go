package parser

import (
	"errors"
	"log/slog"
	"strings"

	"showdown-tracker/game"
)

// Observer is notified of every line the parser handles.
type Observer interface {
	LineProcessed()
	EventApplied(tag Tag)
	LineSkipped(tag string, reason string)
}

// Diagnostic records a line whose event could not be applied.
type Diagnostic struct {
	LineNo int
	Raw    string
	Tag    string
	Err    error
}

type Option func(*Parser)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) { p.logger = logger }
}

func WithObserver(o Observer) Option {
	return func(p *Parser) { p.observer = o }
}

// WithNarrationSink receives each narration as soon as it is produced.
func WithNarrationSink(sink func(Narration)) Option {
	return func(p *Parser) { p.sink = sink }
}

func WithState(state *game.BattleState) Option {
	return func(p *Parser) { p.state = state }
}

// Parser feeds log lines through tokenize, decode and apply, one at a time.
// A bad line never stops the run; it is recorded as a Diagnostic.
type Parser struct {
	state       *game.BattleState
	logger      *slog.Logger
	observer    Observer
	sink        func(Narration)
	lineNo      int
	narration   []Narration
	diagnostics []Diagnostic
}

func New(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	if p.state == nil {
		p.state = game.NewBattleState()
	}
	if p.logger == nil {
		p.logger = slog.New(slog.DiscardHandler)
	}
	p.logger = p.logger.With("battle_id", p.state.ID)
	return p
}

// ParseLog parses a whole log text with a fresh parser.
func ParseLog(logText string, opts ...Option) *Parser {
	p := New(opts...)
	p.Parse(logText)
	return p
}

func (p *Parser) Parse(logText string) {
	for _, line := range strings.Split(logText, "\n") {
		p.ProcessLine(line)
	}
}

// ProcessLine handles one raw line. The returned error is informational:
// it is nil for applied and ignored lines, and has already been recorded.
func (p *Parser) ProcessLine(raw string) error {
	p.lineNo++
	if p.observer != nil {
		p.observer.LineProcessed()
	}

	line, ok := Tokenize(raw)
	if !ok {
		return nil
	}

	ev, err := Decode(line)
	if errors.Is(err, ErrUnrecognizedTag) {
		p.logger.Debug("ignoring line", "line", p.lineNo, "tag", line.Tag)
		p.skipped(line.Tag, err)
		return nil
	}
	if err != nil {
		return p.fail(raw, line.Tag, err)
	}

	text, err := Apply(p.state, ev)
	if err != nil {
		return p.fail(raw, line.Tag, err)
	}
	if p.observer != nil {
		p.observer.EventApplied(ev.Tag())
	}
	if text != "" {
		n := Narration{Turn: p.state.Turn, Text: text}
		p.narration = append(p.narration, n)
		if p.sink != nil {
			p.sink(n)
		}
	}
	return nil
}

func (p *Parser) fail(raw, tag string, err error) error {
	p.diagnostics = append(p.diagnostics, Diagnostic{LineNo: p.lineNo, Raw: raw, Tag: tag, Err: err})
	p.logger.Warn("skipping line", "line", p.lineNo, "tag", tag, "error", err)
	p.skipped(tag, err)
	return err
}

func (p *Parser) skipped(tag string, err error) {
	if p.observer != nil {
		p.observer.LineSkipped(tag, Reason(err))
	}
}

func (p *Parser) State() *game.BattleState { return p.state }

func (p *Parser) Narration() []Narration { return p.narration }

func (p *Parser) Diagnostics() []Diagnostic { return p.diagnostics }

// Finished reports whether the log announced a winner.
func (p *Parser) Finished() bool { return p.state.Winner != "" }
