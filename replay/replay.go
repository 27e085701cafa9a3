package replay

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// Replay is the subset of a saved Showdown replay file the tracker reads.
type Replay struct {
	ID         string   `json:"id"`
	Format     string   `json:"format"`
	Players    []string `json:"players"`
	Log        string   `json:"log"`
	UploadTime int64    `json:"uploadtime"`
}

// Load reads a replay from path. Files holding a JSON replay object are
// unwrapped; anything else is taken as the raw battle log.
func Load(path string) (*Replay, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("reading replay %s: %w", path, err)
	}
	return r, nil
}

func Decode(r io.Reader) (*Replay, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return &Replay{Log: string(raw)}, nil
	}

	var rep Replay
	if err := json.Unmarshal(trimmed, &rep); err != nil {
		return nil, fmt.Errorf("decoding replay json: %w", err)
	}
	if rep.Log == "" {
		return nil, errors.New("replay json has no log")
	}
	return &rep, nil
}
