package comps

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

type fileEnvelope struct {
	ID     string         `json:"id"`
	Source string         `json:"source"`
	Markup string         `json:"markup"`
	Props  map[string]any `json:"props"`
	Width  int            `json:"width"`
	Height int            `json:"height"`
}

// LoadFile reads a component definition from disk. The file is either a
// JSON envelope (id, source or markup, props, width, height) or bare
// source text. A definition without a declared id takes the file's base
// name, so repeated loads of the same file share one cache slot.
func LoadFile(path string) (*Definition, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	base := filepath.Base(path)
	return load(content, strings.TrimSuffix(base, filepath.Ext(base)))
}

// Load parses definition bytes. Binary payloads are rejected before any
// classification happens; a definition without an id gets a fresh one.
func Load(content []byte) (*Definition, error) {
	return load(content, "")
}

func load(content []byte, fallbackID string) (*Definition, error) {
	mtype := mimetype.Detect(content)
	isText := false
	for t := mtype; t != nil; t = t.Parent() {
		if t.Is("text/plain") {
			isText = true
			break
		}
	}
	if !isText {
		return nil, &FormatError{
			Reason: fmt.Sprintf("binary content (%s) is not a component definition", mtype.String()),
		}
	}

	var env fileEnvelope
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) > 0 && trimmed[0] == '{' && json.Valid(trimmed) {
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, err
		}
	} else {
		env.Source = string(content)
	}

	text := env.Source
	if text == "" {
		text = env.Markup
	}
	if env.ID == "" {
		env.ID = fallbackID
	}
	if env.ID == "" {
		env.ID = uuid.NewString()
	}

	return &Definition{
		ID:          env.ID,
		Text:        text,
		CustomProps: env.Props,
		Width:       env.Width,
		Height:      env.Height,
	}, nil
}
