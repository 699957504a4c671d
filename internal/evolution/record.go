// Package evolution produces the flavour content shown when a run crosses a
// score milestone: a sector name, a short description, a mutation label and
// a new theme colour.
//
// Content comes from a Generator. Gemini is the primary source; static and
// offline generators exist for play without network access and for tests.
// Whatever the source, callers never see a failure: Fetch substitutes the
// fixed fallback record.
package evolution

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/neon-runner/internal/core"
)

var (
	// ErrInvalidRecord is wrapped by every record validation failure.
	ErrInvalidRecord = errors.New("evolution: invalid record")
	// ErrNoAPIKey is returned when the Gemini provider has no API key.
	ErrNoAPIKey = errors.New("evolution: no API key")
	// ErrUnavailable is returned by the offline generator.
	ErrUnavailable = errors.New("evolution: content service unavailable")
)

// Record is one evolution event. It is immutable once produced.
type Record struct {
	SectorName     string `json:"sectorName"`
	Description    string `json:"description"`
	MutationEffect string `json:"mutationEffect"`
	ColorTheme     string `json:"colorTheme"` // #RRGGBB
}

// Fallback returns the record shown whenever real content is unavailable.
func Fallback() Record {
	return Record{
		SectorName:     "System Glitch",
		Description:    "Reality destabilizes as the code rewrites itself.",
		MutationEffect: "Chaos Theory",
		ColorTheme:     "#ff00ff",
	}
}

// Validate checks that every field is present and the colour parses.
func (r Record) Validate() error {
	switch {
	case strings.TrimSpace(r.SectorName) == "":
		return fmt.Errorf("%w: missing sectorName", ErrInvalidRecord)
	case strings.TrimSpace(r.Description) == "":
		return fmt.Errorf("%w: missing description", ErrInvalidRecord)
	case strings.TrimSpace(r.MutationEffect) == "":
		return fmt.Errorf("%w: missing mutationEffect", ErrInvalidRecord)
	}
	if _, err := core.ParseHex(r.ColorTheme); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return nil
}

// Theme returns the record's colour, or the glitch colour if it does not
// parse.
func (r Record) Theme() core.Color {
	c, err := core.ParseHex(r.ColorTheme)
	if err != nil {
		return core.ColorGlitch
	}
	return c
}

// ParseRecord decodes a JSON object into a validated record.
func ParseRecord(text string) (Record, error) {
	var r Record
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &r); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	r.SectorName = strings.TrimSpace(r.SectorName)
	r.Description = strings.TrimSpace(r.Description)
	r.MutationEffect = strings.TrimSpace(r.MutationEffect)
	r.ColorTheme = strings.ToLower(strings.TrimSpace(r.ColorTheme))
	if err := r.Validate(); err != nil {
		return Record{}, err
	}
	return r, nil
}
