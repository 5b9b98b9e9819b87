package spellbook

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Spell is one spell entry of a spellbook. Description paragraphs may
// carry the inline tag markup documented in this package; see the tag
// constants in tokens.go.
type Spell struct {
	Name        string      `json:"name"`
	Level       Level       `json:"level"`
	School      School      `json:"school"`
	Ritual      bool        `json:"ritual,omitempty"`
	CastingTime CastingTime `json:"casting_time"`
	Range       Range       `json:"range"`
	Components  Components  `json:"components"`
	Duration    Duration    `json:"duration"`
	Description []string    `json:"description"`
	// Upcast describes casting with a higher-level slot, or how a
	// cantrip improves at higher character levels.
	Upcast string `json:"upcast,omitempty"`
}

// LevelSchoolText returns the level and school line shown under the
// spell name, e.g. "Evocation Cantrip" or "3rd-Level Necromancy (Ritual)".
func (s *Spell) LevelSchoolText() string {
	var text string
	if s.Level == Cantrip {
		text = fmt.Sprintf("%s Cantrip", s.School)
	} else {
		text = fmt.Sprintf("%s %s", s.Level, s.School)
	}
	if s.Ritual {
		text += " (Ritual)"
	}
	return text
}

// UpcastPrefix returns the bold-italic lead-in of the upcast
// paragraph.
func (s *Spell) UpcastPrefix() string {
	if s.Level == Cantrip {
		return "Cantrip Upgrade."
	}
	return "Using a Higher-Level Spell Slot."
}

func (s *Spell) validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: missing name", ErrBadSpell)
	}
	if !s.Level.valid() {
		return fmt.Errorf("%w: level %d out of range", ErrBadSpell, s.Level)
	}
	if s.CastingTime.Unit == Reaction && s.CastingTime.Trigger == "" && s.CastingTime.Override == "" {
		return fmt.Errorf("%w: reaction casting time needs a trigger", ErrBadSpell)
	}
	return nil
}

// LoadSpellFile reads one spell from a JSON file.
func LoadSpellFile(path string) (Spell, error) {
	var spell Spell
	data, err := os.ReadFile(path)
	if err != nil {
		return spell, fmt.Errorf("read spell: %w", err)
	}
	if err := json.Unmarshal(data, &spell); err != nil {
		return spell, fmt.Errorf("decode spell %s: %w", path, err)
	}
	if err := spell.validate(); err != nil {
		return spell, fmt.Errorf("%s: %w", path, err)
	}
	return spell, nil
}

// LoadSpellFolder reads every .json file in a directory and returns
// the spells sorted by level, then name.
func LoadSpellFolder(dir string) ([]Spell, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read spell folder: %w", err)
	}
	var spells []Spell
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		spell, err := LoadSpellFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		spells = append(spells, spell)
	}
	sort.Slice(spells, func(a, b int) bool {
		if spells[a].Level != spells[b].Level {
			return spells[a].Level < spells[b].Level
		}
		return spells[a].Name < spells[b].Name
	})
	return spells, nil
}
