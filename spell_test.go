package spellbook

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSpellJSONRoundTrip(t *testing.T) {
	spell := Spell{
		Name:        "Hold Person",
		Level:       2,
		School:      Enchantment,
		CastingTime: CastingTime{Amount: 1, Unit: Actions},
		Range:       Range{Kind: RangeFeet, Distance: 60},
		Components:  Components{Verbal: true, Somatic: true, Material: "a small, straight piece of iron"},
		Duration:    Duration{Kind: DurationTime, Amount: 1, Unit: Minutes, Concentration: true},
		Description: []string{"Choose a humanoid that you can see within range."},
		Upcast:      "You can target one additional humanoid for each slot level above 2nd.",
	}
	data, err := json.Marshal(spell)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Spell
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(spell, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSchoolJSONAcceptsAnyCase(t *testing.T) {
	var s School
	if err := json.Unmarshal([]byte(`"NECROMANCY"`), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s != Necromancy {
		t.Fatalf("school = %v", s)
	}
	if err := json.Unmarshal([]byte(`"divination school"`), &s); err == nil {
		t.Fatalf("expected an error for unknown school")
	}
}

func TestTimeUnitJSONVariants(t *testing.T) {
	var u TimeUnit
	for _, raw := range []string{`"bonus action"`, `"bonusaction"`, `"BonusAction"`} {
		if err := json.Unmarshal([]byte(raw), &u); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if u != BonusAction {
			t.Fatalf("%s decoded to %v", raw, u)
		}
	}
	if err := json.Unmarshal([]byte(`"minute"`), &u); err != nil {
		t.Fatalf("singular form should decode: %v", err)
	}
	if u != Minutes {
		t.Fatalf("minute decoded to %v", u)
	}
}

func writeSpellFile(t *testing.T, dir, name string, spell Spell) {
	t.Helper()
	data, err := json.Marshal(spell)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLoadSpellFolderSorted(t *testing.T) {
	dir := t.TempDir()
	zephyr := testSpell()
	zephyr.Name = "Zephyr Strike"
	zephyr.Level = 1
	acid := testSpell()
	acid.Name = "Acid Splash"
	bolt := testSpell()
	writeSpellFile(t, dir, "zephyr.json", zephyr)
	writeSpellFile(t, dir, "acid.json", acid)
	writeSpellFile(t, dir, "bolt.json", bolt)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	spells, err := LoadSpellFolder(dir)
	if err != nil {
		t.Fatalf("LoadSpellFolder: %v", err)
	}
	var names []string
	for _, s := range spells {
		names = append(names, s.Name)
	}
	want := []string{"Acid Splash", "Fire Bolt", "Zephyr Strike"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadSpellFileValidates(t *testing.T) {
	dir := t.TempDir()
	bad := testSpell()
	bad.Name = ""
	writeSpellFile(t, dir, "bad.json", bad)
	_, err := LoadSpellFile(filepath.Join(dir, "bad.json"))
	if !errors.Is(err, ErrBadSpell) {
		t.Fatalf("expected ErrBadSpell, got %v", err)
	}
}

func TestSpellValidateReactionTrigger(t *testing.T) {
	spell := testSpell()
	spell.CastingTime = CastingTime{Unit: Reaction}
	if err := spell.validate(); !errors.Is(err, ErrBadSpell) {
		t.Fatalf("expected ErrBadSpell for missing trigger, got %v", err)
	}
	spell.CastingTime.Trigger = "a creature you can see moves"
	if err := spell.validate(); err != nil {
		t.Fatalf("trigger should satisfy validation: %v", err)
	}
}

func TestSpellValidateLevelRange(t *testing.T) {
	spell := testSpell()
	spell.Level = 10
	if err := spell.validate(); !errors.Is(err, ErrBadSpell) {
		t.Fatalf("expected ErrBadSpell for level 10, got %v", err)
	}
}
