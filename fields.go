package spellbook

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Spell fields are either controlled values with canonical display
// strings or, when Override is set, arbitrary text used verbatim.

// Level is a spell level from 0 (cantrip) to 9.
type Level int

// Cantrip is the level of a cantrip.
const Cantrip Level = 0

func (l Level) String() string {
	switch l {
	case Cantrip:
		return "Cantrip"
	case 1:
		return "1st-Level"
	case 2:
		return "2nd-Level"
	case 3:
		return "3rd-Level"
	default:
		return fmt.Sprintf("%dth-Level", int(l))
	}
}

func (l Level) valid() bool { return l >= 0 && l <= 9 }

// School is one of the eight schools of magic.
type School uint8

const (
	Abjuration School = iota
	Conjuration
	Divination
	Enchantment
	Evocation
	Illusion
	Necromancy
	Transmutation
)

var schoolNames = [...]string{
	"Abjuration", "Conjuration", "Divination", "Enchantment",
	"Evocation", "Illusion", "Necromancy", "Transmutation",
}

func (s School) String() string {
	if int(s) < len(schoolNames) {
		return schoolNames[s]
	}
	return "Unknown"
}

// MarshalJSON encodes the school as its lowercase name.
func (s School) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToLower(s.String()))
}

// UnmarshalJSON accepts a school name in any letter case.
func (s *School) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i, n := range schoolNames {
		if strings.EqualFold(name, n) {
			*s = School(i)
			return nil
		}
	}
	return fmt.Errorf("%w: unknown school %q", ErrBadSpell, name)
}

// TimeUnit is a unit of casting or duration time.
type TimeUnit uint8

const (
	Seconds TimeUnit = iota
	Rounds
	Minutes
	Hours
	Days
	Weeks
	Months
	Years
	Actions
	BonusAction
	Reaction
)

var timeUnitNames = [...]string{
	"seconds", "rounds", "minutes", "hours", "days", "weeks",
	"months", "years", "actions", "bonusaction", "reaction",
}

var timeUnitSingular = [...]string{
	"second", "round", "minute", "hour", "day", "week",
	"month", "year", "action", "bonus action", "reaction",
}

func (u TimeUnit) amountString(n int) string {
	if int(u) >= len(timeUnitSingular) {
		return fmt.Sprintf("%d ???", n)
	}
	if n == 1 {
		return fmt.Sprintf("1 %s", timeUnitSingular[u])
	}
	return fmt.Sprintf("%d %ss", n, timeUnitSingular[u])
}

// MarshalJSON encodes the unit as its lowercase name.
func (u TimeUnit) MarshalJSON() ([]byte, error) {
	if int(u) >= len(timeUnitNames) {
		return nil, fmt.Errorf("%w: unknown time unit %d", ErrBadSpell, u)
	}
	return json.Marshal(timeUnitNames[u])
}

// UnmarshalJSON accepts a unit name, tolerating spaces and case.
func (u *TimeUnit) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	cleaned := strings.ToLower(strings.ReplaceAll(name, " ", ""))
	for i, n := range timeUnitNames {
		if cleaned == n || cleaned == strings.TrimSuffix(n, "s") {
			*u = TimeUnit(i)
			return nil
		}
	}
	return fmt.Errorf("%w: unknown time unit %q", ErrBadSpell, name)
}

// CastingTime is how long a spell takes to cast.
type CastingTime struct {
	Amount   int      `json:"amount,omitempty"`
	Unit     TimeUnit `json:"unit"`
	Trigger  string   `json:"trigger,omitempty"`  // reactions only
	Override string   `json:"override,omitempty"` // verbatim text
}

func (c CastingTime) String() string {
	if c.Override != "" {
		return c.Override
	}
	switch c.Unit {
	case BonusAction:
		return "1 bonus action"
	case Reaction:
		return fmt.Sprintf("1 reaction, which you take when %s", c.Trigger)
	default:
		return c.Unit.amountString(c.Amount)
	}
}

// AreaShape is the shape of an area of effect.
type AreaShape uint8

const (
	LineArea AreaShape = iota
	ConeArea
	CubeArea
	SphereArea
	CylinderArea
	RadiusArea
)

var areaShapeNames = [...]string{"line", "cone", "cube", "sphere", "cylinder", "radius"}

func (a AreaShape) String() string {
	if int(a) < len(areaShapeNames) {
		return areaShapeNames[a]
	}
	return "unknown"
}

// MarshalJSON encodes the shape as its lowercase name.
func (a AreaShape) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts a shape name in any letter case.
func (a *AreaShape) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i, n := range areaShapeNames {
		if strings.EqualFold(name, n) {
			*a = AreaShape(i)
			return nil
		}
	}
	return fmt.Errorf("%w: unknown area shape %q", ErrBadSpell, name)
}

// AreaOfEffect describes the shape a self-ranged spell projects.
type AreaOfEffect struct {
	Shape    AreaShape `json:"shape"`
	Distance int       `json:"distance"`
	Miles    bool      `json:"miles,omitempty"` // feet otherwise
}

func (a AreaOfEffect) String() string {
	unit := "foot"
	if a.Miles {
		unit = "mile"
	}
	return fmt.Sprintf("%d-%s %s", a.Distance, unit, a.Shape)
}

// RangeKind selects a spell range variant.
type RangeKind uint8

const (
	RangeSelf RangeKind = iota
	RangeTouch
	RangeFeet
	RangeMiles
	RangeSpecial
)

var rangeKindNames = [...]string{"self", "touch", "feet", "miles", "special"}

// MarshalJSON encodes the kind as its lowercase name.
func (k RangeKind) MarshalJSON() ([]byte, error) {
	if int(k) >= len(rangeKindNames) {
		return nil, fmt.Errorf("%w: unknown range kind %d", ErrBadSpell, k)
	}
	return json.Marshal(rangeKindNames[k])
}

// UnmarshalJSON accepts a range kind name in any letter case.
func (k *RangeKind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i, n := range rangeKindNames {
		if strings.EqualFold(name, n) {
			*k = RangeKind(i)
			return nil
		}
	}
	return fmt.Errorf("%w: unknown range kind %q", ErrBadSpell, name)
}

// Range is how far away a spell reaches.
type Range struct {
	Kind     RangeKind     `json:"kind"`
	Distance int           `json:"distance,omitempty"`
	Area     *AreaOfEffect `json:"area,omitempty"` // self-ranged only
	Override string        `json:"override,omitempty"`
}

func (r Range) String() string {
	if r.Override != "" {
		return r.Override
	}
	switch r.Kind {
	case RangeSelf:
		if r.Area != nil {
			return fmt.Sprintf("Self (%s)", r.Area)
		}
		return "Self"
	case RangeTouch:
		return "Touch"
	case RangeFeet:
		if r.Distance == 1 {
			return "1 foot"
		}
		return fmt.Sprintf("%d feet", r.Distance)
	case RangeMiles:
		if r.Distance == 1 {
			return "1 mile"
		}
		return fmt.Sprintf("%d miles", r.Distance)
	default:
		return "Special"
	}
}

// Components are the V, S, and M casting components of a spell.
type Components struct {
	Verbal   bool   `json:"verbal,omitempty"`
	Somatic  bool   `json:"somatic,omitempty"`
	Material string `json:"material,omitempty"`
}

func (c Components) String() string {
	var parts []string
	if c.Verbal {
		parts = append(parts, "V")
	}
	if c.Somatic {
		parts = append(parts, "S")
	}
	if c.Material != "" {
		parts = append(parts, fmt.Sprintf("M (%s)", c.Material))
	}
	if len(parts) == 0 {
		return "None"
	}
	return strings.Join(parts, ", ")
}

// DurationKind selects a spell duration variant.
type DurationKind uint8

const (
	DurationInstant DurationKind = iota
	DurationTime
	DurationUntilDispelled
	DurationUntilDispelledOrTriggered
	DurationPermanent
	DurationSpecial
)

var durationKindNames = [...]string{
	"instant", "time", "untildispelled", "untildispelledortriggered",
	"permanent", "special",
}

// MarshalJSON encodes the kind as its lowercase name.
func (k DurationKind) MarshalJSON() ([]byte, error) {
	if int(k) >= len(durationKindNames) {
		return nil, fmt.Errorf("%w: unknown duration kind %d", ErrBadSpell, k)
	}
	return json.Marshal(durationKindNames[k])
}

// UnmarshalJSON accepts a duration kind name, tolerating spaces and case.
func (k *DurationKind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	cleaned := strings.ToLower(strings.ReplaceAll(name, " ", ""))
	for i, n := range durationKindNames {
		if cleaned == n {
			*k = DurationKind(i)
			return nil
		}
	}
	return fmt.Errorf("%w: unknown duration kind %q", ErrBadSpell, name)
}

// Duration is how long a spell's effect lasts.
type Duration struct {
	Kind          DurationKind `json:"kind"`
	Amount        int          `json:"amount,omitempty"`
	Unit          TimeUnit     `json:"unit,omitempty"`
	Concentration bool         `json:"concentration,omitempty"`
	Override      string       `json:"override,omitempty"`
}

func (d Duration) String() string {
	if d.Override != "" {
		return d.Override
	}
	switch d.Kind {
	case DurationTime:
		if d.Concentration {
			return fmt.Sprintf("Concentration, up to %s", d.Unit.amountString(d.Amount))
		}
		return capitalize(d.Unit.amountString(d.Amount))
	case DurationUntilDispelled:
		return "Until dispelled"
	case DurationUntilDispelledOrTriggered:
		return "Until dispelled or triggered"
	case DurationPermanent:
		return "Permanent"
	case DurationSpecial:
		return "Special"
	default:
		return "Instantaneous"
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
