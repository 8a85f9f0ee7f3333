package model

import (
	"encoding/json"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"
)

const (
	maxWeightValue = 1000
	minSystolic    = 70
	maxSystolic    = 300
	minDiastolic   = 40
	maxDiastolic   = 150
	maxBPM         = 300
)

// FieldError is a single validation failure tied to an input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every violation found in one submitted
// measurement, so the client can fix them all in a single round.
type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>?`)

// StripTags removes HTML tags from free-text notes.
func StripTags(s string) string {
	return htmlTagPattern.ReplaceAllString(s, "")
}

// baseFields are accepted on every variant. ownerId and id are tolerated
// but ignored; both are assigned server-side.
var baseFields = []string{"kind", "timestamp", "notes", "ownerId", "id"}

var variantFields = map[Kind][]string{
	KindWeight:        {"value", "unit"},
	KindBloodPressure: {"systolic", "diastolic"},
	KindHeartRate:     {"bpm"},
}

type violations struct {
	errs []FieldError
}

func (v *violations) add(field, msg string) {
	v.errs = append(v.errs, FieldError{Field: field, Message: msg})
}

// Validate checks a raw measurement payload and builds the matching
// variant. Checks run structural shape first (known kind, no unknown
// fields), then per-field type and range rules, then cross-field
// invariants; every violation is collected into one ValidationError.
// Notes are trimmed and tag-stripped only after validation passes, so
// stripping cannot turn an invalid payload into a valid one.
func Validate(raw []byte) (Measurement, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, &ValidationError{Errors: []FieldError{
			{Field: "", Message: "body must be a JSON object"},
		}}
	}

	var kind Kind
	if rawKind, ok := fields["kind"]; ok {
		var s string
		if err := json.Unmarshal(rawKind, &s); err == nil {
			kind = Kind(s)
		}
	}
	if !KnownKind(kind) {
		return nil, &ValidationError{Errors: []FieldError{
			{Field: "kind", Message: "must be one of Weight, BloodPressure, HeartRate"},
		}}
	}

	v := &violations{}

	allowed := make(map[string]bool, len(baseFields)+2)
	for _, f := range baseFields {
		allowed[f] = true
	}
	for _, f := range variantFields[kind] {
		allowed[f] = true
	}
	var unknown []string
	for key := range fields {
		if !allowed[key] {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		v.add(key, "unknown field")
	}

	var common Common
	if ts, ok := stringField(fields, "timestamp", v); ok {
		if _, err := time.Parse(time.RFC3339, ts); err != nil {
			v.add("timestamp", "must be a valid RFC 3339 timestamp")
		} else {
			common.Timestamp = ts
		}
	}
	if rawNotes, ok := fields["notes"]; ok {
		var notes string
		if err := json.Unmarshal(rawNotes, &notes); err != nil {
			v.add("notes", "must be a string")
		} else {
			common.Notes = notes
		}
	}

	var m Measurement
	switch kind {
	case KindWeight:
		w := &Weight{Common: common}
		if value, ok := numberField(fields, "value", v); ok {
			switch {
			case value <= 0:
				v.add("value", "must be a positive number")
			case value > maxWeightValue:
				v.add("value", "must be at most 1000")
			default:
				w.Value = value
			}
		}
		if unit, ok := stringField(fields, "unit", v); ok {
			switch WeightUnit(unit) {
			case UnitKg, UnitLbs:
				w.Unit = WeightUnit(unit)
			default:
				v.add("unit", `must be "kg" or "lbs"`)
			}
		}
		m = w

	case KindBloodPressure:
		b := &BloodPressure{Common: common}
		sys, sysOK := intField(fields, "systolic", v)
		if sysOK {
			if sys < minSystolic || sys > maxSystolic {
				v.add("systolic", "must be between 70 and 300")
				sysOK = false
			} else {
				b.Systolic = sys
			}
		}
		dia, diaOK := intField(fields, "diastolic", v)
		if diaOK {
			if dia < minDiastolic || dia > maxDiastolic {
				v.add("diastolic", "must be between 40 and 150")
				diaOK = false
			} else {
				b.Diastolic = dia
			}
		}
		// Cross-field invariant, checked only once both sides are
		// individually valid.
		if sysOK && diaOK && sys <= dia {
			v.add("systolic", "must be greater than diastolic")
		}
		m = b

	case KindHeartRate:
		h := &HeartRate{Common: common}
		if bpm, ok := intField(fields, "bpm", v); ok {
			switch {
			case bpm <= 0:
				v.add("bpm", "must be a positive integer")
			case bpm > maxBPM:
				v.add("bpm", "must be at most 300")
			default:
				h.BPM = bpm
			}
		}
		m = h
	}

	if len(v.errs) > 0 {
		return nil, &ValidationError{Errors: v.errs}
	}

	base := m.Base()
	base.Notes = StripTags(strings.TrimSpace(base.Notes))
	return m, nil
}

func stringField(fields map[string]json.RawMessage, name string, v *violations) (string, bool) {
	raw, ok := fields[name]
	if !ok {
		v.add(name, "is required")
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		v.add(name, "must be a string")
		return "", false
	}
	return s, true
}

func numberField(fields map[string]json.RawMessage, name string, v *violations) (float64, bool) {
	raw, ok := fields[name]
	if !ok {
		v.add(name, "is required")
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		v.add(name, "must be a number")
		return 0, false
	}
	return f, true
}

func intField(fields map[string]json.RawMessage, name string, v *violations) (int, bool) {
	f, ok := numberField(fields, name, v)
	if !ok {
		return 0, false
	}
	if f != math.Trunc(f) {
		v.add(name, "must be an integer")
		return 0, false
	}
	// Bound before converting; conversion of a float beyond the int
	// range is implementation-defined. int32 bounds are exact in
	// float64 and far beyond any valid field range.
	if f < math.MinInt32 || f > math.MaxInt32 {
		v.add(name, "is out of range")
		return 0, false
	}
	return int(f), true
}
