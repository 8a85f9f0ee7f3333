package sheet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/healthtrack/healthtrack-go/internal/model"
)

// LogColumns is the number of cells in one measurement row:
// timestamp, owner, kind, value, unit, notes.
const LogColumns = 6

// EncodeRow flattens a measurement into its spreadsheet row. The value
// and unit cells are variant-specific: blood pressure packs both readings
// into one "systolic/diastolic" cell with a fixed mmHg unit, heart rate
// stores bpm with a fixed bpm unit.
func EncodeRow(m model.Measurement) []string {
	base := m.Base()

	var value, unit string
	switch v := m.(type) {
	case *model.Weight:
		value = strconv.FormatFloat(v.Value, 'f', -1, 64)
		unit = string(v.Unit)
	case *model.BloodPressure:
		value = fmt.Sprintf("%d/%d", v.Systolic, v.Diastolic)
		unit = "mmHg"
	case *model.HeartRate:
		value = strconv.Itoa(v.BPM)
		unit = "bpm"
	}

	return []string{base.Timestamp, base.OwnerID, string(m.Kind()), value, unit, base.Notes}
}

// DecodeRow rebuilds a measurement from its spreadsheet row, re-deriving
// the variant fields from the value cell by kind-directed parsing. Any
// malformed cell fails the whole row; there is no best-effort guess.
// The sheet stores no id column, so every decode mints a fresh one — ids
// are not stable across reads.
func DecodeRow(cells []string) (model.Measurement, error) {
	// The Sheets API omits trailing empty cells from each returned row,
	// so a measurement with no notes comes back one cell short. Pad the
	// tail with empty cells; a cell that must carry a value still fails
	// its parse below.
	if len(cells) < LogColumns {
		padded := make([]string, LogColumns)
		copy(padded, cells)
		cells = padded
	}

	common := model.Common{
		ID:        uuid.NewString(),
		OwnerID:   cells[1],
		Timestamp: cells[0],
		Notes:     cells[5],
	}
	value := cells[3]

	switch kind := model.Kind(cells[2]); kind {
	case model.KindWeight:
		w, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("weight value %q: %w", value, err)
		}
		unit := model.WeightUnit(cells[4])
		if unit != model.UnitKg && unit != model.UnitLbs {
			return nil, fmt.Errorf("weight unit %q: want kg or lbs", cells[4])
		}
		return &model.Weight{Common: common, Value: w, Unit: unit}, nil

	case model.KindBloodPressure:
		sysRaw, diaRaw, ok := strings.Cut(value, "/")
		if !ok {
			return nil, fmt.Errorf("blood pressure value %q: want systolic/diastolic", value)
		}
		sys, err := strconv.Atoi(sysRaw)
		if err != nil {
			return nil, fmt.Errorf("systolic value %q: %w", sysRaw, err)
		}
		dia, err := strconv.Atoi(diaRaw)
		if err != nil {
			return nil, fmt.Errorf("diastolic value %q: %w", diaRaw, err)
		}
		return &model.BloodPressure{Common: common, Systolic: sys, Diastolic: dia}, nil

	case model.KindHeartRate:
		bpm, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("bpm value %q: %w", value, err)
		}
		return &model.HeartRate{Common: common, BPM: bpm}, nil

	default:
		return nil, fmt.Errorf("unknown kind %q", cells[2])
	}
}
