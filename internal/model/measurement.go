package model

import "encoding/json"

// Kind discriminates the measurement variants.
type Kind string

const (
	KindWeight        Kind = "Weight"
	KindBloodPressure Kind = "BloodPressure"
	KindHeartRate     Kind = "HeartRate"
)

// KnownKind reports whether k belongs to the closed variant set.
func KnownKind(k Kind) bool {
	switch k {
	case KindWeight, KindBloodPressure, KindHeartRate:
		return true
	}
	return false
}

// WeightUnit is the unit a weight measurement was taken in.
type WeightUnit string

const (
	UnitKg  WeightUnit = "kg"
	UnitLbs WeightUnit = "lbs"
)

// Common holds the fields shared by every measurement variant. ID and
// OwnerID are assigned server-side and never taken from client input.
type Common struct {
	ID        string
	OwnerID   string
	Timestamp string // RFC 3339
	Notes     string
}

// Measurement is one user-submitted health data point. The variant set is
// closed: Weight, BloodPressure and HeartRate are the only implementations.
type Measurement interface {
	Kind() Kind
	Base() *Common

	isMeasurement()
}

// Weight is a body weight reading.
type Weight struct {
	Common
	Value float64
	Unit  WeightUnit
}

// BloodPressure is a systolic/diastolic pressure reading in mmHg.
type BloodPressure struct {
	Common
	Systolic  int
	Diastolic int
}

// HeartRate is a pulse reading in beats per minute.
type HeartRate struct {
	Common
	BPM int
}

func (w *Weight) Kind() Kind        { return KindWeight }
func (b *BloodPressure) Kind() Kind { return KindBloodPressure }
func (h *HeartRate) Kind() Kind     { return KindHeartRate }

func (w *Weight) Base() *Common        { return &w.Common }
func (b *BloodPressure) Base() *Common { return &b.Common }
func (h *HeartRate) Base() *Common     { return &h.Common }

func (*Weight) isMeasurement()        {}
func (*BloodPressure) isMeasurement() {}
func (*HeartRate) isMeasurement()     {}

// commonJSON is the wire shape of the shared fields, including the kind
// discriminant.
type commonJSON struct {
	Kind      Kind   `json:"kind"`
	ID        string `json:"id,omitempty"`
	OwnerID   string `json:"ownerId"`
	Timestamp string `json:"timestamp"`
	Notes     string `json:"notes,omitempty"`
}

func (c *Common) wire(k Kind) commonJSON {
	return commonJSON{
		Kind:      k,
		ID:        c.ID,
		OwnerID:   c.OwnerID,
		Timestamp: c.Timestamp,
		Notes:     c.Notes,
	}
}

func (w *Weight) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		commonJSON
		Value float64    `json:"value"`
		Unit  WeightUnit `json:"unit"`
	}{w.wire(KindWeight), w.Value, w.Unit})
}

func (b *BloodPressure) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		commonJSON
		Systolic  int `json:"systolic"`
		Diastolic int `json:"diastolic"`
	}{b.wire(KindBloodPressure), b.Systolic, b.Diastolic})
}

func (h *HeartRate) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		commonJSON
		BPM int `json:"bpm"`
	}{h.wire(KindHeartRate), h.BPM})
}
