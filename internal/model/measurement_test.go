package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalIncludesDiscriminant(t *testing.T) {
	m := Measurement(&BloodPressure{
		Common:    Common{ID: "abc", OwnerID: "u1", Timestamp: "2024-01-01T00:00:00Z"},
		Systolic:  120,
		Diastolic: 80,
	})

	raw, err := json.Marshal(m)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "BloodPressure", out["kind"])
	assert.Equal(t, "u1", out["ownerId"])
	assert.Equal(t, float64(120), out["systolic"])
	assert.Equal(t, float64(80), out["diastolic"])
	assert.NotContains(t, out, "notes", "empty notes are omitted")
}

func TestKnownKind(t *testing.T) {
	assert.True(t, KnownKind(KindWeight))
	assert.True(t, KnownKind(KindBloodPressure))
	assert.True(t, KnownKind(KindHeartRate))
	assert.False(t, KnownKind("BloodSugar"))
	assert.False(t, KnownKind(""))
}

func TestStripTags(t *testing.T) {
	assert.Equal(t, "hello", StripTags("<b>hello</b>"))
	assert.Equal(t, "plain text", StripTags("plain text"))
	assert.Equal(t, "trailing", StripTags("trailing<br"))
}
