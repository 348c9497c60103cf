package timeutils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoonOffset_JSON(t *testing.T) {
	type row struct {
		Arrival NoonOffset `json:"arrival"`
	}

	b, err := json.Marshal(row{Arrival: 43200})
	require.NoError(t, err)
	assert.JSONEq(t, `{"arrival":"24:00:00"}`, string(b))

	var got row
	require.NoError(t, json.Unmarshal([]byte(`{"arrival":"06:01:00"}`), &got))
	assert.Equal(t, NoonOffset(-21540), got.Arrival)

	assert.Error(t, json.Unmarshal([]byte(`{"arrival":"6:1:0"}`), &got))
	assert.Error(t, json.Unmarshal([]byte(`{"arrival":10800}`), &got))
}

func TestNoonOffset_Scan(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected NoonOffset
	}{
		{name: "seconds", input: int64(10800), expected: 10800},
		{name: "text", input: "15:00:00", expected: 10800},
		{name: "bytes", input: []byte("25:30:40"), expected: 13*3600 + 30*60 + 40},
		{name: "numeric text", input: "-600", expected: -600},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var o NoonOffset
			require.NoError(t, o.Scan(tt.input))
			assert.Equal(t, tt.expected, o)
		})
	}

	var o NoonOffset
	assert.Error(t, o.Scan(3.5))
	assert.Error(t, o.Scan("noon"))
}

func TestNoonOffset_Value(t *testing.T) {
	v, err := NoonOffset(0).Value()
	require.NoError(t, err)
	assert.Equal(t, "12:00:00", v)
	assert.Equal(t, 0, NoonOffset(0).Seconds())
}
