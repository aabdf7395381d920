package codec

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_MarshalJSON(t *testing.T) {
	ts := NewTimestamp(time.Date(2024, 2, 29, 23, 59, 58, 123456789, time.FixedZone("X", 3*3600)))
	b, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2024-02-29T20:59:58.123Z"`, string(b))

	b, err = json.Marshal(Timestamp{})
	require.NoError(t, err)
	assert.Equal(t, `null`, string(b))
}

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{"iso millis", `"2024-01-15T08:30:00.250Z"`, time.Date(2024, 1, 15, 8, 30, 0, 250e6, time.UTC), false},
		{"iso offset", `"2024-01-15T10:30:00+02:00"`, time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC), false},
		{"iso nanos truncated", `"2024-01-15T08:30:00.123456789Z"`, time.Date(2024, 1, 15, 8, 30, 0, 123e6, time.UTC), false},
		{"date only", `"2024-01-15"`, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), false},
		{"epoch millis", `1705307400250`, time.Date(2024, 1, 15, 8, 30, 0, 250e6, time.UTC), false},
		{"null", `null`, time.Time{}, false},
		{"empty string", `""`, time.Time{}, false},
		{"garbage string", `"tomorrow"`, time.Time{}, true},
		{"bool", `true`, time.Time{}, true},
		{"huge number", `1e300`, time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			err := json.Unmarshal([]byte(tt.in), &ts)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(ts.Time), "got %v want %v", ts.Time, tt.want)
			if !tt.want.IsZero() {
				assert.Equal(t, time.UTC, ts.Location())
			}
		})
	}
}

func TestTimestamp_OptionalPointer(t *testing.T) {
	type rec struct {
		Due *Timestamp `json:"dueDate,omitempty"`
	}

	b, err := json.Marshal(rec{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(b))

	var r rec
	require.NoError(t, json.Unmarshal([]byte(`{"dueDate":"2024-03-01"}`), &r))
	require.NotNil(t, r.Due)
	assert.Equal(t, "2024-03-01T00:00:00.000Z", r.Due.String())

	require.NoError(t, json.Unmarshal([]byte(`{"dueDate":null}`), &r))
	assert.Nil(t, r.Due)
}

func TestNewTimestamp_ZeroStaysZero(t *testing.T) {
	assert.True(t, NewTimestamp(time.Time{}).IsZero())
	assert.Equal(t, "", Timestamp{}.String())
}

func TestTimestamp_YearRangeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"last formattable instant", `253402300799999`, `"9999-12-31T23:59:59.999Z"`},
		{"first year past 9999", `253402300800000`, `253402300800000`},
		{"far future", `1000000000000000`, `1000000000000000`},
		{"first year 0000 instant", `-62167219200000`, `"0000-01-01T00:00:00.000Z"`},
		{"negative year", `-62167219200001`, `-62167219200001`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.in), &ts))

			b, err := json.Marshal(ts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(b))

			var back Timestamp
			require.NoError(t, json.Unmarshal(b, &back))
			assert.True(t, ts.Equal(back.Time), "got %v want %v", back.Time, ts.Time)
		})
	}
}

func TestJSONCodec_FarFutureDateSurvivesRewrite(t *testing.T) {
	type todo struct {
		ID  string     `json:"id"`
		Due *Timestamp `json:"dueDate,omitempty"`
	}
	c := JSONCodec[todo]{}

	items, err := c.Decode([]byte(`[{"id":"a","dueDate":1000000000000000},{"id":"b","dueDate":"2024-01-15"}]`))
	require.NoError(t, err)

	data, err := c.Encode(items)
	require.NoError(t, err)

	again, err := c.Decode(data)
	require.NoError(t, err)
	require.Len(t, again, 2)
	assert.True(t, items[0].Due.Equal(again[0].Due.Time))
	assert.True(t, items[1].Due.Equal(again[1].Due.Time))
}
