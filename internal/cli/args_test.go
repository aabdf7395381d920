package cli

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/nanatgrail/prodigyspace/internal/common"
	"github.com/nanatgrail/prodigyspace/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	p := parseArgs([]string{"Read", "chapter", "3", "due=2024-05-20", "CAT=study", "a=b=c", "x-y=1", "=v"})

	want := parsedArgs{
		words: []string{"Read", "chapter", "3", "x-y=1", "=v"},
		opts:  map[string]string{"due": "2024-05-20", "cat": "study", "a": "b=c"},
	}
	if diff := cmp.Diff(want, p, cmp.AllowUnexported(parsedArgs{})); diff != "" {
		t.Fatalf("parseArgs mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Read chapter 3 x-y=1 =v", p.text())
	assert.Equal(t, "study", p.opt("category", "cat"))

	first, rest := p.first()
	assert.Equal(t, "Read", first)
	assert.Equal(t, "chapter 3 x-y=1 =v", rest)
}

func TestParsedArgs_Typed(t *testing.T) {
	p := parseArgs([]string{"min=25", "amt=3.5", "bad=x", "tags=a,b", "due=2024-05-20_09:30"})

	n, err := p.intOpt(0, "min")
	require.NoError(t, err)
	assert.Equal(t, 25, n)

	n, err = p.intOpt(7, "missing")
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	f, err := p.floatOpt(0, "amt")
	require.NoError(t, err)
	assert.Equal(t, 3.5, f)

	_, err = p.intOpt(0, "bad")
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	assert.Equal(t, []string{"a", "b"}, p.list("tags"))
	assert.Nil(t, p.list("none"))

	due, err := p.date("due")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 20, 9, 30, 0, 0, time.UTC), due.Time)

	none, err := p.date("nope")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestParseWhen(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		err  bool
	}{
		{in: "2024-05-20", want: time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)},
		{in: "2024-05-20 14:05", want: time.Date(2024, 5, 20, 14, 5, 0, 0, time.UTC)},
		{in: "2024-05-20T14:05", want: time.Date(2024, 5, 20, 14, 5, 0, 0, time.UTC)},
		{in: "2024-05-20T14:05:06Z", want: time.Date(2024, 5, 20, 14, 5, 6, 0, time.UTC)},
		{in: "tomorrow", err: true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := parseWhen(tc.in)
			if tc.err {
				assert.ErrorIs(t, err, common.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "got %v", got)
		})
	}
}

func TestMatchID(t *testing.T) {
	ids := []string{"abc123", "abd456", "id-1", "id-10"}
	self := func(s string) string { return s }

	got, err := matchID(ids, self, "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc123", got)

	_, err = matchID(ids, self, "ab")
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	got, err = matchID(ids, self, "id-1")
	require.NoError(t, err)
	assert.Equal(t, "id-1", got)

	got, err = matchID(ids, self, "zzz")
	require.NoError(t, err)
	assert.Equal(t, "zzz", got)

	assert.Equal(t, "abcdefgh", shortID("abcdefgh-1234"))
	assert.Equal(t, "id-1", shortID("id-1"))
}

func TestParseDays(t *testing.T) {
	days, err := parseDays("")
	require.NoError(t, err)
	assert.Len(t, days, 7)

	days, err = parseDays("weekend")
	require.NoError(t, err)
	assert.Equal(t, []models.Weekday{models.Saturday, models.Sunday}, days)

	days, err = parseDays("mon, WED,th")
	require.NoError(t, err)
	assert.Equal(t, []models.Weekday{models.Monday, models.Wednesday, models.Thursday}, days)

	_, err = parseDays("s")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
	_, err = parseDays("funday")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}
