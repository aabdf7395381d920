package codec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sub struct {
	Title     string     `json:"title"`
	Done      bool       `json:"completed"`
	CreatedAt Timestamp  `json:"createdAt"`
	DoneAt    *Timestamp `json:"completedAt,omitempty"`
}

type entity struct {
	ID        string     `json:"id"`
	Amount    float64    `json:"amount"`
	Tags      []string   `json:"tags"`
	Date      Timestamp  `json:"date"`
	Due       *Timestamp `json:"dueDate,omitempty"`
	Subtasks  []sub      `json:"subtasks"`
	CreatedAt Timestamp  `json:"createdAt"`
}

func TestJSONCodec_RoundTrip(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 987654321, time.Local)
	items := []entity{
		{
			ID:     "1",
			Amount: 12.5,
			Tags:   []string{"a", "b"},
			Date:   NewTimestamp(now),
			Due:    Ptr(now.Add(48 * time.Hour)),
			Subtasks: []sub{
				{Title: "s1", CreatedAt: NewTimestamp(now), DoneAt: Ptr(now.Add(time.Hour))},
				{Title: "s2", CreatedAt: NewTimestamp(now.Add(time.Minute))},
			},
			CreatedAt: NewTimestamp(now),
		},
		{ID: "2", Tags: []string{}, Subtasks: nil, Date: NewTimestamp(now)},
	}

	var c Codec[entity] = JSONCodec[entity]{}
	raw, err := c.Encode(items)
	require.NoError(t, err)

	got, err := c.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestJSONCodec_RehydratesMixedTimestampForms(t *testing.T) {
	raw := []byte(`[{"id":"a","date":"2024-01-02","createdAt":1704153600000,"subtasks":[{"title":"s","createdAt":"2024-01-02T00:00:00Z"}]}]`)

	got, err := JSONCodec[entity]{}.Decode(raw)
	require.NoError(t, err)
	require.Len(t, got, 1)

	midnight := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	assert.True(t, got[0].Date.Equal(midnight))
	assert.True(t, got[0].CreatedAt.Equal(midnight))
	assert.True(t, got[0].Subtasks[0].CreatedAt.Equal(midnight))
}

func TestJSONCodec_EmptyAndInvalid(t *testing.T) {
	c := JSONCodec[entity]{}

	raw, err := c.Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(raw))

	got, err := c.Decode([]byte(`null`))
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = c.Decode([]byte(`{"id":"not-a-list"}`))
	require.Error(t, err)
}
