package photonwalk

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeYears(t *testing.T) {
	assert.Equal(t, int64(9781), escapeYears(57, 1/(8*1408.0), 0.005))
	assert.Equal(t, int64(0), escapeYears(0, 1/(8*1408.0), 0.005))
	// 48.32 * 1 * 1 / 1 rounds down, 48.5 would round up
	assert.Equal(t, int64(48), escapeYears(1, 1, 1))
	assert.Equal(t, int64(97), escapeYears(2, 1, 1))
}

func TestStatsString(t *testing.T) {
	st := Stats{Duration: 1.234, TotalSteps: 57, EscapeYears: 9781}
	assert.Equal(t, "Duration: 1.23s\nTotal Steps: 57\nEscape Time: 9781 Years", st.String())
	assert.Equal(t, "0.00s", Stats{}.DurationString())
}

func TestStatsJSON(t *testing.T) {
	st := Stats{Duration: 2, TotalSteps: 3, EscapeYears: 4, FinalPosition: Point3{1, 2, 3}, FinalDistance: 5}
	data, err := json.Marshal(st)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, 2.0, m["duration"])
	assert.Equal(t, 3.0, m["totalSteps"])
	assert.Equal(t, 4.0, m["escapeTimeYears"])
	assert.Equal(t, []any{1.0, 2.0, 3.0}, m["finalPosition"])
}
