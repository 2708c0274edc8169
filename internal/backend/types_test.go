package backend

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormUnmarshal(t *testing.T) {
	t.Run("compact string", func(t *testing.T) {
		var f Form
		require.NoError(t, json.Unmarshal([]byte(`"wdl"`), &f))
		assert.Equal(t, Form{FormWin, FormDraw, FormLoss}, f)
		assert.Equal(t, "WDL", f.String())
	})

	t.Run("array", func(t *testing.T) {
		var f Form
		require.NoError(t, json.Unmarshal([]byte(`["L","L","W"]`), &f))
		assert.Equal(t, Form{FormLoss, FormLoss, FormWin}, f)
	})

	t.Run("unknown letter", func(t *testing.T) {
		var f Form
		assert.Error(t, json.Unmarshal([]byte(`"WXW"`), &f))
	})

	t.Run("null", func(t *testing.T) {
		f := Form{FormWin}
		require.NoError(t, json.Unmarshal([]byte(`null`), &f))
		assert.Nil(t, f)
	})
}

func TestTeamStatsKeepsExplicitGoalDiff(t *testing.T) {
	var s TeamStats
	require.NoError(t, json.Unmarshal([]byte(`{"team":"Chelsea","goals_for":40,"goals_against":30,"goal_diff":12}`), &s))
	assert.Equal(t, 12, s.GoalDiff)
	assert.Nil(t, s.Position)
}

func TestOutcomeLabel(t *testing.T) {
	assert.Equal(t, "Home Win", HomeWin.Label())
	assert.Equal(t, "Away Win", AwayWin.Label())
	assert.Equal(t, "Draw", Draw.Label())
	assert.Equal(t, "ABANDONED", Outcome("ABANDONED").Label())
}
