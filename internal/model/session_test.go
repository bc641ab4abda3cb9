package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionState_Text(t *testing.T) {
	tests := []struct {
		state SessionState
		text  string
	}{
		{state: SessionIdle, text: "idle"},
		{state: SessionBuilding, text: "building"},
		{state: SessionActive, text: "active"},
		{state: SessionCompleted, text: "completed"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			b, err := tt.state.MarshalText()
			require.NoError(t, err)
			assert.Equal(t, tt.text, string(b))

			var got SessionState
			require.NoError(t, got.UnmarshalText(b))
			assert.Equal(t, tt.state, got)
		})
	}

	t.Run("異常系: 不明な状態", func(t *testing.T) {
		var got SessionState
		assert.Error(t, got.UnmarshalText([]byte("paused")))
	})
}

func TestSessionView_JSON(t *testing.T) {
	view := SessionView{
		SessionID: uuid.New(),
		State:     SessionActive,
		Remaining: 3,
		Stats:     SessionStats{Reviewed: 1, Correct: 1, StartedAt: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)},
	}
	b, err := json.Marshal(view)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"state":"active"`)

	var got SessionView
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, view.SessionID, got.SessionID)
	assert.Equal(t, SessionActive, got.State)
	assert.Equal(t, 3, got.Remaining)
	assert.True(t, view.Stats.StartedAt.Equal(got.Stats.StartedAt))

	assert.Error(t, json.Unmarshal([]byte(`{"state":"paused"}`), &got))
}
