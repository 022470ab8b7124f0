package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateFromAttributes_RoundTrip(t *testing.T) {
	attrs := map[string]any{
		"newCase":        true,
		"isDescReceived": true,
		"subject":        "Brakes failing",
		"loggedInUser": map[string]any{
			"user_id":      "005xx0001",
			"display_name": "Sunny",
		},
	}

	state, err := StateFromAttributes(attrs)
	require.NoError(t, err)
	assert.True(t, state.NewCase)
	assert.True(t, state.DescReceived)
	assert.Equal(t, "Brakes failing", state.Subject)
	require.NotNil(t, state.User)
	assert.Equal(t, "Sunny", state.User.DisplayName)

	out := state.Attributes()
	assert.Equal(t, true, out["newCase"])
	assert.Equal(t, "Brakes failing", out["subject"])
	user, ok := out["loggedInUser"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "005xx0001", user["user_id"])
}

func TestStateFromAttributes_CachedCaseList(t *testing.T) {
	attrs := map[string]any{
		"ccBlock": true,
		"caseSubjectsResult": []any{
			map[string]any{"Id": "500A", "Subject": "Brakes"},
			map[string]any{"Id": "500B", "Subject": "Wipers"},
		},
	}

	state, err := StateFromAttributes(attrs)
	require.NoError(t, err)
	require.Len(t, state.Cases, 2)
	assert.Equal(t, "500B", state.Cases[1].ID)
	assert.Equal(t, StepAwaitingSelection, state.Step())
}

func TestStateFromAttributes_Empty(t *testing.T) {
	state, err := StateFromAttributes(nil)
	require.NoError(t, err)
	assert.Equal(t, StepIdle, state.Step())
}

func TestStateFromAttributes_CorruptBag(t *testing.T) {
	_, err := StateFromAttributes(map[string]any{"newCase": "yes"})
	assert.Error(t, err)
}

func TestStep_Derivation(t *testing.T) {
	tests := []struct {
		name  string
		state SessionState
		want  string
	}{
		{"empty", SessionState{}, StepIdle},
		{"subject pending", SessionState{NewCase: true}, StepAwaitingSubject},
		{"description pending", SessionState{NewCase: true, DescReceived: true}, StepAwaitingDescription},
		{"confirmation pending", SessionState{CCBlock: true}, StepAwaitingConfirmation},
		{"selection pending", SessionState{CCBlock: true, Cases: []CaseSummary{{ID: "500A"}}}, StepAwaitingSelection},
		{"manual number pending", SessionState{AwaitingCaseNumber: true}, StepAwaitingCaseNumber},
		{"comment pending", SessionState{CommentCaseID: "500A"}, StepAwaitingComment},
		{
			"comment target wins over cached list",
			SessionState{CommentCaseID: "500A", Cases: []CaseSummary{{ID: "500A"}}},
			StepAwaitingComment,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.Step())
		})
	}
}

func TestFlows_MutuallyExclusive(t *testing.T) {
	state := &SessionState{
		CCBlock:       true,
		OnlyOneCase:   true,
		CommentCaseID: "500A",
		Cases:         []CaseSummary{{ID: "500A"}},
	}
	state.StartCaseFlow()
	assert.True(t, state.NewCase)
	assert.False(t, state.CCBlock)
	assert.False(t, state.OnlyOneCase)
	assert.Empty(t, state.CommentCaseID)
	assert.Nil(t, state.Cases)

	state = &SessionState{NewCase: true, DescReceived: true, Subject: "Brakes"}
	state.StartCommentFlow()
	assert.True(t, state.CCBlock)
	assert.False(t, state.NewCase)
	assert.False(t, state.DescReceived)
	assert.Empty(t, state.Subject)
}

func TestReset_ClearsEverything(t *testing.T) {
	state := &SessionState{
		CommentCaseID: "500A",
		User:          &Identity{UserID: "005", DisplayName: "Sunny"},
	}
	state.Reset()
	assert.Equal(t, SessionState{}, *state)
	assert.Equal(t, StepIdle, state.Step())
}
