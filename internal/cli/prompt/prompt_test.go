package prompt

import (
	"errors"
	"fmt"
	"testing"

	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/dirsearch/internal/domain/directory"
)

func principals(n int) []directory.Record {
	out := make([]directory.Record, 0, n)
	for i := range n {
		out = append(out, directory.NewPrincipal(map[string]any{
			"displayName":       fmt.Sprintf("User %d", i+1),
			"userPrincipalName": fmt.Sprintf("user%d@example.com", i+1),
		}))
	}
	return out
}

func actions(options []SelectOption) []Action {
	out := make([]Action, 0, len(options))
	for _, o := range options {
		out = append(out, o.Action)
	}
	return out
}

func TestResultsMenu_FirstOfTwoPages(t *testing.T) {
	page := directory.NewResultSet(principals(7), nil).Page(1)
	options := ResultsMenu(page)

	require.Len(t, options, 9)
	assert.Equal(t, "1. User: User 1 (user1@example.com)", options[0].Label)
	assert.Equal(t, 4, options[4].Index)
	assert.Equal(t, []Action{
		ActionSelect, ActionSelect, ActionSelect, ActionSelect, ActionSelect,
		ActionNextPage, ActionNewSearch, ActionLogout, ActionQuit,
	}, actions(options))
}

func TestResultsMenu_LastPage(t *testing.T) {
	page := directory.NewResultSet(principals(7), nil).Page(2)
	options := ResultsMenu(page)

	require.Len(t, options, 6)
	assert.Equal(t, "6. User: User 6 (user6@example.com)", options[0].Label)
	assert.Equal(t, 0, options[0].Index, "index is relative to the page")
	assert.Equal(t, []Action{
		ActionSelect, ActionSelect, ActionPrevPage, ActionNewSearch, ActionLogout, ActionQuit,
	}, actions(options))
}

func TestResultsMenu_Empty(t *testing.T) {
	options := ResultsMenu(directory.ResultSet{}.Page(1))
	assert.Equal(t, []Action{ActionNewSearch, ActionLogout, ActionQuit}, actions(options))
}

func TestIsAborted(t *testing.T) {
	assert.True(t, IsAborted(promptui.ErrInterrupt))
	assert.True(t, IsAborted(promptui.ErrEOF))
	assert.True(t, IsAborted(fmt.Errorf("wrapped: %w", ErrAborted)))
	assert.False(t, IsAborted(errors.New("boom")))

	assert.NoError(t, wrapError(nil))
	assert.ErrorIs(t, wrapError(promptui.ErrInterrupt), ErrAborted)
	boom := errors.New("boom")
	assert.Equal(t, boom, wrapError(boom))
}

func TestConfirmResult(t *testing.T) {
	tests := []struct {
		name       string
		result     string
		err        error
		defaultYes bool
		want       bool
		wantErr    error
	}{
		{name: "yes", result: "y", want: true},
		{name: "YES", result: "YES", want: true},
		{name: "explicit no", result: "n", err: promptui.ErrAbort, defaultYes: true, want: false},
		{name: "empty uses default yes", result: "", err: promptui.ErrAbort, defaultYes: true, want: true},
		{name: "empty uses default no", result: "", err: promptui.ErrAbort, defaultYes: false, want: false},
		{name: "interrupt", err: promptui.ErrInterrupt, wantErr: ErrAborted},
		{name: "eof", err: promptui.ErrEOF, wantErr: ErrAborted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := confirmResult(tt.result, tt.err, tt.defaultYes)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
