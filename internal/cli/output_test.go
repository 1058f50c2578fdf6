package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitError_Message(t *testing.T) {
	err := NewExitError(ExitFailure, "no authorization code entered")
	assert.Equal(t, "no authorization code entered", err.Error())
}

func TestExitError_WrappedMessage(t *testing.T) {
	inner := errors.New("dial tcp: connection refused")
	err := WrapExitError(ExitFailure, "failed to connect to calendar service", inner)
	assert.Equal(t, "failed to connect to calendar service: dial tcp: connection refused", err.Error())
	assert.ErrorIs(t, err, inner)
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"exit_error", NewExitError(ExitFailure, "boom"), ExitFailure},
		{"wrapped_exit_error", fmt.Errorf("outer: %w", NewExitError(ExitFailure, "boom")), ExitFailure},
		{"plain_error", errors.New("boom"), ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestRunPass_MissingConfig(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"sync", "--config", "/nonexistent/config.yaml"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "configuration error")
}
