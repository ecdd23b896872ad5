package main

import (
	"bytes"
	"context"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmed(t *testing.T) {
	tests := []struct {
		answer string
		want   bool
	}{
		{"y\n", true},
		{"yes\n", true},
		{"YES\n", true},
		{"  y  \n", true},
		{"n\n", false},
		{"\n", false},
		{"yep\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			assert.Equal(t, tt.want, confirmed(tt.answer))
		})
	}
}

// runHandler runs handleSignals until it returns and reports whether it
// canceled the run.
func runHandler(t *testing.T, ctx context.Context, sigs []os.Signal, confirm bool, input string) (bool, string) {
	t.Helper()

	ch := make(chan os.Signal, len(sigs))
	for _, sig := range sigs {
		ch <- sig
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	canceled := false
	var out bytes.Buffer

	done := make(chan struct{})
	go func() {
		defer close(done)
		handleSignals(ctx, func() { canceled = true; cancel() }, ch, confirm, strings.NewReader(input), &out)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("signal handler did not return")
	}
	return canceled, out.String()
}

func TestHandleSignalsTerminate(t *testing.T) {
	canceled, out := runHandler(t, context.Background(), []os.Signal{syscall.SIGTERM}, true, "")
	assert.True(t, canceled)
	assert.Empty(t, out, "SIGTERM never prompts")
}

func TestHandleSignalsInterruptWithoutTerminal(t *testing.T) {
	canceled, out := runHandler(t, context.Background(), []os.Signal{syscall.SIGINT}, false, "")
	assert.True(t, canceled)
	assert.Empty(t, out)
}

func TestHandleSignalsConfirm(t *testing.T) {
	canceled, out := runHandler(t, context.Background(),
		[]os.Signal{syscall.SIGINT, syscall.SIGINT}, true, "n\nyes\n")
	assert.True(t, canceled)
	assert.Equal(t, 2, strings.Count(out, "terminate? (y/yes to terminate, anything else to continue)"))
}

func TestHandleSignalsClosedInput(t *testing.T) {
	canceled, out := runHandler(t, context.Background(), []os.Signal{syscall.SIGINT}, true, "")
	assert.True(t, canceled)
	assert.Contains(t, out, "terminate?")
}

func TestHandleSignalsRunFinished(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	canceled, _ := runHandler(t, ctx, nil, true, "")
	require.False(t, canceled)
}
