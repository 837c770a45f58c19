package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) string {
	t.Helper()

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

// TestQuoteCommand quotes the constant product output for given reserves
func TestQuoteCommand(t *testing.T) {
	out := runCommand(t, "quote", "1000", "1000", "100")
	require.Contains(t, out, "swap 100uatom -> 90uusdt")
}

// TestSpotPriceCommand prints the reserve ratio in both directions
func TestSpotPriceCommand(t *testing.T) {
	out := runCommand(t, "spot-price", "1000", "4000")
	require.Contains(t, out, "uusdt per uatom: 4.0")
	require.Contains(t, out, "uatom per uusdt: 0.25")
}

// TestDemoCommand walks the full lifecycle without error
func TestDemoCommand(t *testing.T) {
	out := runCommand(t, "demo")
	require.Contains(t, out, "created pool 1")
	require.Contains(t, out, "swapped 100uatom -> 90uusdt")
	require.Contains(t, out, "final state: 1 pool(s)")
}

// TestQuoteCommand_InvalidAmount rejects non-numeric and non-positive input
func TestQuoteCommand_InvalidAmount(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	cmd.SetArgs([]string{"quote", "1000", "1000", "abc"})
	require.Error(t, cmd.Execute())

	cmd = NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"quote", "1000", "1000", "-5"})
	require.Error(t, cmd.Execute())
}
