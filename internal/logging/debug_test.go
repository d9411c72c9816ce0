package logging

import (
	"testing"
)

func TestDebugEnabled(t *testing.T) {
	// Test with TL_DEBUG set to empty string
	t.Setenv("TL_DEBUG", "")
	if DebugEnabled() {
		t.Error("DebugEnabled() should return false when TL_DEBUG is empty")
	}

	// Test with TL_DEBUG set to any value
	t.Setenv("TL_DEBUG", "1")
	if !DebugEnabled() {
		t.Error("DebugEnabled() should return true when TL_DEBUG is set")
	}

	t.Setenv("TL_DEBUG", "true")
	if !DebugEnabled() {
		t.Error("DebugEnabled() should return true when TL_DEBUG is 'true'")
	}
}

func TestEffectiveLevel(t *testing.T) {
	t.Setenv("TL_DEBUG", "")
	if got := EffectiveLevel("warn"); got != "warn" {
		t.Errorf("EffectiveLevel(warn) = %q without TL_DEBUG", got)
	}

	t.Setenv("TL_DEBUG", "1")
	if got := EffectiveLevel("warn"); got != "debug" {
		t.Errorf("EffectiveLevel(warn) = %q with TL_DEBUG", got)
	}
}
