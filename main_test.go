package main

import "testing"

func TestEnvString(t *testing.T) {
	t.Setenv("NODECAST_TEST_STR", "custom")
	if got := envString("NODECAST_TEST_STR", "default"); got != "custom" {
		t.Errorf("envString = %q, want custom", got)
	}
	if got := envString("NODECAST_TEST_STR_UNSET", "default"); got != "default" {
		t.Errorf("envString fallback = %q, want default", got)
	}
}

func TestEnvInt(t *testing.T) {
	t.Setenv("NODECAST_TEST_INT", "45")
	if got := envInt("NODECAST_TEST_INT", 120); got != 45 {
		t.Errorf("envInt = %d, want 45", got)
	}

	t.Setenv("NODECAST_TEST_INT", "not-a-number")
	if got := envInt("NODECAST_TEST_INT", 120); got != 120 {
		t.Errorf("envInt on garbage = %d, want fallback 120", got)
	}
}

func TestEnvBool(t *testing.T) {
	// Any strconv.ParseBool form should work, not just "true".
	for _, v := range []string{"true", "TRUE", "1", "t"} {
		t.Setenv("NODECAST_TEST_BOOL", v)
		if !envBool("NODECAST_TEST_BOOL", false) {
			t.Errorf("envBool(%q) = false, want true", v)
		}
	}
	for _, v := range []string{"false", "0", "f"} {
		t.Setenv("NODECAST_TEST_BOOL", v)
		if envBool("NODECAST_TEST_BOOL", true) {
			t.Errorf("envBool(%q) = true, want false", v)
		}
	}

	t.Setenv("NODECAST_TEST_BOOL", "maybe")
	if envBool("NODECAST_TEST_BOOL", false) {
		t.Error("envBool on garbage should return the fallback")
	}
	if got := envBool("NODECAST_TEST_BOOL_UNSET", true); !got {
		t.Error("envBool on unset key should return the fallback")
	}
}
