package utils

import "testing"

func TestNormalizeIdentifier(t *testing.T) {
	testCases := []struct {
		input, want string
	}{
		{"abc123", "abc123"},
		{"arg#2", "arg_2"},
		{"0abc", "_0abc"},
	}
	for _, tc := range testCases {
		got := NormalizeIdentifier(tc.input)
		if got != tc.want {
			t.Errorf("NormalizeIdentifier(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
