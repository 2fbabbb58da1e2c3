package util

import "testing"

func TestSanitizeString(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  hello  ", "hello"},
		{"hel\x00lo", "hello"},
		{"line\nbreak", "linebreak"},
		{"clean", "clean"},
	}
	for _, tc := range cases {
		if got := SanitizeString(tc.in); got != tc.want {
			t.Errorf("SanitizeString(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Alice@Example.COM \n"); got != "alice@example.com" {
		t.Errorf("NormalizeEmail = %q", got)
	}
}

func TestIsSafeString(t *testing.T) {
	unsafe := []string{
		"Robert'); DROP TABLE users",
		"<script>alert(1)</script>",
		"javascript:void(0)",
		"1 UNION SELECT password",
	}
	for _, s := range unsafe {
		if IsSafeString(s) {
			t.Errorf("IsSafeString(%q) = true, want false", s)
		}
	}

	safe := []string{"Alice", "O Connor", "alice@example.com", "Jean-Pierre"}
	for _, s := range safe {
		if !IsSafeString(s) {
			t.Errorf("IsSafeString(%q) = false, want true", s)
		}
	}
}
