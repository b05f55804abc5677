package tui

import "testing"

func TestFormatTimecode(t *testing.T) {
	cases := []struct {
		sec  float64
		want string
	}{
		{0, "0:00.00"},
		{4.5, "0:04.50"},
		{65.25, "1:05.25"},
		{-3, "0:00.00"},
	}
	for _, tc := range cases {
		if got := formatTimecode(tc.sec); got != tc.want {
			t.Errorf("formatTimecode(%v) = %q, want %q", tc.sec, got, tc.want)
		}
	}
}

func TestFitLabel(t *testing.T) {
	if got := fitLabel("clip", 8); len([]rune(got)) != 8 {
		t.Errorf("fitLabel width = %d, want 8", len([]rune(got)))
	}
	if got := fitLabel("a-very-long-clip-name", 5); len([]rune(got)) != 5 {
		t.Errorf("fitLabel truncated width = %d, want 5", len([]rune(got)))
	}
}
