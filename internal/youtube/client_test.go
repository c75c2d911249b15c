package youtube

import "testing"

func TestParseDurationSeconds(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"PT45S", 45},
		{"PT1M30S", 90},
		{"PT10M", 600},
		{"PT2H15M30S", 8130},
		{"PT1H", 3600},
		{"", 0},
		{"garbage", 0},
	}
	for _, tc := range cases {
		if got := ParseDurationSeconds(tc.in); got != tc.want {
			t.Errorf("ParseDurationSeconds(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestValidVideoID(t *testing.T) {
	valid := []string{"dQw4w9WgXcQ", "abc_DEF-123"}
	invalid := []string{"", "short", "waytoolongvideoid", "has spaces!", "dQw4w9WgXc$"}

	for _, id := range valid {
		if !ValidVideoID(id) {
			t.Errorf("ValidVideoID(%q) = false, want true", id)
		}
	}
	for _, id := range invalid {
		if ValidVideoID(id) {
			t.Errorf("ValidVideoID(%q) = true, want false", id)
		}
	}
}
