package sprite

import "testing"

func TestObjectKeyNormalization(t *testing.T) {
	cases := []struct {
		prompt string
		want   string
	}{
		{"a donut with pink frosting", "a donut with pink frosting"},
		{"  A Donut   with Pink   frosting  ", "a donut with pink frosting"},
		{"A\tDonut\nwith pink frosting", "a donut with pink frosting"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := ObjectKey(tc.prompt); got != tc.want {
			t.Errorf("ObjectKey(%q) = %q, want %q", tc.prompt, got, tc.want)
		}
	}
}

func TestObjectKeyEquivalence(t *testing.T) {
	pairs := [][2]string{
		{"A Donut", "a   donut"},
		{"oak barrel ", " OAK BARREL"},
	}
	for _, pair := range pairs {
		if ObjectKey(pair[0]) != ObjectKey(pair[1]) {
			t.Errorf("prompts %q and %q must normalize to the same key", pair[0], pair[1])
		}
	}
}
