package counter

import "testing"

func TestFormat(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{0, "0+"},
		{999, "999+"},
		{1000, "1K+"},
		{1500, "2K+"},
		{2500, "3K+"},
		{1499, "1K+"},
		{999_999, "1000K+"},
		{1_000_000, "1.0M+"},
		{1_250_000, "1.3M+"},
		{2_500_000, "2.5M+"},
		{1_150_000, "1.1M+"},
		{1_450_000, "1.4M+"},
		{1_050_000, "1.1M+"},
		{10_350_000, "10.3M+"},
	}
	for _, c := range cases {
		if got := Format(c.n); got != c.want {
			t.Errorf("Format(%d) = %q, want %q", c.n, got, c.want)
		}
	}
}
