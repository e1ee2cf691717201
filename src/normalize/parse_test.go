package normalize

import "testing"

func TestParseFloatOrZero(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"25.50", 25.50},
		{"25,50", 25.50},
		{"1.234,56", 1234.56},
		{" 42 ", 42},
		{"", 0},
		{"n/a", 0},
		{"-", 0},
		{"-3,5", -3.5},
		{"0", 0},
	}

	for _, c := range cases {
		if got := ParseFloatOrZero(c.in); got != c.want {
			t.Errorf("ParseFloatOrZero(%q) = %f, want %f", c.in, got, c.want)
		}
	}
}

func TestKeepRow(t *testing.T) {
	if !keepRow("1", "GARAN") {
		t.Error("Expected a numeric-sequence row to pass the filter")
	}
	if keepRow("No", "GARAN") {
		t.Error("Expected a text sequence cell to be dropped")
	}
	if keepRow("1", "") {
		t.Error("Expected an empty code cell to be dropped")
	}
	if keepRow("1", "Senet") {
		t.Error("Expected a header token in the code cell to be dropped")
	}
	if keepRow("1", "sıra") {
		t.Error("Expected a header token in the code cell to be dropped")
	}
}
