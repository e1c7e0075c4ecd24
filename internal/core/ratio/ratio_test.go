package ratio

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestRatio(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		n, d float64
		want float64
	}{
		{"zero denominator", 5, 0, 0},
		{"negative denominator", 5, -1, 0},
		{"plain", 3, 2, 1.5},
		{"zero numerator", 0, 7, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Ratio(tc.n, tc.d); got != tc.want {
				t.Fatalf("Ratio(%v,%v) got %v want %v", tc.n, tc.d, got, tc.want)
			}
		})
	}
}

func TestPercent(t *testing.T) {
	t.Parallel()

	if got := Percent(1, 4); got != 25 {
		t.Fatalf("got %v want 25", got)
	}
	if got := Percent(3, 0); got != 0 {
		t.Fatalf("got %v want 0", got)
	}
}

func TestRoundAndMean(t *testing.T) {
	t.Parallel()

	if Round(2.5) != 3 || Round(2.4) != 2 || Round(0) != 0 {
		t.Fatal("unexpected rounding")
	}
	if Mean(nil) != 0 {
		t.Fatal("mean of nothing should be 0")
	}
	if got := Mean([]float64{50, 0, 100}); got != 50 {
		t.Fatalf("mean got %v want 50", got)
	}
}

func TestRatio_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	properties.Property("ratio never divides by zero", prop.ForAll(
		func(n int) bool { return Of(n, 0) == 0 },
		gen.IntRange(-1000, 1000),
	))

	properties.Property("percent of a part stays within 0..100", prop.ForAll(
		func(d, n int) bool {
			if n > d {
				n = d
			}
			p := Percent(n, d)
			return !math.IsNaN(p) && p >= 0 && p <= 100
		},
		gen.IntRange(0, 500),
		gen.IntRange(0, 500),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
