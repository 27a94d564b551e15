package sanitize

import "testing"

func TestExpressionStripsPrefixes(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"math.sqrt(16)", "sqrt(16)"},
		{"Math.sqrt(16)", "sqrt(16)"},
		{"np.pi * 2", "pi * 2"},
		{"numpy.sin(numpy.pi / 2)", "sin(pi / 2)"},
		{"math.sqrt(16) + np.log(math.e)", "sqrt(16) + log(e)"},
		// removing one prefix splices a new one together
		{"mMath.ath.sqrt(4)", "sqrt(4)"},
		{"nnp.p.pi", "pi"},
		{"numath.mpy.sin(1)", "sin(1)"},
		{"2 + 2", "2 + 2"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Expression(tc.in); got != tc.want {
			t.Fatalf("Expression(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestExpressionIdempotent(t *testing.T) {
	inputs := []string{
		"math.sqrt(16)",
		"np.pi * numpy.e",
		"sqrt(16)",
		"1/0",
		"Math.Math.sqrt(4)",
		"mMath.ath.sqrt(4)",
		"nnp.p.pi",
		"nunumpy.mpy.e",
	}
	for _, in := range inputs {
		once := Expression(in)
		twice := Expression(once)
		if once != twice {
			t.Fatalf("Expression not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestExpressionNeverGrows(t *testing.T) {
	in := "math.sqrt(Math.abs(np.pi))"
	if got := Expression(in); len(got) > len(in) {
		t.Fatalf("sanitized %q longer than input", got)
	}
}
