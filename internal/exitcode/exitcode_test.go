package exitcode

import "testing"

func TestForPhase(t *testing.T) {
	cases := map[string]int{
		"preflight": ValidationError,
		"schemes":   EvaluateError,
		"evaluate":  CopyError,
		"finalize":  EvaluateError,
	}
	for phase, want := range cases {
		if got := ForPhase(phase); got != want {
			t.Errorf("ForPhase(%q) = %d, want %d", phase, got, want)
		}
	}
}
