package texture

import (
	"testing"

	"github.com/JoeJoeTV/picture-perfector/pkg/core"
)

func TestCheckerboard_Alternates(t *testing.T) {
	black := core.Zero
	white := core.One
	c := NewCheckerboard(black, white, 1)

	if got := c.Evaluate([2]float64{0.1, 0.1}, core.Zero); got != black {
		t.Errorf("(0.1,0.1) = %v, want black", got)
	}
	if got := c.Evaluate([2]float64{1.1, 0.1}, core.Zero); got != white {
		t.Errorf("(1.1,0.1) = %v, want white", got)
	}
}

func TestEmission_OneSidedClamp(t *testing.T) {
	e := NewEmission(NewConstant(core.One))

	above := core.NewVec3(0, 0, 1)
	below := core.NewVec3(0, 0, -1)

	if got := e.Evaluate([2]float64{}, above); got != core.One {
		t.Errorf("above surface = %v, want white", got)
	}
	if got := e.Evaluate([2]float64{}, below); got != core.Zero {
		t.Errorf("below surface = %v, want zero", got)
	}
}
