package orient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntegrator_FirstUpdateRecordsBaseline(t *testing.T) {
	t.Parallel()

	var i Integrator
	got := i.Update(10, 100)
	assert.Zero(t, got, "first update has no interval to integrate over")

	got = i.Update(11, 100)
	assert.InDelta(t, 100.0, got, 1e-12)
}

func TestIntegrator_AccumulatesRateOverTime(t *testing.T) {
	t.Parallel()

	var i Integrator
	i.Update(0, 0)
	i.Update(1, 2)  // +2
	i.Update(3, 5)  // +10
	got := i.Update(3.5, -4) // -2

	assert.InDelta(t, 10.0, got, 1e-12)
	assert.InDelta(t, 10.0, i.Integral(), 1e-12)
}

func TestIntegrator_SetIntegralRebasesAccumulation(t *testing.T) {
	t.Parallel()

	var i Integrator
	i.Update(0, 0)
	i.Update(1, 10)
	i.SetIntegral(0)

	got := i.Update(2, 3)
	assert.InDelta(t, 3.0, got, 1e-12, "integration continues from the replaced value")
}
