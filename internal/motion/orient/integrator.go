package orient

// Integrator accumulates a rate signal over caller-supplied timestamps
// into a running total. It is the drift-prone half of the complementary
// blend: the axis estimators write the corrected estimate back into it so
// integration continues from the blended value.
type Integrator struct {
	value    float64
	prevTime float64
	seeded   bool
}

// Update folds rate over the interval since the previous call into the
// running total and returns it. The first call only records the time
// baseline; there is no interval to integrate over yet.
func (i *Integrator) Update(t, rate float64) float64 {
	if !i.seeded {
		i.seeded = true
		i.prevTime = t
		return i.value
	}

	i.value += rate * (t - i.prevTime)
	i.prevTime = t
	return i.value
}

// Integral returns the running total without advancing it.
func (i *Integrator) Integral() float64 {
	return i.value
}

// SetIntegral replaces the running total. Integration continues from the
// new value at the next Update.
func (i *Integrator) SetIntegral(v float64) {
	i.value = v
}
