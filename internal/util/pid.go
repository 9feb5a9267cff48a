package util

import "math"

type PidLoop struct {
	// Proportional Constant
	p float64
	// Integral Constant
	i float64
	// Derivative Constant
	d float64
	// Minimum output value
	outMin float64
	// Maximum output value
	outMax float64
	// absolute limit of the integral term, 0 means unlimited
	integralLimit float64

	// error of the previous loop
	lastError float64
	// integral from previous loop + error, i.e. integral error
	integral float64
	// last output value
	lastOutput float64
	// whether lastError holds a real measurement
	initialized bool
}

func NewPidLoop(p, i, d, min, max float64) *PidLoop {
	return &PidLoop{
		p:      p,
		i:      i,
		d:      d,
		outMin: min,
		outMax: max,
	}
}

// WithIntegralLimit additionally clamps the accumulated integral to [-limit, limit].
func (p *PidLoop) WithIntegralLimit(limit float64) *PidLoop {
	p.integralLimit = math.Abs(limit)
	return p
}

// Loop advances the pid loop by dt seconds
func (p *PidLoop) Loop(target float64, measured float64, dt float64) float64 {
	if dt <= 0 {
		return p.lastOutput
	}

	err := target - measured

	// --- P Term ---
	proportionalTerm := p.p * err

	// --- D Term ---
	derivativeTerm := 0.0
	if p.initialized {
		derivativeTerm = p.d * (err - p.lastError) / dt
	}

	// --- I Term (conditional integration) ---
	candidate := p.integral + err*dt
	if p.integralLimit > 0 {
		candidate = Coerce(candidate, -p.integralLimit, p.integralLimit)
	}
	unclamped := proportionalTerm + p.i*candidate + derivativeTerm
	saturatedHigh := unclamped > p.outMax && err > 0
	saturatedLow := unclamped < p.outMin && err < 0
	if !saturatedHigh && !saturatedLow {
		p.integral = candidate
	}
	integralTerm := p.i * p.integral

	// --- Combine & Clamp ---
	output := Coerce(proportionalTerm+integralTerm+derivativeTerm, p.outMin, p.outMax)

	// --- Update State for Next Loop ---
	p.lastError = err
	p.lastOutput = output
	p.initialized = true

	return output
}

// Reset drops all accumulated state, the next Loop behaves like the first one.
func (p *PidLoop) Reset() {
	p.integral = 0
	p.lastError = 0
	p.lastOutput = 0
	p.initialized = false
}

func (p *PidLoop) Integral() float64 {
	return p.integral
}

func (p *PidLoop) LastError() float64 {
	return p.lastError
}

func (p *PidLoop) LastOutput() float64 {
	return p.lastOutput
}
