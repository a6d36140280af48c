// Package rate holds the words-per-minute setting and derives inter-unit delays.
package rate

import (
	"math"
	"time"
)

const (
	// Floor is the lowest rate a Controller will reach.
	Floor = 1
	// DefaultWPM is used when no rate is configured.
	DefaultWPM = 258
	// DefaultStep is used when no step is configured.
	DefaultStep = 5

	minDelay = time.Millisecond
)

// Controller tracks the current rate. It is not safe for concurrent use; the
// scheduler is its only writer.
type Controller struct {
	wpm  int
	step int
}

// New returns a Controller. Values below 1 are raised to 1.
func New(initial, step int) *Controller {
	if initial < Floor {
		initial = Floor
	}
	if step < 1 {
		step = 1
	}
	return &Controller{wpm: initial, step: step}
}

// WPM returns the current rate.
func (c *Controller) WPM() int {
	return c.wpm
}

// Step returns the configured increment.
func (c *Controller) Step() int {
	return c.step
}

// Increment raises the rate by one step, saturating instead of overflowing.
func (c *Controller) Increment() {
	if c.wpm > math.MaxInt-c.step {
		c.wpm = math.MaxInt
		return
	}
	c.wpm += c.step
}

// Decrement lowers the rate by one step, never below Floor.
func (c *Controller) Decrement() {
	if c.wpm-c.step < Floor {
		c.wpm = Floor
		return
	}
	c.wpm -= c.step
}

// Delay returns 60000ms divided by the current rate, floored, and at least 1ms.
func (c *Controller) Delay() time.Duration {
	return DelayFor(c.wpm)
}

// DelayFor computes the inter-unit delay for an arbitrary rate.
func DelayFor(wpm int) time.Duration {
	if wpm < Floor {
		wpm = Floor
	}
	d := time.Duration(60000/wpm) * time.Millisecond
	if d < minDelay {
		return minDelay
	}
	return d
}
