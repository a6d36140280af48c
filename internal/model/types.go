// Package model defines shared data structures.
package model

import "time"

// Config is the resolved, read-only configuration for one invocation.
type Config struct {
	WPM            int
	WPMStep        int
	Countdown      int
	Model          string
	APIBaseURL     string
	APIKey         string
	RequestTimeout time.Duration
	Debug          bool
	Keys           KeyBindings
}

// KeyBindings maps logical actions to single physical keys.
type KeyBindings struct {
	Quit        string
	Pause       string
	IncreaseWPM string
	DecreaseWPM string
}

// Unit is one piece of text shown per scheduler tick.
type Unit struct {
	Text string
}

// Status is what the renderer paints in the status line.
type Status struct {
	Mode      Mode
	WPM       int
	Position  int
	Total     int
	Countdown int
}

// Frame is a single unit display.
type Frame struct {
	Unit   Unit
	Index  int
	Status Status
}

// Result summarizes a finished or abandoned session.
type Result struct {
	Mode        Mode
	Position    int
	Total       int
	FinalWPM    int
	StartedAt   time.Time
	EndedAt     time.Time
	Paused      time.Duration
	Pauses      int
	RateHistory []int
}

// Elapsed returns the wall-clock duration of the session.
func (r Result) Elapsed() time.Duration {
	if r.EndedAt.Before(r.StartedAt) {
		return 0
	}
	return r.EndedAt.Sub(r.StartedAt)
}

// Active returns the elapsed duration minus time spent paused.
func (r Result) Active() time.Duration {
	active := r.Elapsed() - r.Paused
	if active < 0 {
		return 0
	}
	return active
}
