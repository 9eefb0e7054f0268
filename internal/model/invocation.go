package model

import (
	"fmt"
	"time"
)

// Invocation records a single host bridge command call
type Invocation struct {
	ID         string
	Command    string
	Status     InvocationStatus
	LastError  string    // error message if the call failed
	Target     string    // path or URL the call acted on, if any
	StartedAt  time.Time // when the call was received
	FinishedAt time.Time // when the handler returned
}

// Elapsed returns how long the invocation ran, or zero while it is active
func (inv *Invocation) Elapsed() time.Duration {
	if inv.FinishedAt.IsZero() || inv.StartedAt.IsZero() {
		return 0
	}
	return inv.FinishedAt.Sub(inv.StartedAt)
}

// GetElapsedString returns the elapsed time rounded to milliseconds, or a dash when unknown
func (inv *Invocation) GetElapsedString() string {
	elapsed := inv.Elapsed()
	if elapsed <= 0 {
		return "—"
	}
	if elapsed < time.Millisecond {
		return "<1ms"
	}
	return elapsed.Round(time.Millisecond).String()
}

// GetDisplayTitle returns "command target" or just the command when there is no target
func (inv *Invocation) GetDisplayTitle() string {
	if inv.Target == "" {
		return inv.Command
	}
	return fmt.Sprintf("%s %s", inv.Command, inv.Target)
}
