package provider

import (
	"context"
	"time"
)

const (
	chatGPTPersona = "Hello! This is a simulated ChatGPT response. I'm not wired to a live backend yet, but I'd be happy to chat once I am."
	claudePersona  = "Hi there! This is a simulated Claude response. My live backend isn't connected yet, but feel free to keep exploring."
)

// Simulated is a canned-reply stand-in for a provider without a live
// backend. It ignores the user text entirely and cannot fail.
type Simulated struct {
	id      ID
	persona string
	delay   time.Duration
}

func NewSimulated(id ID, persona string, delay time.Duration) *Simulated {
	return &Simulated{
		id:      id,
		persona: persona,
		delay:   delay,
	}
}

func (s *Simulated) ID() ID {
	return s.id
}

func (s *Simulated) Respond(ctx context.Context, _ string) string {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-ctx.Done():
		}
	}

	return s.persona
}
