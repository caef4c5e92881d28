package models

import "time"

// Turn roles as replayed to the reasoning engine.
const (
	RoleCaller    = "caller"
	RoleAssistant = "assistant"
)

// Call session states.
const (
	StateGreeting   = "greeting"
	StateListening  = "listening"
	StateReasoning  = "reasoning"
	StateResponding = "responding"
	StateTerminated = "terminated"
)

// Turn is one utterance within a call, either from the caller or from the
// assistant. Order is meaningful: history is replayed verbatim each turn.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// CallSession is the conversational state of one in-progress phone call.
// The call ID and the verified caller number come from the telephony
// transport. Only the session store mutates a session.
type CallSession struct {
	ID          string    `json:"id"`
	CallerPhone string    `json:"callerPhone"`
	State       string    `json:"state"`
	History     []Turn    `json:"history"`
	LastActive  time.Time `json:"lastActive"`
}
