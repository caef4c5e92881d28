package reasoning

import (
	"context"

	"frontdesk/models"
)

// EngineReply is one reasoning-engine response: free-form text, a list of
// requested tool invocations, or both.
type EngineReply struct {
	Text      string
	ToolCalls []models.ToolInvocation
}

// Engine decides the next assistant reply from the conversation so far.
// The history must end with the caller turn being answered.
type Engine interface {
	Reply(ctx context.Context, history []models.Turn) (*EngineReply, error)
}
