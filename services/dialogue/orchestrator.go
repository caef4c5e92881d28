package dialogue

import (
	"context"
	"errors"

	"frontdesk/models"
	"frontdesk/services/reasoning"
	"frontdesk/services/session"
	"frontdesk/utils"

	"go.uber.org/zap"
)

// ReplyEngineFallback is spoken when the reasoning engine fails or returns
// nothing usable. The turn is not retried; the call keeps moving.
const ReplyEngineFallback = "How else can I assist you?"

// Service runs one conversation turn per delivered utterance.
type Service interface {
	StartCall(ctx context.Context, callID, callerPhone string) error
	HandleTurn(ctx context.Context, callID, callerPhone, utterance string) (string, error)
	EndCall(ctx context.Context, callID string) error
}

// Orchestrator is the per-call dialogue loop: append the caller utterance,
// consult the reasoning engine with the tool schema, dispatch any requested
// tools, and produce the reply to synthesize back.
type Orchestrator struct {
	Sessions   session.Store
	Engine     reasoning.Engine
	Dispatcher *Dispatcher
}

// StartCall creates the session for a newly connected call.
func (o *Orchestrator) StartCall(ctx context.Context, callID, callerPhone string) error {
	if _, err := o.Sessions.GetOrCreate(ctx, callID, callerPhone); err != nil {
		return err
	}
	return o.Sessions.SetState(ctx, callID, models.StateListening)
}

// HandleTurn processes one caller utterance and returns the reply utterance.
// Exactly two turns are appended per call: the caller's and the assistant's,
// in that order. Engine failures degrade to a spoken fallback; only a broken
// session store surfaces as an error.
func (o *Orchestrator) HandleTurn(ctx context.Context, callID, callerPhone, utterance string) (string, error) {
	logger := utils.GetLogger()

	sess, err := o.Sessions.GetOrCreate(ctx, callID, callerPhone)
	if err != nil {
		return "", err
	}
	if err := o.Sessions.Append(ctx, callID, models.Turn{Role: models.RoleCaller, Text: utterance}); err != nil {
		return "", err
	}
	if err := o.Sessions.SetState(ctx, callID, models.StateReasoning); err != nil {
		return "", err
	}

	history, err := o.Sessions.History(ctx, callID)
	if err != nil {
		return "", err
	}

	reply := o.resolveReply(ctx, history, sess.CallerPhone)

	if err := o.Sessions.SetState(ctx, callID, models.StateResponding); err != nil {
		return "", err
	}
	if err := o.Sessions.Append(ctx, callID, models.Turn{Role: models.RoleAssistant, Text: reply}); err != nil {
		return "", err
	}
	if err := o.Sessions.SetState(ctx, callID, models.StateListening); err != nil {
		return "", err
	}

	logger.Debug("turn handled", zap.String("callID", callID), zap.Int("historyLen", len(history)+1))
	return reply, nil
}

// resolveReply submits the history to the engine and renders the reply. When
// the engine requests several tools in one response they are dispatched in
// order and the last rendered text becomes the reply.
func (o *Orchestrator) resolveReply(ctx context.Context, history []models.Turn, callerPhone string) string {
	engineReply, err := o.Engine.Reply(ctx, history)
	if err != nil {
		utils.GetLogger().Warn("resolveReply: engine failure, falling back", zap.Error(err))
		return ReplyEngineFallback
	}

	if len(engineReply.ToolCalls) > 0 {
		var reply string
		for _, inv := range engineReply.ToolCalls {
			reply = o.Dispatcher.Dispatch(ctx, inv, callerPhone)
		}
		return reply
	}

	if engineReply.Text == "" {
		return ReplyEngineFallback
	}
	return engineReply.Text
}

// EndCall marks the session terminated and evicts it.
func (o *Orchestrator) EndCall(ctx context.Context, callID string) error {
	// A missing session is fine here; the janitor may have beaten us.
	if err := o.Sessions.SetState(ctx, callID, models.StateTerminated); err != nil && !errors.Is(err, session.ErrUnknownSession) {
		return err
	}
	return o.Sessions.Evict(ctx, callID)
}
