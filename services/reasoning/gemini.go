package reasoning

import (
	"context"
	"fmt"
	"strings"

	"frontdesk/models"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiEngine drives the conversation through a Gemini model with the two
// booking tools declared.
type GeminiEngine struct {
	model *genai.GenerativeModel
}

// NewGeminiEngine creates the Gemini client and configures the system
// instruction and tool schema.
func NewGeminiEngine(apiKey, modelName, systemPrompt string) (*GeminiEngine, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.7)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}
	model.Tools = []*genai.Tool{{
		FunctionDeclarations: []*genai.FunctionDeclaration{
			{
				Name:        models.ToolCheckSlots,
				Description: "Check available appointment slots for a given date",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"date": {
							Type:        genai.TypeString,
							Description: "Date in YYYY-MM-DD, a weekday name, or 'tomorrow'",
						},
					},
					Required: []string{"date"},
				},
			},
			{
				Name:        models.ToolBookAppointment,
				Description: "Book an appointment",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":    {Type: genai.TypeString},
						"phone":   {Type: genai.TypeString},
						"date":    {Type: genai.TypeString},
						"time":    {Type: genai.TypeString},
						"service": {Type: genai.TypeString},
					},
					Required: []string{"name", "phone", "date", "time", "service"},
				},
			},
		},
	}}

	return &GeminiEngine{model: model}, nil
}

// Reply replays the session history and returns the model's answer for the
// final caller turn.
func (g *GeminiEngine) Reply(ctx context.Context, history []models.Turn) (*EngineReply, error) {
	if len(history) == 0 || history[len(history)-1].Role != models.RoleCaller {
		return nil, fmt.Errorf("history must end with a caller turn")
	}

	chat := g.model.StartChat()
	for _, turn := range history[:len(history)-1] {
		chat.History = append(chat.History, &genai.Content{
			Role:  geminiRole(turn.Role),
			Parts: []genai.Part{genai.Text(turn.Text)},
		})
	}

	resp, err := chat.SendMessage(ctx, genai.Text(history[len(history)-1].Text))
	if err != nil {
		return nil, fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	reply := &EngineReply{}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			sb.WriteString(string(p))
		case genai.FunctionCall:
			reply.ToolCalls = append(reply.ToolCalls, models.ToolInvocation{
				Name: p.Name,
				Args: stringifyArgs(p.Args),
			})
		}
	}
	reply.Text = sb.String()
	return reply, nil
}

func geminiRole(role string) string {
	if role == models.RoleAssistant {
		return "model"
	}
	return "user"
}

// stringifyArgs flattens the loosely-typed argument map; the dispatcher
// validates the result before use.
func stringifyArgs(args map[string]any) map[string]string {
	out := make(map[string]string, len(args))
	for k, v := range args {
		if s, ok := v.(string); ok {
			out[k] = s
			continue
		}
		out[k] = fmt.Sprintf("%v", v)
	}
	return out
}
