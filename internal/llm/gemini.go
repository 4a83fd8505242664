package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/beatanemeth/ai-engeneering-study-mcp/internal/tools"
)

// GeminiClient drives a Google Gemini model through the genai SDK.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

var _ Client = (*GeminiClient)(nil)

func NewGeminiClient(ctx context.Context, apiKey, modelID string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key cannot be empty")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: client.GenerativeModel(modelID)}, nil
}

// Close releases the underlying API connection.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// Generate performs a blocking chat request. The last message in the
// conversation is the new turn; everything before it becomes chat history.
func (c *GeminiClient) Generate(
	ctx context.Context,
	messages []Message,
	config *GenerationConfig,
	availableTools []tools.Tool,
) (*GenerationResult, error) {
	if len(messages) == 0 {
		return nil, errors.New("conversation must contain at least one message")
	}

	c.configureModel(config, availableTools)

	contents := toGeminiContents(messages)
	chat := c.model.StartChat()
	chat.History = contents[:len(contents)-1]

	last := contents[len(contents)-1]
	resp, err := chat.SendMessage(ctx, last.Parts...)
	if err != nil {
		return nil, fmt.Errorf("gemini API call failed: %w", err)
	}
	return parseGeminiResponse(resp)
}

func (c *GeminiClient) configureModel(config *GenerationConfig, availableTools []tools.Tool) {
	maxTokens := 4096
	if config != nil {
		if config.Temperature != nil {
			c.model.SetTemperature(*config.Temperature)
		}
		if config.MaxTokens > 0 {
			maxTokens = config.MaxTokens
		}
	}
	c.model.SetMaxOutputTokens(int32(maxTokens))

	if len(availableTools) > 0 {
		c.model.Tools = toGeminiTools(availableTools)
	} else {
		c.model.Tools = nil
	}
}

// toGeminiTools converts the registry's tool definitions to the SDK format.
func toGeminiTools(defs []tools.Tool) []*genai.Tool {
	decls := make([]*genai.FunctionDeclaration, 0, len(defs))
	for _, t := range defs {
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        t.Function.Name,
			Description: t.Function.Description,
			Parameters:  convertSchema(t.Function.Parameters),
		})
	}
	return []*genai.Tool{{FunctionDeclarations: decls}}
}

func convertSchema(s tools.JSONSchema) *genai.Schema {
	out := &genai.Schema{
		Description: s.Description,
		Required:    s.Required,
	}
	switch s.Type {
	case "object":
		out.Type = genai.TypeObject
	case "string":
		out.Type = genai.TypeString
	case "number":
		out.Type = genai.TypeNumber
	case "integer":
		out.Type = genai.TypeInteger
	}
	if s.Properties != nil {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for k, v := range s.Properties {
			out.Properties[k] = convertSchema(*v)
		}
	}
	return out
}

// toGeminiContents converts the conversation into SDK contents. Consecutive
// tool-result messages are merged into a single "function" content so that
// all responses to one round of parallel tool calls arrive in one turn.
func toGeminiContents(messages []Message) []*genai.Content {
	var contents []*genai.Content
	for _, msg := range messages {
		switch msg.Role {
		case RoleAssistant:
			content := &genai.Content{Role: "model"}
			if msg.Content != "" {
				content.Parts = append(content.Parts, genai.Text(msg.Content))
			}
			for _, call := range msg.ToolCalls {
				content.Parts = append(content.Parts, genai.FunctionCall{
					Name: call.Function.Name,
					Args: decodeArgsMap(call.Function.Arguments),
				})
			}
			contents = append(contents, content)
		case RoleTool:
			part := genai.FunctionResponse{
				Name:     msg.ToolName,
				Response: decodeArgsMap(msg.Content),
			}
			if n := len(contents); n > 0 && contents[n-1].Role == "function" {
				contents[n-1].Parts = append(contents[n-1].Parts, part)
			} else {
				contents = append(contents, &genai.Content{Role: "function", Parts: []genai.Part{part}})
			}
		default:
			contents = append(contents, &genai.Content{
				Role:  "user",
				Parts: []genai.Part{genai.Text(msg.Content)},
			})
		}
	}
	return contents
}

// decodeArgsMap turns a JSON object string into the map shape the SDK wants.
// Non-object payloads are wrapped so nothing is silently dropped.
func decodeArgsMap(payload string) map[string]any {
	if payload == "" {
		return map[string]any{}
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(payload), &m); err != nil {
		return map[string]any{"result": payload}
	}
	return m
}

func parseGeminiResponse(resp *genai.GenerateContentResponse) (*GenerationResult, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, errors.New("no content returned from Gemini")
	}

	var contentBuilder strings.Builder
	var toolCalls []*tools.ToolCall
	for _, part := range resp.Candidates[0].Content.Parts {
		switch v := part.(type) {
		case genai.Text:
			contentBuilder.WriteString(string(v))
		case genai.FunctionCall:
			args, err := json.Marshal(v.Args)
			if err != nil {
				log.Printf("WARNING: could not marshal tool call args for %s: %v", v.Name, err)
				continue
			}
			toolCalls = append(toolCalls, &tools.ToolCall{
				ID:   fmt.Sprintf("gemini-toolcall-%s", v.Name),
				Type: tools.ToolTypeFunction,
				Function: tools.ToolCallFunction{
					Name:      v.Name,
					Arguments: string(args),
				},
			})
		}
	}

	result := &GenerationResult{
		Content:   strings.TrimSpace(contentBuilder.String()),
		ToolCalls: toolCalls,
	}
	if resp.UsageMetadata != nil {
		result.Usage = Usage{
			PromptTokens:     int(resp.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(resp.UsageMetadata.TotalTokenCount),
		}
	}
	return result, nil
}
