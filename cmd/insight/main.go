// Command insight answers one natural-language question about the
// organization's history. It loads the prepared datasets, registers the
// aggregation tool catalog in-process, and drives a Gemini model through a
// bounded tool-call loop until the model produces a final narrated answer.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/beatanemeth/ai-engeneering-study-mcp/internal/insights"
	"github.com/beatanemeth/ai-engeneering-study-mcp/internal/llm"
	"github.com/beatanemeth/ai-engeneering-study-mcp/internal/tools"
)

const (
	defaultModel    = "gemini-1.5-flash"
	defaultQuestion = "How many participants did we have in 2024 total, and which was the biggest event?"

	// maxToolCalls bounds the loop so a confused model cannot spin forever.
	maxToolCalls = 5
)

func main() {
	question := flag.String("question", defaultQuestion, "The question to answer over the cached datasets")
	dataDir := flag.String("data", "", "Directory holding the prepared dataset files (default: data_prepared)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: No .env file found, relying on system environment variables.")
	}

	dir := *dataDir
	if dir == "" {
		dir = os.Getenv("INSIGHTHUB_DATA_DIR")
	}
	if dir == "" {
		dir = "data_prepared"
	}

	hub, err := insights.NewHub(dir, insights.DefaultSources())
	if err != nil {
		log.Fatalf("❌ FATAL: Could not load datasets: %v", err)
	}

	manager := tools.NewInsightManager(hub)
	log.Printf("✅ Tool catalog ready with %d tools.", manager.Count())

	modelID := os.Getenv("GEMINI_MODEL")
	if modelID == "" {
		modelID = defaultModel
	}
	ctx := context.Background()
	client, err := llm.NewGeminiClient(ctx, os.Getenv("GEMINI_API_KEY"), modelID)
	if err != nil {
		log.Fatalf("❌ FATAL: Could not create Gemini client: %v", err)
	}
	defer client.Close()

	fmt.Printf("\n[User]: %s\n", *question)

	answer, usage, err := runToolLoop(ctx, client, manager, modelID, *question)
	if err != nil {
		log.Fatalf("❌ FATAL: %v", err)
	}

	fmt.Printf("\n[AI]: %s\n", answer)
	log.Printf("Tokens used: %d prompt, %d completion.", usage.PromptTokens, usage.CompletionTokens)
}

// runToolLoop alternates model turns and tool executions until the model
// answers without requesting a tool, or the call budget runs out.
func runToolLoop(
	ctx context.Context,
	client llm.Client,
	manager *tools.Manager,
	modelID string,
	question string,
) (string, llm.Usage, error) {
	var cumulativeUsage llm.Usage
	messages := []llm.Message{{Role: llm.RoleUser, Content: question}}
	config := &llm.GenerationConfig{Model: modelID}

	for i := 0; i < maxToolCalls; i++ {
		result, err := client.Generate(ctx, messages, config, manager.Definitions())
		if err != nil {
			return "", cumulativeUsage, fmt.Errorf("LLM generation failed during tool loop: %w", err)
		}
		cumulativeUsage.Add(result.Usage)

		if len(result.ToolCalls) == 0 {
			return result.Content, cumulativeUsage, nil
		}

		messages = append(messages, llm.Message{
			Role:      llm.RoleAssistant,
			Content:   result.Content,
			ToolCalls: result.ToolCalls,
		})
		for _, call := range result.ToolCalls {
			log.Printf("🛠️ Calling tool: %s with %s", call.Function.Name, call.Function.Arguments)
			toolResult, err := manager.Execute(call.Function.Name, call.Function.Arguments)
			if err != nil {
				// The model can often recover from a bad argument payload if
				// it sees what went wrong.
				toolResult = fmt.Sprintf(`{"error": "executing %s: %v"}`, call.Function.Name, err)
			}
			messages = append(messages, llm.Message{
				Role:     llm.RoleTool,
				ToolName: call.Function.Name,
				Content:  toolResult,
			})
		}
	}
	return "", cumulativeUsage, errors.New("exceeded maximum number of tool calls")
}
