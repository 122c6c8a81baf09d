package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/dgi/internal/agent"
	"github.com/wonny/dgi/internal/llm"
	"github.com/wonny/dgi/internal/screening"
	"github.com/wonny/dgi/internal/validation"
	"github.com/wonny/dgi/pkg/config"
	"github.com/wonny/dgi/pkg/logger"
)

const chatSystemPrompt = `You are a dividend growth investing assistant. ` +
	`Use the screen_dividends tool to answer questions about dividend stocks. ` +
	`Yields, payout ratios and growth rates are percentages. ` +
	`Be concise and cite the numbers the tool returns.`

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "AI 채팅 (스크리너 도구 연동)",
	Long: `LLM과 대화하며 배당주 스크리닝을 실행합니다.

이 명령어는:
- OpenAI 또는 Anthropic 모델과 REPL 대화
- 모델이 screen_dividends 도구를 직접 호출
- DGI_LLM_MAX_ITERATIONS로 도구 호출 횟수 제한

Example:
  OPENAI_API_KEY=... go run ./cmd/dgi chat
  DGI_LLM_PROVIDER=anthropic ANTHROPIC_API_KEY=... go run ./cmd/dgi chat`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg)

	provider, err := llm.New(cfg.LLM, log)
	if err != nil {
		return err
	}

	bounds := validation.DefaultBounds().WithPayoutMax(cfg.PayoutBound)
	screener := screening.NewDefault(cfg.DataPath, bounds, log)
	tool := agent.NewScreenerTool(screener, log)

	fmt.Println("=== DGI Chat ===")
	fmt.Printf("Provider: %s (%s)\n", provider.Name(), provider.Model())
	fmt.Println("Ask about dividend stocks, or 'quit' to exit.")
	fmt.Println()

	messages := []llm.Message{{Role: "system", Content: chatSystemPrompt}}
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "quit" || input == "exit" || input == "q" {
			break
		}

		messages = append(messages, llm.Message{Role: "user", Content: input})

		reply, updated, err := runChatTurn(cmd.Context(), provider, tool, messages, cfg.LLM.MaxIterations)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
			// drop the failed turn so the next question starts clean
			messages = messages[:len(messages)-1]
			continue
		}

		messages = updated
		fmt.Println(reply)
		fmt.Println()
	}

	return scanner.Err()
}

// runChatTurn drives one user turn, resolving tool calls until the
// model answers or the iteration budget runs out
func runChatTurn(ctx context.Context, provider llm.Provider, tool *agent.ScreenerTool, messages []llm.Message, maxIterations int) (string, []llm.Message, error) {
	tools := []llm.ToolDefinition{tool.Definition()}

	for i := 0; i < maxIterations; i++ {
		resp, err := provider.Chat(ctx, messages, tools)
		if err != nil {
			return "", nil, err
		}

		if !resp.HasToolCalls() {
			messages = append(messages, llm.Message{Role: "assistant", Content: resp.Content})
			return resp.Content, messages, nil
		}

		messages = append(messages, llm.Message{
			Role:      "assistant",
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})

		for _, call := range resp.ToolCalls {
			messages = append(messages, llm.Message{
				Role:       "tool",
				Content:    executeToolCall(ctx, tool, call),
				ToolCallID: call.ID,
			})
		}
	}

	return "", nil, fmt.Errorf("no final answer after %d tool iterations", maxIterations)
}

func executeToolCall(ctx context.Context, tool *agent.ScreenerTool, call llm.ToolCall) string {
	if call.Name != agent.ToolName {
		return fmt.Sprintf(`[{"error": "unknown tool %q"}]`, call.Name)
	}

	params := agent.DefaultParams()
	if err := json.Unmarshal([]byte(call.Arguments), &params); err != nil {
		return fmt.Sprintf(`[{"error": "invalid tool arguments: %s"}]`, err)
	}

	results := tool.Call(ctx, params)
	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Sprintf(`[{"error": "failed to serialize results: %s"}]`, err)
	}
	return string(data)
}
