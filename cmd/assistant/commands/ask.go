// ABOUTME: Ask command running one question answering turn from the CLI
// ABOUTME: Useful for smoke testing an assistant's knowledge base
package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	askAssistant    string
	askConversation string
)

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask an assistant a question",
		Long: `Ask an assistant a question

Runs one full turn: retrieves matching knowledge base chunks, calls the
model with the session history, and prints the completion. Reusing the
same --conversation id keeps context across invocations.`,
		Args: cobra.ExactArgs(1),
		RunE: runAsk,
		Example: `  assistant ask "What is the refund policy?" --assistant acme

  # Continue an earlier conversation
  assistant ask "And for digital goods?" --assistant acme --conversation 42`,
	}

	cmd.Flags().StringVar(&askAssistant, "assistant", "", "Assistant id (defaults to ASSISTANT_DEFAULT_ID)")
	cmd.Flags().StringVar(&askConversation, "conversation", "", "Conversation id (random when omitted)")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	p, err := newPipeline()
	if err != nil {
		return err
	}

	assistantID := askAssistant
	if assistantID == "" {
		assistantID = p.cfg.DefaultAssistant
	}
	conversationID := askConversation
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	result, err := p.orchestrator.Answer(cmd.Context(), assistantID, conversationID, args[0])
	if err != nil {
		return fmt.Errorf("answering question: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Completion)

	if verbose && len(result.Sources) > 0 {
		color.Cyan("\nSources:")
		for _, src := range result.Sources {
			color.Cyan("  %s #%d (score %.3f)", src.Document, src.ChunkIndex, src.Score)
		}
	}
	return nil
}
