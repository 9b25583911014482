// ABOUTME: System prompt construction for query turns
// ABOUTME: Interpolates the retrieval fragment at its designated position
package chat

import (
	"fmt"

	"github.com/mpardo/assistant-backend/internal/models"
)

// personaPrompt is the fixed persona/instructions block. The retrieval
// fragment is interpolated verbatim at the %s position.
const personaPrompt = `You are the team's knowledge assistant. Answer the user's question
accurately and helpfully, grounding every answer in the knowledge base below.

Guidelines:
- Answer only from the knowledge base and the conversation so far
- When the user gives figures, use them; when they give none, do not invent any
- Keep answers concise and in the user's language
- If the knowledge base does not cover the question, say so plainly

KNOWLEDGE BASE START:

%s

KNOWLEDGE BASE END
`

// BuildSystemPrompt returns the single system message for a turn, with the
// retrieval fragment injected into the persona block.
func BuildSystemPrompt(fragment string) models.ChatMessage {
	return models.ChatMessage{
		Role:    models.RoleSystem,
		Content: fmt.Sprintf(personaPrompt, fragment),
	}
}
