package assistant

import (
	"fmt"

	"github.com/MrSnakeDoc/ytdown/internal/i18n"
)

// SystemPrompt is the fixed instruction sent with every message.
func SystemPrompt(lang i18n.Lang) string {
	return fmt.Sprintf("You are Soraa-AI, a helpful assistant for Ytdown Soraa. Current language: %s. "+
		"Keep it very short (max 20 words). Be professional.", lang)
}
