package narrative

import (
	"strings"

	"github.com/seu-repo/clinic-advisor/internal/domain"
)

// AnalysisMessages pairs the tab's instruction template with the profile
// context. It returns false for tabs that carry no narrative.
func AnalysisMessages(kind domain.AnalysisKind, p domain.ClinicProfile) ([]domain.ChatMessage, bool) {
	system, ok := SystemPrompt(kind)
	if !ok {
		return nil, false
	}
	return []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: system},
		{Role: domain.RoleUser, Content: ProfileContext(p)},
	}, true
}

// ChatMessages builds the conversation for a chat turn: system prompt,
// profile context, a canned acknowledgement, the most recent maxHistory
// turns of history and finally the user's message. History turns with
// any role other than user or assistant are dropped.
func ChatMessages(p domain.ClinicProfile, history []domain.ChatMessage, message string, maxHistory int) []domain.ChatMessage {
	kept := make([]domain.ChatMessage, 0, len(history))
	for _, m := range history {
		if m.Role != domain.RoleUser && m.Role != domain.RoleAssistant {
			continue
		}
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		kept = append(kept, m)
	}
	if maxHistory >= 0 && len(kept) > maxHistory {
		kept = kept[len(kept)-maxHistory:]
	}

	msgs := make([]domain.ChatMessage, 0, len(kept)+4)
	msgs = append(msgs,
		domain.ChatMessage{Role: domain.RoleSystem, Content: ChatSystemPrompt},
		domain.ChatMessage{Role: domain.RoleUser, Content: ProfileContext(p)},
		domain.ChatMessage{Role: domain.RoleAssistant, Content: chatAcknowledgement},
	)
	msgs = append(msgs, kept...)
	msgs = append(msgs, domain.ChatMessage{Role: domain.RoleUser, Content: strings.TrimSpace(message)})
	return msgs
}
