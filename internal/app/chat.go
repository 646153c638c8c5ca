package app

import (
	"context"
	"strings"

	"physioblog/pkg/ai"
	"physioblog/pkg/domain"
)

// ChatResult carries the completion plus the tier that served it.
type ChatResult struct {
	Response string     `json:"response"`
	Tier     ai.TierKey `json:"model"`
	Model    string     `json:"modelName"`
	Usage    ai.Usage   `json:"usage"`
}

// Chat routes a conversation to a model tier and returns the completion.
// When tier is empty the last user message picks the tier.
func (a *App) Chat(ctx context.Context, messages []domain.ChatMessage, tier ai.TierKey) (ChatResult, error) {
	if a.gateway == nil {
		return ChatResult{}, ErrChatNotConfigured
	}
	if len(messages) == 0 {
		return ChatResult{}, validationf("messages are required")
	}
	if tier == "" {
		tier = ai.Classify(lastUserContent(messages))
	}
	model, err := a.resolveModel(tier)
	if err != nil {
		return ChatResult{}, err
	}
	completion, err := a.gateway.Complete(ctx, messages, model.BackendName)
	if err != nil {
		return ChatResult{}, err
	}
	return ChatResult{
		Response: completion.Text,
		Tier:     model.Key,
		Model:    model.DisplayName,
		Usage:    completion.Usage,
	}, nil
}

// BlogQuestion answers a reader question about a post, grounded in the
// post's content.
func (a *App) BlogQuestion(ctx context.Context, question, blogContent string, tier ai.TierKey) (ChatResult, error) {
	if a.gateway == nil {
		return ChatResult{}, ErrChatNotConfigured
	}
	if strings.TrimSpace(question) == "" {
		return ChatResult{}, validationf("question is required")
	}
	if strings.TrimSpace(blogContent) == "" {
		return ChatResult{}, validationf("blog content is required")
	}
	if tier == "" {
		tier = ai.Classify(question)
	}
	model, err := a.resolveModel(tier)
	if err != nil {
		return ChatResult{}, err
	}
	completion, err := a.gateway.AnswerBlogQuestion(ctx, question, blogContent, model.BackendName)
	if err != nil {
		return ChatResult{}, err
	}
	return ChatResult{
		Response: completion.Text,
		Tier:     model.Key,
		Model:    model.DisplayName,
		Usage:    completion.Usage,
	}, nil
}

// resolveModel accepts either a tier key or a raw backend model name, so
// clients pinned to a specific model keep working.
func (a *App) resolveModel(tier ai.TierKey) (ai.ModelTier, error) {
	model, err := a.registry.Lookup(tier)
	if err == nil {
		return model, nil
	}
	if key, ok := a.registry.ReverseLookup(string(tier)); ok {
		return a.registry.Lookup(key)
	}
	return ai.ModelTier{}, validationf("unknown model tier %q", tier)
}

func lastUserContent(messages []domain.ChatMessage) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == domain.RoleUser {
			return messages[i].Content
		}
	}
	return messages[len(messages)-1].Content
}
