package ai

import (
	"context"
	"fmt"

	"physioblog/pkg/domain"
)

const blogQuestionSystemPrompt = `You are an AI assistant for a medical science and physiotherapy blog. ` +
	`Your purpose is to answer questions about the blog content provided. ` +
	`Base your answers strictly on the blog content given, and if the information isn't available, ` +
	`politely say you don't have that information.`

const medicalSystemPrompt = `You are a helpful assistant specialized in medical science and physiotherapy. ` +
	`Provide evidence-based, accurate information related to physiotherapy, rehabilitation medicine, ` +
	`movement science, and musculoskeletal health. Be professional, clear, and cite when possible. ` +
	`Always emphasize the importance of consulting with healthcare professionals for personalized treatment.`

const adviceSystemPrompt = `You are a specialized assistant for physiotherapy and rehabilitation. ` +
	`Provide evidence-based advice related to physiotherapy, exercise recommendations, ` +
	`and rehabilitation techniques. Always emphasize the importance of consulting with ` +
	`healthcare professionals for personalized treatment.`

// AnswerBlogQuestion answers a question strictly from the supplied blog text.
func (c *Client) AnswerBlogQuestion(ctx context.Context, question, blogContent, model string) (Completion, error) {
	user := fmt.Sprintf("Blog Content: %s\n\nQuestion: %s\n\nPlease provide a detailed answer based on the blog content.", blogContent, question)
	return c.withSystemPrompt(ctx, blogQuestionSystemPrompt, user, model)
}

// AnswerMedicalQuestion answers a general physiotherapy question with the
// standing consult-a-professional caveat.
func (c *Client) AnswerMedicalQuestion(ctx context.Context, question, model string) (Completion, error) {
	return c.withSystemPrompt(ctx, medicalSystemPrompt, question, model)
}

// AnalyzeContent asks the model for an analysis of medical or physiotherapy
// material, for example a draft blog post.
func (c *Client) AnalyzeContent(ctx context.Context, content, model string) (Completion, error) {
	user := fmt.Sprintf("Analyze the following content related to medical science and physiotherapy:\n\n%s", content)
	return c.withSystemPrompt(ctx, medicalSystemPrompt, user, model)
}

// AdviseCondition generates exercise and recovery guidance for a condition.
func (c *Client) AdviseCondition(ctx context.Context, condition, model string) (Completion, error) {
	user := fmt.Sprintf("Provide physiotherapy advice for: %s. Include general exercises, precautions, and recovery tips.", condition)
	return c.withSystemPrompt(ctx, adviceSystemPrompt, user, model)
}

func (c *Client) withSystemPrompt(ctx context.Context, system, user, model string) (Completion, error) {
	messages := []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: system},
		{Role: domain.RoleUser, Content: user},
	}
	return c.Complete(ctx, messages, model)
}
