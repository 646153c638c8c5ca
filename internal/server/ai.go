package server

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"physioblog/pkg/ai"
	"physioblog/pkg/domain"
)

type chatRequest struct {
	Messages []domain.ChatMessage `json:"messages"`
	Model    ai.TierKey           `json:"model"`
}

type blogQuestionRequest struct {
	Question    string     `json:"question"`
	BlogContent string     `json:"blogContent"`
	Model       ai.TierKey `json:"model"`
}

type blogQuestionResponse struct {
	Success bool       `json:"success"`
	Answer  string     `json:"answer"`
	Model   ai.TierKey `json:"model"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if !s.allowRate(w, r) {
		return
	}
	var req chatRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	res, err := s.app.Chat(r.Context(), req.Messages, req.Model)
	if err != nil {
		writeAppError(w, r, err, "failed to generate response")
		return
	}
	writeData(w, http.StatusOK, res)
}

func (s *Server) handleBlogQuestion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if !s.allowRate(w, r) {
		return
	}
	var req blogQuestionRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	res, err := s.app.BlogQuestion(r.Context(), req.Question, req.BlogContent, req.Model)
	if err != nil {
		writeAppError(w, r, err, "failed to answer question")
		return
	}
	writeJSON(w, http.StatusOK, blogQuestionResponse{Success: true, Answer: res.Response, Model: res.Tier})
}

func (s *Server) handleAIHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"features": map[string]bool{
			"llmConfigured": s.app.LLMConfigured(),
		},
		"models": s.app.Tiers(),
	})
}
