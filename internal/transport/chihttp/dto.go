package chihttp

import (
	"github.com/finlit-labs/expcards/internal/domain"
	askuc "github.com/finlit-labs/expcards/internal/usecase/ask"
)

type askRequest struct {
	Question string `json:"question" validate:"required"`
	Region   string `json:"region" validate:"omitempty,oneof=ca us"`
	Lang     string `json:"lang" validate:"omitempty,oneof=en fr"`
	Demo     bool   `json:"demo"`
	ShowMore bool   `json:"show_more"`
}

type addCardRequest struct {
	Title       string `json:"title" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Tags        string `json:"tags"`
	Content     string `json:"content" validate:"required"`
	ContentLang string `json:"content_lang" validate:"omitempty,oneof=en fr"`
}

type matchResponse struct {
	ID         int64    `json:"id"`
	Title      string   `json:"title"`
	Category   string   `json:"category"`
	Tags       string   `json:"tags"`
	Content    string   `json:"content"`
	Score      float64  `json:"score"`
	Confidence string   `json:"confidence"`
	Why        []string `json:"why"`
}

type askResponse struct {
	Question      string          `json:"question"`
	Matches       []matchResponse `json:"matches"`
	Deferred      []matchResponse `json:"deferred,omitempty"`
	DeferredCount int             `json:"deferred_count"`
	Message       string          `json:"message,omitempty"`
}

type cardResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Tags        string `json:"tags"`
	Content     string `json:"content"`
	ContentLang string `json:"content_lang"`
	CreatedAt   string `json:"created_at"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func matchesToResponse(matches []domain.Match) []matchResponse {
	out := make([]matchResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, matchResponse{
			ID:         m.Card.ID,
			Title:      m.Card.Title,
			Category:   m.Card.Category,
			Tags:       m.Card.Tags,
			Content:    m.Card.Content,
			Score:      m.Score,
			Confidence: string(m.Confidence),
			Why:        m.Why,
		})
	}
	return out
}

func resultToResponse(res askuc.Result, message string) askResponse {
	resp := askResponse{
		Question:      res.Question,
		Matches:       matchesToResponse(res.Visible),
		DeferredCount: res.DeferredCount,
		Message:       message,
	}
	if res.Deferred != nil {
		resp.Deferred = matchesToResponse(res.Deferred)
	}
	return resp
}
