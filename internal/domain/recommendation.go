package domain

import "context"

// Recommendation is one catalog-backed suggestion returned by the AI gateway.
type Recommendation struct {
	Name     string   `json:"name"`
	Category Category `json:"type,omitempty"`
	Reason   string   `json:"reason"`
}

// ChatTurn is one prior message of a multi-turn conversation. Role is either
// "user" or "assistant".
type ChatTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type ChatReply struct {
	Reply           string           `json:"reply"`
	Recommendations []Recommendation `json:"recommendations"`
}

type RecommendationUseCase interface {
	Recommend(ctx context.Context, preference string) ([]Recommendation, error)
	Chat(ctx context.Context, message string, history []ChatTurn) (*ChatReply, error)
}
