package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/eunwoo0701/cafe-delight/internal/clients"
	"github.com/eunwoo0701/cafe-delight/internal/domain"
)

var _ domain.RecommendationUseCase = (*recommendationUseCase)(nil)

const fallbackChatReply = "Our AI barista is stretching its circuits, but here are some staff favorites while you wait!"

const maxChatHistory = 6

type recommendationUseCase struct {
	productRepo domain.ProductRepository
	generator   clients.Generator
	log         *logrus.Logger
}

func NewRecommendationUseCase(productRepo domain.ProductRepository, generator clients.Generator, logger *logrus.Logger) domain.RecommendationUseCase {
	return &recommendationUseCase{
		productRepo: productRepo,
		generator:   generator,
		log:         logger,
	}
}

type menuEntry struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"type,omitempty"`
}

// aiPick is one suggestion as returned by the generation service. The
// service is told to use "productId" but sometimes answers with "id".
type aiPick struct {
	ProductID int64  `json:"productId"`
	ID        int64  `json:"id"`
	Reason    string `json:"reason"`
}

func (p aiPick) productID() int64 {
	if p.ProductID > 0 {
		return p.ProductID
	}
	return p.ID
}

func (uc *recommendationUseCase) loadMenu(includeCategory bool) ([]domain.Product, string, map[int64]*domain.Product, error) {
	products, err := uc.productRepo.ListProducts(domain.ProductFilter{})
	if err != nil {
		return nil, "", nil, fmt.Errorf("could not load catalog: %w", err)
	}

	entries := make([]menuEntry, 0, len(products))
	idMap := make(map[int64]*domain.Product, len(products))
	for i := range products {
		product := &products[i]
		entry := menuEntry{ID: product.ID, Name: product.Name, Description: product.Description}
		if includeCategory {
			entry.Category = string(product.Category)
		}
		entries = append(entries, entry)
		idMap[product.ID] = product
	}

	menuJSON, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, "", nil, fmt.Errorf("could not encode menu: %w", err)
	}

	return products, string(menuJSON), idMap, nil
}

// fallbackFromMenu is the deterministic degradation path: the first few
// catalog items with their descriptions truncated into reasons.
func fallbackFromMenu(products []domain.Product, limit int, includeCategory bool) []domain.Recommendation {
	recommendations := make([]domain.Recommendation, 0, limit)
	for i := 0; i < len(products) && i < limit; i++ {
		rec := domain.Recommendation{
			Name:   products[i].Name,
			Reason: shortenReason(products[i].Description),
		}
		if includeCategory {
			rec.Category = products[i].Category
		}
		recommendations = append(recommendations, rec)
	}
	return recommendations
}

func (uc *recommendationUseCase) Recommend(ctx context.Context, preference string) ([]domain.Recommendation, error) {
	preference = strings.TrimSpace(preference)
	if preference == "" {
		return nil, errors.New("please describe your taste or mood")
	}

	products, menuJSON, idMap, err := uc.loadMenu(false)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to load catalog for recommendation: %v", err)
		return nil, err
	}
	uc.log.Infof("Use Case: Loaded %d menu items for recommendation", len(products))

	prompt := fmt.Sprintf(`You are an AI barista at Cafe Delight.
Only recommend from this menu list (id, name, description):
%s
The user said: %q.
Return 2-3 items using their id field.
If nothing fits, return an empty array.
Respond strictly in JSON like this:
[
  {"productId": 7, "reason": "Short reason why it fits"}
]`, menuJSON, preference)

	text, err := uc.generator.Generate(ctx, clients.GenerateRequest{UserText: prompt})
	if err != nil {
		uc.log.Warnf("Use Case: Generation failed, returning fallback menu picks: %v", err)
		return fallbackFromMenu(products, 3, false), nil
	}

	var picks []aiPick
	if err := json.Unmarshal([]byte(extractJSONArray(text)), &picks); err != nil {
		uc.log.Warnf("Use Case: Could not parse recommendation payload, returning fallback: %v", err)
		return fallbackFromMenu(products, 3, false), nil
	}

	recommendations := filterPicks(picks, idMap, false)
	if len(recommendations) == 0 {
		uc.log.Warn("Use Case: No AI picks matched the catalog, returning fallback")
		return fallbackFromMenu(products, 3, false), nil
	}

	uc.log.Infof("Use Case: Returning %d AI recommendations", len(recommendations))
	return recommendations, nil
}

// filterPicks drops any suggestion whose id does not exist in the catalog.
func filterPicks(picks []aiPick, idMap map[int64]*domain.Product, includeCategory bool) []domain.Recommendation {
	var recommendations []domain.Recommendation
	for _, pick := range picks {
		product, ok := idMap[pick.productID()]
		if !ok {
			continue
		}
		reason := strings.TrimSpace(pick.Reason)
		if reason == "" {
			reason = "Perfect for your taste."
		}
		rec := domain.Recommendation{Name: product.Name, Reason: reason}
		if includeCategory {
			rec.Category = product.Category
		}
		recommendations = append(recommendations, rec)
	}
	return recommendations
}

func (uc *recommendationUseCase) Chat(ctx context.Context, message string, history []domain.ChatTurn) (*domain.ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, errors.New("please enter a message")
	}

	products, menuJSON, idMap, err := uc.loadMenu(true)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to load catalog for chat: %v", err)
		return nil, err
	}

	systemPrompt := fmt.Sprintf(`You are Cafe Delight's friendly AI barista.
Use the menu list (drinks and desserts) to craft pairings and suggestions.
Always return JSON with two fields:
{
  "reply": "two or three friendly sentences",
  "recommendations": [
    { "productId": 1, "reason": "why it fits" }
  ]
}
Recommend 2-3 items whenever possible. If a request falls outside the menu, keep the JSON format but set "recommendations" to an empty array and explain why.
Menu you must reference:
%s`, menuJSON)

	if len(history) > maxChatHistory {
		history = history[len(history)-maxChatHistory:]
	}
	turns := make([]clients.Turn, 0, len(history))
	for _, turn := range history {
		if turn.Role == "" || strings.TrimSpace(turn.Text) == "" {
			continue
		}
		role := "user"
		if turn.Role == "assistant" {
			role = "model"
		}
		turns = append(turns, clients.Turn{Role: role, Text: turn.Text})
	}

	text, err := uc.generator.Generate(ctx, clients.GenerateRequest{
		SystemPrompt: systemPrompt,
		History:      turns,
		UserText:     message,
	})
	if err != nil {
		uc.log.Warnf("Use Case: Chat generation failed, returning fallback reply: %v", err)
		return &domain.ChatReply{
			Reply:           fallbackChatReply,
			Recommendations: fallbackFromMenu(products, 3, true),
		}, nil
	}

	var payload struct {
		Reply           string   `json:"reply"`
		Recommendations []aiPick `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(extractJSONObject(text)), &payload); err != nil {
		uc.log.Warnf("Use Case: Could not parse chat payload, returning fallback: %v", err)
		return &domain.ChatReply{
			Reply:           fallbackChatReply,
			Recommendations: fallbackFromMenu(products, 3, true),
		}, nil
	}

	reply := strings.TrimSpace(payload.Reply)
	if reply == "" {
		reply = "Here to help with any Cafe Delight cravings! Ask me about drinks or desserts."
	}

	recommendations := filterPicks(payload.Recommendations, idMap, true)
	if recommendations == nil {
		recommendations = []domain.Recommendation{}
	}

	uc.log.Infof("Use Case: Chat reply produced with %d recommendations", len(recommendations))
	return &domain.ChatReply{Reply: reply, Recommendations: recommendations}, nil
}
