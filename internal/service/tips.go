package service

import (
	"context"
	"fmt"

	"github.com/pageza/greenmeal/backend/internal/aiparse"
	"github.com/pageza/greenmeal/backend/internal/types"
	"go.uber.org/zap"
)

// TipService produces one-sentence sustainability tips.
type TipService struct {
	llm TextGenerator
	log *zap.Logger
}

// NewTipService creates a TipService.
func NewTipService(llm TextGenerator, log *zap.Logger) *TipService {
	return &TipService{llm: llm, log: log}
}

// Tip returns a tip for the diet type and the user's ingredients.
func (s *TipService) Tip(ctx context.Context, diet types.DietType, ingredients []string) (string, error) {
	raw, err := s.llm.Generate(ctx, tipPrompt(string(diet), ingredients))
	if err != nil {
		return "", fmt.Errorf("failed to generate tip: %w", err)
	}
	tip, err := aiparse.Sentence(raw)
	if err != nil {
		s.log.Warn("empty sustainability tip", zap.String("diet_type", string(diet)))
		return "", err
	}
	return tip, nil
}
