package mocks

import (
	"context"

	"memori-server/internal/models"
	"memori-server/internal/openai"

	"github.com/stretchr/testify/mock"
)

// Mock GenerationGateway
type GenerationGateway struct {
	mock.Mock
}

func (m *GenerationGateway) GenerateSceneBreakdown(ctx context.Context, script string, language models.Language, opts openai.GenerationOptions) (string, error) {
	args := m.Called(ctx, script, language, opts)
	return args.String(0), args.Error(1)
}
