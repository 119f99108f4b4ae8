package handlers

import (
	"time"

	"payguard-lab/internal/domain/services"
	"payguard-lab/internal/infrastructure/cache"
	"payguard-lab/pkg/logger"
)

// Handlers holds all API handlers
type Handlers struct {
	Health     *HealthHandler
	Assessment *AssessmentHandler
}

// Dependencies holds dependencies for handlers
type Dependencies struct {
	Assessor   *services.RiskAssessor
	Classifier *services.TextClassifier
	Cache      *cache.RedisCache
	CacheTTL   time.Duration
	Logger     *logger.Logger
}

// NewHandlers creates all handlers
func NewHandlers(deps Dependencies) *Handlers {
	return &Handlers{
		Health:     NewHealthHandler(deps.Cache, deps.Logger),
		Assessment: NewAssessmentHandler(deps.Assessor, deps.Classifier, deps.Cache, deps.CacheTTL, deps.Logger),
	}
}
