package main

import (
	"context"
	"fmt"
	"os"

	"tileworld.ai/sprite-gateway/app/domain/generation"
	"tileworld.ai/sprite-gateway/app/domain/sprite"
	"tileworld.ai/sprite-gateway/app/domain/texture"
	"tileworld.ai/sprite-gateway/app/utils/logger"
	"tileworld.ai/sprite-gateway/config/environment_variables"
)

// AssetInitializer prepares the generated-output area and loads the variant
// cache snapshot before the server starts taking requests.
type AssetInitializer struct {
	cache   *sprite.VariantCacheService
	backend generation.Backend
}

func NewAssetInitializer(cache *sprite.VariantCacheService, backend generation.Backend) *AssetInitializer {
	return &AssetInitializer{
		cache:   cache,
		backend: backend,
	}
}

func (a *AssetInitializer) Install(ctx context.Context) error {
	generatedDir := environment_variables.EnvironmentVariables.GENERATED_DIR
	if err := os.MkdirAll(generatedDir, 0o755); err != nil {
		return fmt.Errorf("create generated dir %s: %v", generatedDir, err)
	}

	a.cache.Load()

	// Missing credentials are reported per request as configuration
	// errors; at startup they only warrant a warning.
	if err := a.backend.Configured(); err != nil {
		logger.GetLogger().Warnf("generation backend %s is not configured: %v", a.backend.Name(), err)
	}

	wallReference := texture.WallReferencePath()
	if _, err := os.Stat(wallReference); err != nil {
		logger.GetLogger().Warnf("wall reference texture %s is missing; wall texture generation will fail until it is provided", wallReference)
	}

	return nil
}
