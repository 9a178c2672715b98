//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"tileworld.ai/sprite-gateway/app/domain/cron"
	"tileworld.ai/sprite-gateway/app/domain/generation"
	"tileworld.ai/sprite-gateway/app/domain/genlog"
	"tileworld.ai/sprite-gateway/app/domain/sprite"
	"tileworld.ai/sprite-gateway/app/domain/texture"
	"tileworld.ai/sprite-gateway/app/infrastructure"
	"tileworld.ai/sprite-gateway/app/interfaces/http/routes"
	"tileworld.ai/sprite-gateway/app/interfaces/http/routes/api"
)

func InitializeApplication() (*Application, error) {
	wire.Build(
		infrastructure.InfrastructureProvider,
		genlog.NewService,
		generation.NewInvokerService,
		sprite.NewVariantCacheService,
		sprite.NewSpriteService,
		texture.NewTextureService,
		cron.NewService,
		api.NewSpriteAPI,
		api.NewTextureAPI,
		api.NewGenerationLogAPI,
		routes.NewAPIRoute,
		NewAssetInitializer,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
