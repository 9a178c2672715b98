package infrastructure

import (
	"github.com/google/wire"

	"tileworld.ai/sprite-gateway/app/domain/genlog"
	"tileworld.ai/sprite-gateway/app/domain/sprite"
	"tileworld.ai/sprite-gateway/app/infrastructure/database"
	"tileworld.ai/sprite-gateway/app/infrastructure/database/repository"
	"tileworld.ai/sprite-gateway/app/infrastructure/generator"
	"tileworld.ai/sprite-gateway/app/infrastructure/snapshot"
)

var InfrastructureProvider = wire.NewSet(
	database.NewDB,
	repository.NewGenerationRecordRepository,
	wire.Bind(new(genlog.RecordRepository), new(*repository.GenerationRecordRepository)),
	generator.NewGeminiRestyClient,
	generator.NewGeminiImageClient,
	generator.NewGeminiBackend,
	generator.NewOpenAIBackend,
	generator.NewBackend,
	snapshot.NewFileStore,
	wire.Bind(new(sprite.SnapshotStore), new(*snapshot.FileStore)),
)
