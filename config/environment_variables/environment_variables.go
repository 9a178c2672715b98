package environment_variables

import (
	"github.com/caarlos0/env/v11"

	"tileworld.ai/sprite-gateway/app/utils/logger"
)

type EnvironmentVariablesType struct {
	SERVER_PORT string `env:"SERVER_PORT" envDefault:"8008"`

	// Generation backends.
	GENERATOR_BACKEND   string `env:"GENERATOR_BACKEND" envDefault:"gemini"`
	GEMINI_API_KEY      string `env:"GEMINI_API_KEY"`
	GEMINI_API_BASE_URL string `env:"GEMINI_API_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta/models"`
	GEMINI_MODEL        string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash-image"`
	OPENAI_API_KEY      string `env:"OPENAI_API_KEY"`
	OPENAI_IMAGE_MODEL  string `env:"OPENAI_IMAGE_MODEL" envDefault:"gpt-image-1"`

	// Generated output and cache snapshot.
	GENERATED_DIR       string `env:"GENERATED_DIR" envDefault:"generated"`
	CACHE_SNAPSHOT_PATH string `env:"CACHE_SNAPSHOT_PATH" envDefault:"generated/object_cache.json"`
	REFERENCE_DIR       string `env:"REFERENCE_DIR" envDefault:"assets/reference"`
	GENERATION_DB_PATH  string `env:"GENERATION_DB_PATH" envDefault:"generated/generation_log.db"`

	// Background removal applied to generated sprites.
	BG_REMOVAL_ENABLED      bool   `env:"BG_REMOVAL_ENABLED" envDefault:"true"`
	BG_REMOVAL_MODE         string `env:"BG_REMOVAL_MODE" envDefault:"flood-fill"`
	BG_KEY_COLOR            string `env:"BG_KEY_COLOR" envDefault:"FFFFFF"`
	BG_FLOOD_FILL_THRESHOLD int    `env:"BG_FLOOD_FILL_THRESHOLD" envDefault:"20"`
}

var EnvironmentVariables EnvironmentVariablesType

func (envs *EnvironmentVariablesType) LoadFromEnv() {
	if err := env.Parse(envs); err != nil {
		logger.GetLogger().Errorf("failed to parse environment variables: %v", err)
	}
}
