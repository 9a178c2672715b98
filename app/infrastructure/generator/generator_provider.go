package generator

import (
	"resty.dev/v3"

	"tileworld.ai/sprite-gateway/app/domain/generation"
	"tileworld.ai/sprite-gateway/app/utils/httpclients"
	geminiclient "tileworld.ai/sprite-gateway/app/utils/httpclients/gemini"
	"tileworld.ai/sprite-gateway/app/utils/logger"
	"tileworld.ai/sprite-gateway/config/environment_variables"
)

func NewGeminiRestyClient() *resty.Client {
	return httpclients.NewClient("GeminiImageClient")
}

func NewGeminiImageClient(restyClient *resty.Client) *geminiclient.GeminiImageClient {
	return geminiclient.NewGeminiImageClient(restyClient, "gemini image generation", environment_variables.EnvironmentVariables.GEMINI_API_BASE_URL)
}

// NewBackend selects the configured generation backend. Unknown values fall
// back to gemini.
func NewBackend(gemini *GeminiBackend, openaiBackend *OpenAIBackend) generation.Backend {
	selected := environment_variables.EnvironmentVariables.GENERATOR_BACKEND
	switch selected {
	case "openai":
		return openaiBackend
	case "gemini", "":
		return gemini
	default:
		logger.GetLogger().Warnf("unknown GENERATOR_BACKEND %q, using gemini", selected)
		return gemini
	}
}
