package generation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tileworld.ai/sprite-gateway/app/domain/common"
	"tileworld.ai/sprite-gateway/app/domain/genlog"
	"tileworld.ai/sprite-gateway/app/utils/imagetools"
	"tileworld.ai/sprite-gateway/app/utils/logger"
	"tileworld.ai/sprite-gateway/config/environment_variables"
)

// Timeout is the hard upper bound for a single generation call. There is no
// automatic retry; the caller owns retry policy.
const Timeout = 180 * time.Second

const matteConstraintTemplate = "Important output constraint: use a completely pure matte background " +
	"(#%s), flat and uniform, with no shadows, floor, gradients, or texture."

// InvokerService wraps the pluggable generation backend: it checks
// configuration, applies the matte constraint and hard timeout, runs
// background removal on the result, and records every call.
type InvokerService struct {
	backend Backend
	log     *genlog.Service
}

func NewInvokerService(backend Backend, log *genlog.Service) *InvokerService {
	return &InvokerService{
		backend: backend,
		log:     log,
	}
}

// BackgroundRemovalFromEnv returns the configured sprite background removal
// settings, or nil when removal is disabled.
func BackgroundRemovalFromEnv() *BackgroundRemoval {
	envs := environment_variables.EnvironmentVariables
	if !envs.BG_REMOVAL_ENABLED {
		return nil
	}
	return &BackgroundRemoval{
		Mode:      envs.BG_REMOVAL_MODE,
		KeyColor:  envs.BG_KEY_COLOR,
		Threshold: envs.BG_FLOOD_FILL_THRESHOLD,
	}
}

// Invoke performs one generation call. kind, objectKey and orientation are
// observability fields carried into the generation log.
func (s *InvokerService) Invoke(ctx context.Context, kind genlog.Kind, objectKey, orientation string, request Request) *common.Error {
	if err := s.backend.Configured(); err != nil {
		return common.NewConfigurationError(err, "7f1f3a0a-9a1e-4a44-93c4-6dd1f6f3d8b1")
	}

	prompt := request.Prompt
	if request.BackgroundRemoval != nil {
		key := strings.ToUpper(strings.TrimPrefix(request.BackgroundRemoval.KeyColor, "#"))
		prompt = prompt + "\n\n" + fmt.Sprintf(matteConstraintTemplate, key)
	}
	request.Prompt = prompt

	callCtx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	started := time.Now()
	err := s.backend.Generate(callCtx, request)
	if err == nil && request.BackgroundRemoval != nil {
		if bgErr := imagetools.RemoveBackground(request.OutputPath, imagetools.Options{
			Mode:      request.BackgroundRemoval.Mode,
			KeyColor:  request.BackgroundRemoval.KeyColor,
			Threshold: request.BackgroundRemoval.Threshold,
		}); bgErr != nil {
			err = fmt.Errorf("background removal failed: %w", bgErr)
		}
	}

	record := &genlog.Record{
		Kind:        kind,
		ObjectKey:   objectKey,
		Orientation: orientation,
		Prompt:      request.Prompt,
		Backend:     s.backend.Name(),
		ImageURL:    request.OutputPath,
		DurationMs:  time.Since(started).Milliseconds(),
		Success:     err == nil,
	}
	if err != nil {
		record.ErrorText = err.Error()
	}
	s.log.Record(ctx, record)

	if err != nil {
		logger.GetLogger().Errorf("generation failed (%s backend): %v", s.backend.Name(), err)
		return common.NewGenerationError(err, "e3c2a9f4-1d27-4c43-9b3c-52f6a5f0b9d7")
	}
	return nil
}
