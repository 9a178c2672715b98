package generation

import "context"

// Request describes one call to the external image generation service.
type Request struct {
	// Prompt is the full text prompt, including any style template and
	// matte constraints.
	Prompt string
	// OutputPath is where the backend must write the resulting image.
	OutputPath string
	// EditImagePath, when set, is an existing image the prompt is applied
	// to instead of generating from scratch.
	EditImagePath string
	// ReferenceImagePaths are optional stylistic reference images.
	ReferenceImagePaths []string
	// BackgroundRemoval, when set, keys the matte color of the finished
	// image to transparency.
	BackgroundRemoval *BackgroundRemoval
}

// BackgroundRemoval configures matte-to-alpha post-processing of a
// generated image.
type BackgroundRemoval struct {
	Mode      string
	KeyColor  string
	Threshold int
}

// Backend is the external image generation service. Implementations write
// the resulting image to request.OutputPath or return an error carrying the
// backend diagnostic text.
type Backend interface {
	Name() string
	// Configured reports whether required credentials are present. It is
	// checked before any call is attempted.
	Configured() error
	Generate(ctx context.Context, request Request) error
}
