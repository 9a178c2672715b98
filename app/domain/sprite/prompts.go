package sprite

import "fmt"

// Prompt templates sent to the generation backend. The style framing keeps
// sprites consistent across objects; the orientation clause selects the
// depicted facing.

const spriteStyleTemplate = "Create a single video game sprite of %s. " +
	"Crisp pixel-art style, the entire object fully visible and centered in frame, " +
	"no cropping, no text, no watermark, %s."

const reorientTemplate = "This is a video game sprite. Redraw the exact same object, " +
	"identical in identity, design, colors, and style, but %s. " +
	"Change nothing about the object itself except the viewing direction."

const editTemplate = "This is a video game sprite. Apply the following change to it: %s. " +
	"Keep the pixel-art style and keep the object fully visible and centered."

const wallTextureTemplate = "Create a seamless tiling wall texture of %s. " +
	"The image must tile perfectly in all directions with no visible seams, " +
	"no border, no text, flat lighting, filling the entire frame edge to edge."

var orientationClauses = map[Orientation]string{
	South: "facing the viewer (front view)",
	North: "viewed from behind, facing away from the viewer (back view)",
	East:  "facing to the right in side profile",
	West:  "facing to the left in side profile",
}

func coldPrompt(userPrompt string, orientation Orientation) string {
	return fmt.Sprintf(spriteStyleTemplate, userPrompt, orientationClauses[orientation])
}

func reorientPrompt(orientation Orientation) string {
	return fmt.Sprintf(reorientTemplate, orientationClauses[orientation])
}

func editPrompt(interaction string) string {
	return fmt.Sprintf(editTemplate, interaction)
}

// WallTexturePrompt builds the tiling-texture prompt for the wall texture
// handler.
func WallTexturePrompt(userPrompt string) string {
	return fmt.Sprintf(wallTextureTemplate, userPrompt)
}
