package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tileworld.ai/sprite-gateway/app/domain/texture"
	"tileworld.ai/sprite-gateway/app/interfaces/http/responses"
	"tileworld.ai/sprite-gateway/app/utils/logger"
)

// TextureAPI handles wall texture generation.
type TextureAPI struct {
	textureService *texture.TextureService
}

func NewTextureAPI(textureService *texture.TextureService) *TextureAPI {
	return &TextureAPI{
		textureService: textureService,
	}
}

func (textureAPI *TextureAPI) RegisterRouter(router *gin.RouterGroup) {
	router.POST("/generate-wall-texture", textureAPI.PostGenerateWallTexture)
}

type GenerateWallTextureRequest struct {
	Prompt string `json:"prompt"`
}

type GenerateWallTextureResponse struct {
	ImageURL string `json:"imageUrl"`
}

// PostGenerateWallTexture
// @Summary Generate a tiling wall texture
// @Description Always performs a fresh generation from the prompt and the master wall reference texture; wall textures are independent of the object variant cache.
// @Tags Textures API
// @Accept json
// @Produce json
// @Param request body GenerateWallTextureRequest true "Texture request"
// @Success 200 {object} GenerateWallTextureResponse "Generated texture"
// @Failure 400 {object} responses.ErrorResponse "Missing prompt"
// @Failure 500 {object} responses.ErrorResponse "Missing wall reference, backend unconfigured, or generation failed"
// @Router /api/generate-wall-texture [post]
func (textureAPI *TextureAPI) PostGenerateWallTexture(reqCtx *gin.Context) {
	var request GenerateWallTextureRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:          "d1e7c3f5-9a6b-4c4d-8e1f-0a9b8c7d6e5f",
			ErrorInstance: err,
		})
		return
	}

	imageURL, err := textureAPI.textureService.GenerateWallTexture(reqCtx.Request.Context(), request.Prompt)
	if err != nil {
		logger.GetLogger().Errorf("generate-wall-texture failed: %v", err)
		abortWithDomainError(reqCtx, err)
		return
	}

	reqCtx.JSON(http.StatusOK, GenerateWallTextureResponse{ImageURL: imageURL})
}
