package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tileworld.ai/sprite-gateway/app/domain/sprite"
	"tileworld.ai/sprite-gateway/app/interfaces/http/responses"
	"tileworld.ai/sprite-gateway/app/utils/logger"
)

// SpriteAPI handles object creation, editing, and cache eviction.
type SpriteAPI struct {
	spriteService *sprite.SpriteService
}

func NewSpriteAPI(spriteService *sprite.SpriteService) *SpriteAPI {
	return &SpriteAPI{
		spriteService: spriteService,
	}
}

func (spriteAPI *SpriteAPI) RegisterRouter(router *gin.RouterGroup) {
	router.POST("/create-object", spriteAPI.PostCreateObject)
	router.POST("/edit-object", spriteAPI.PostEditObject)
	router.POST("/uncache-object-orientation", spriteAPI.PostUncacheObjectOrientation)
}

type CreateObjectRequest struct {
	Name         string `json:"name"`
	Prompt       string `json:"prompt"`
	PlayerFacing string `json:"playerFacing"`
}

type CreateObjectResponse struct {
	Name           string `json:"name"`
	ImageURL       string `json:"imageUrl"`
	ObjectKey      string `json:"objectKey"`
	Orientation    string `json:"orientation"`
	Cached         bool   `json:"cached,omitempty"`
	ReorientedFrom string `json:"reorientedFrom,omitempty"`
}

// PostCreateObject
// @Summary Materialize an object sprite
// @Description Resolves an object prompt and player facing to a generated sprite. Serves an exact cache hit when one exists, derives the requested orientation from a cached variant when possible, and performs a full generation otherwise. The object faces the opposite of the player's facing.
// @Tags Objects API
// @Accept json
// @Produce json
// @Param request body CreateObjectRequest true "Object creation request"
// @Success 200 {object} CreateObjectResponse "Resolved sprite"
// @Failure 400 {object} responses.ErrorResponse "Missing name or prompt"
// @Failure 500 {object} responses.ErrorResponse "Backend unconfigured, or generation failed"
// @Router /api/create-object [post]
func (spriteAPI *SpriteAPI) PostCreateObject(reqCtx *gin.Context) {
	var request CreateObjectRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:          "a8b4f0e2-6c3d-4f1a-9b8e-7d6c5b4a3f2e",
			ErrorInstance: err,
		})
		return
	}

	playerFacing := sprite.NormalizeOrientation(request.PlayerFacing)
	result, err := spriteAPI.spriteService.CreateObject(reqCtx.Request.Context(), request.Name, request.Prompt, playerFacing)
	if err != nil {
		logger.GetLogger().Errorf("create-object failed: %v", err)
		abortWithDomainError(reqCtx, err)
		return
	}

	reqCtx.JSON(http.StatusOK, CreateObjectResponse{
		Name:           request.Name,
		ImageURL:       result.Variant.ImageURL,
		ObjectKey:      result.Variant.ObjectKey,
		Orientation:    string(result.Variant.Orientation),
		Cached:         result.Cached,
		ReorientedFrom: string(result.ReorientedFrom),
	})
}

type EditObjectRequest struct {
	Name         string `json:"name"`
	ImageURL     string `json:"imageUrl"`
	Interaction  string `json:"interaction"`
	PlayerFacing string `json:"playerFacing"`
}

type EditObjectResponse struct {
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

// PostEditObject
// @Summary Edit a placed object's sprite
// @Description Applies an interaction to the placed object's current image and returns a new derived image. The edit targets the submitted image directly and never touches the variant cache.
// @Tags Objects API
// @Accept json
// @Produce json
// @Param request body EditObjectRequest true "Object edit request"
// @Success 200 {object} EditObjectResponse "Derived sprite"
// @Failure 400 {object} responses.ErrorResponse "Missing fields, or imageUrl outside the generated-output area"
// @Failure 500 {object} responses.ErrorResponse "Backend unconfigured, or generation failed"
// @Router /api/edit-object [post]
func (spriteAPI *SpriteAPI) PostEditObject(reqCtx *gin.Context) {
	var request EditObjectRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:          "b9c5a1d3-7e4f-4a2b-8c9d-6e5f4a3b2c1d",
			ErrorInstance: err,
		})
		return
	}

	imageURL, err := spriteAPI.spriteService.EditObject(reqCtx.Request.Context(), request.Name, request.ImageURL, request.Interaction)
	if err != nil {
		logger.GetLogger().Errorf("edit-object failed: %v", err)
		abortWithDomainError(reqCtx, err)
		return
	}

	reqCtx.JSON(http.StatusOK, EditObjectResponse{
		Name:     request.Name,
		ImageURL: imageURL,
	})
}

type UncacheObjectOrientationRequest struct {
	ObjectKey   string `json:"objectKey"`
	Orientation string `json:"orientation"`
}

type UncacheObjectOrientationResponse struct {
	Removed bool `json:"removed"`
}

// PostUncacheObjectOrientation
// @Summary Evict a cached object variant
// @Description Removes the cached variant for an object key and orientation, typically after the last placed instance of that pair was deleted. Evicting an absent pair is a no-op reporting removed=false.
// @Tags Objects API
// @Accept json
// @Produce json
// @Param request body UncacheObjectOrientationRequest true "Eviction request"
// @Success 200 {object} UncacheObjectOrientationResponse "Eviction outcome"
// @Failure 400 {object} responses.ErrorResponse "Missing objectKey"
// @Failure 500 {object} responses.ErrorResponse "Snapshot persistence failed"
// @Router /api/uncache-object-orientation [post]
func (spriteAPI *SpriteAPI) PostUncacheObjectOrientation(reqCtx *gin.Context) {
	var request UncacheObjectOrientationRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:          "c0d6b2e4-8f5a-4b3c-9d0e-7f6a5b4c3d2e",
			ErrorInstance: err,
		})
		return
	}

	removed, err := spriteAPI.spriteService.UncacheVariant(request.ObjectKey, request.Orientation)
	if err != nil {
		logger.GetLogger().Errorf("uncache-object-orientation failed: %v", err)
		abortWithDomainError(reqCtx, err)
		return
	}

	reqCtx.JSON(http.StatusOK, UncacheObjectOrientationResponse{Removed: removed})
}
