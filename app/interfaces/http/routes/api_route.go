package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tileworld.ai/sprite-gateway/app/interfaces/http/routes/api"
)

// APIRoute aggregates the /api route groups and the health probe.
type APIRoute struct {
	spriteAPI  *api.SpriteAPI
	textureAPI *api.TextureAPI
	genlogAPI  *api.GenerationLogAPI
}

func NewAPIRoute(spriteAPI *api.SpriteAPI, textureAPI *api.TextureAPI, genlogAPI *api.GenerationLogAPI) *APIRoute {
	return &APIRoute{
		spriteAPI:  spriteAPI,
		textureAPI: textureAPI,
		genlogAPI:  genlogAPI,
	}
}

func (apiRoute *APIRoute) RegisterRouter(router gin.IRouter) {
	apiRouter := router.Group("/api")
	apiRoute.spriteAPI.RegisterRouter(apiRouter)
	apiRoute.textureAPI.RegisterRouter(apiRouter)
	apiRoute.genlogAPI.RegisterRouter(apiRouter)

	router.GET("/healthz", getHealthz)
}

// GetHealthz
// @Summary Health probe
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /healthz [get]
func getHealthz(reqCtx *gin.Context) {
	reqCtx.JSON(http.StatusOK, gin.H{"ok": true})
}
