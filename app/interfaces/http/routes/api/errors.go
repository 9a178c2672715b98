package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tileworld.ai/sprite-gateway/app/domain/common"
	"tileworld.ai/sprite-gateway/app/interfaces/http/responses"
)

// abortWithDomainError maps the domain error taxonomy onto HTTP statuses:
// validation failures are the caller's fault (400), configuration and
// generation failures are reported as 500 with the diagnostic text intact.
func abortWithDomainError(reqCtx *gin.Context, err *common.Error) {
	status := http.StatusInternalServerError
	if err.Kind() == common.KindValidation {
		status = http.StatusBadRequest
	}
	reqCtx.AbortWithStatusJSON(status, responses.ErrorResponse{
		Code:          err.GetCode(),
		ErrorInstance: err.GetError(),
	})
}
