package apihandlers

import (
	"github.com/gin-gonic/gin"
)

// errorBody is the standard error response shape.
// Example: { "error": "Invalid S3 URI", "message": "S3 URI must start with s3://" }
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// JSONError sends a structured error response.
func JSONError(ctx *gin.Context, status int, errText, msg string) {
	ctx.JSON(status, errorBody{Error: errText, Message: msg})
}
