package response

import (
	"net/http"

	domainerrors "gem-auction.backend/internal/domain/errors"
	"gem-auction.backend/pkg/logger"
	"gem-auction.backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Success sends a success envelope
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// Paginated sends a list with pagination metadata
func Paginated(c *gin.Context, data interface{}, meta utils.PaginationMeta) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
		"meta":    meta,
	})
}

// Message sends a success envelope carrying only a message
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": true,
		"message": message,
	})
}

// Error maps err onto the error taxonomy and sends the error envelope.
// Server-side failures are logged; their text never reaches the client.
func Error(c *gin.Context, err error) {
	appErr := domainerrors.FromError(err)
	if appErr.Status >= http.StatusInternalServerError {
		logger.Error(c.Request.Context(), "Request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}

	c.JSON(appErr.Status, gin.H{
		"success": false,
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}

// ErrorWithError sends an error envelope with a specific status and code
func ErrorWithError(c *gin.Context, status int, code string, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"code":    code,
		"message": message,
	})
}

// Abort sends the error envelope and stops the handler chain
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
