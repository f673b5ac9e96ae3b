package response

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/waltz-backend/internal/platform/apierr"
)

// RespondServiceError classifies err by its sentinel and writes the envelope.
// Unclassified errors become a 500 with fallbackCode.
func RespondServiceError(c *gin.Context, fallbackCode string, err error) {
	ae := apierr.FromError(err, fallbackCode)
	if ae == nil {
		ae = apierr.New(500, fallbackCode, err)
	}
	_ = c.Error(err)
	RespondError(c, ae.Status, ae.Code, ae.Err)
}
