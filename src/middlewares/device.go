package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DeviceInfo tags every request with an id and captures the scanning device's
// identity, preferring the explicit header the scanner app sends over the
// browser user agent.
func DeviceInfo(ctx *gin.Context) {
	rid := uuid.NewString()
	ctx.Set("request_id", rid)
	ctx.Writer.Header().Set("X-Request-Id", rid)

	device := ctx.GetHeader("X-Device-Info")
	if device == "" {
		device = ctx.Request.UserAgent()
	}
	ctx.Set("device_info", device)
}

func SecureHeaders(ctx *gin.Context) {
	ctx.Writer.Header().Set("X-Frame-Options", "DENY")
	ctx.Writer.Header().Set("X-Content-Type-Options", "nosniff")
	ctx.Writer.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
}
