package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// LineSignatureMiddleware validates the X-Line-Signature header on webhook
// requests against the channel secret. The body is re-buffered so the
// handler can bind it afterwards.
func LineSignatureMiddleware(channelSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			logger.Error("Failed to read webhook body")
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		signature := c.GetHeader("X-Line-Signature")
		if !ValidateLineSignature(channelSecret, body, signature) {
			logger.Warn("Webhook signature validation failed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Signature validation failed"})
			return
		}

		c.Next()
	}
}

// ValidateLineSignature reports whether signature is a valid HMAC-SHA256
// digest of body under the channel secret, base64 encoded.
func ValidateLineSignature(channelSecret string, body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	decoded, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(channelSecret))
	mac.Write(body)
	return hmac.Equal(decoded, mac.Sum(nil))
}
