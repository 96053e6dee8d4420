package app

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// SharerHeader carries the already-resolved caller id. Authentication happens
// upstream; here the header is trusted, only its shape is checked.
const SharerHeader = "X-Sharer-User-Id"

const sharerKey = "sharerID"

func RequireSharer() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(SharerHeader)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, H{"error": "missing " + SharerHeader + " header"})
			return
		}
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, H{"error": "invalid " + SharerHeader + " header"})
			return
		}
		c.Set(sharerKey, uint(id))
		c.Next()
	}
}

// Sharer returns the caller id set by RequireSharer.
func Sharer(c *gin.Context) uint {
	v, _ := c.Get(sharerKey)
	id, _ := v.(uint)
	return id
}
