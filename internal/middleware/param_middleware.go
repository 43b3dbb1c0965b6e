package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ExtractUintParam validates a numeric URL parameter and stores it in the
// context under contextKey as uint.
func ExtractUintParam(paramName, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.Param(paramName)
		id, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil || id == 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid %s", paramName)})
			return
		}
		c.Set(contextKey, uint(id))
		c.Next()
	}
}

// UintParam returns a value stored by ExtractUintParam
func UintParam(c *gin.Context, contextKey string) uint {
	v, _ := c.Get(contextKey)
	id, _ := v.(uint)
	return id
}
