package server

import (
	"net/http"
	"strings"

	"k-stock-insight/src/models"

	"github.com/gin-gonic/gin"
)

// Origins of local front-ends (Vite dev server, previews).
var localOrigins = []string{
	"http://127.0.0.1:",
	"http://localhost:",
}

// -----------------------------------------------------------------------------

func allowedOrigin(origin string) bool {
	for _, prefix := range localOrigins {
		if strings.HasPrefix(origin, prefix) {
			return true
		}
	}
	return false
}

// -----------------------------------------------------------------------------

// categoryParam reads the :category path parameter. Unknown names are
// answered with 404 and ok=false.
func categoryParam(c *gin.Context) (models.MCategory, bool) {
	cat := models.MCategory(c.Param("category"))
	if !cat.IsValid() {
		abortDetail(c, http.StatusNotFound, "unknown category "+string(cat))
		return "", false
	}
	return cat, true
}

// -----------------------------------------------------------------------------

// abortDetail answers with a {"detail": msg} body, the error shape of the
// backend itself.
func abortDetail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": msg})
}
