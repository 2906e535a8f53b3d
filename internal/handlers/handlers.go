package handlers

import (
	"errors"
	"log"
	"net/http"

	"go-quote-desk/internal/auth"
	"go-quote-desk/internal/database"
	"go-quote-desk/internal/event"
	"go-quote-desk/internal/i18n"
	"go-quote-desk/internal/quote"
	"go-quote-desk/internal/render"
	"go-quote-desk/internal/storage"

	"github.com/gin-gonic/gin"
)

// Deps are the services the handlers share. Persistence goes through the
// database package.
type Deps struct {
	Revoker      auth.Revoker
	Logos        storage.LogoStore
	Events       event.Publisher
	PDF          render.PDFOptions
	GeminiAPIKey string
}

var deps = Deps{
	Revoker: auth.NewMemoryRevoker(),
	Events:  event.Nop{},
}

// Setup installs the shared services. Nil fields keep their defaults.
func Setup(d Deps) {
	if d.Revoker == nil {
		d.Revoker = auth.NewMemoryRevoker()
	}
	if d.Events == nil {
		d.Events = event.Nop{}
	}
	deps = d
}

func lang(c *gin.Context) string {
	return i18n.Detect(c.GetHeader("Accept-Language"))
}

// fail writes {"error": <localized>, "code": key}.
func fail(c *gin.Context, status int, key string) {
	c.JSON(status, gin.H{"error": i18n.T(lang(c), key), "code": key})
}

// failWith maps domain errors to a status; anything unknown is logged and
// reported as fallbackKey.
func failWith(c *gin.Context, err error, fallbackKey string) {
	var verr *quote.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": i18n.T(lang(c), verr.Code),
			"code":  verr.Code,
			"field": verr.Field,
			"index": verr.Index,
		})
	case errors.Is(err, database.ErrNotFound):
		fail(c, http.StatusNotFound, "quote_not_found")
	default:
		log.Printf("❌ %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		fail(c, http.StatusInternalServerError, fallbackKey)
	}
}
