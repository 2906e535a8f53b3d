package handlers

import (
	"log"
	"net/http"

	"go-quote-desk/internal/middleware"
	"go-quote-desk/internal/models"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every endpoint. Call Setup first.
func RegisterRoutes(r *gin.Engine, allowRegistration bool) {
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "online"}) })

	api := r.Group("/api")
	api.POST("/auth/login", Login)
	api.GET("/uploads/:filename", ServeUpload)

	// --- FEATURE FLAG: Registration ---
	// Only opens if we explicitly allow it in .env
	if allowRegistration {
		api.POST("/auth/register", Register)
		log.Println("⚠️ WARNING: Registration route is OPEN. Disable this in production!")
	} else {
		log.Println("🔒 Registration route is safely DISABLED.")
	}

	// --- PROTECTED ROUTES ---
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(deps.Revoker))
	{
		protected.POST("/auth/logout", Logout)
		protected.GET("/auth/me", Me)

		protected.GET("/quotes", ListQuotes)
		protected.POST("/quotes", CreateQuote)
		protected.GET("/quotes/:id", GetQuote)
		protected.PUT("/quotes/:id", UpdateQuote)
		protected.GET("/quotes/:id/document", QuoteDocument)
		protected.GET("/quotes/:id/export/:format", ExportQuote)

		protected.GET("/company", GetCompany)

		// ADMIN ONLY
		admin := protected.Group("/")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		{
			admin.DELETE("/quotes/:id", DeleteQuote)
			admin.PUT("/company", UpdateCompany)
			admin.POST("/company/logo", UploadLogo)
			admin.GET("/reports/quotes", GetQuoteReport)
			admin.POST("/assistant", AskAI)
		}
	}
}
