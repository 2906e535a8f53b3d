package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"go-quote-desk/internal/database"
	"go-quote-desk/internal/models"
	"go-quote-desk/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxLogoBytes = 5 << 20

// logoExtensions maps the image types http.DetectContentType recognises to
// the extension a stored logo gets.
var logoExtensions = map[string]string{
	"image/png":                ".png",
	"image/jpeg":               ".jpg",
	"image/gif":                ".gif",
	"image/webp":               ".webp",
	"image/bmp":                ".bmp",
	"image/x-icon":             ".ico",
	"image/vnd.microsoft.icon": ".ico",
}

// --- GET: /api/company ---
func GetCompany(c *gin.Context) {
	company, err := database.GetCompany()
	if err != nil {
		failWith(c, err, "company_load_failed")
		return
	}
	c.JSON(http.StatusOK, company)
}

// --- PUT: /api/company ---
func UpdateCompany(c *gin.Context) {
	var input models.Company
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "invalid_input")
		return
	}
	if strings.TrimSpace(input.NameAr) == "" && strings.TrimSpace(input.NameEn) == "" {
		fail(c, http.StatusBadRequest, "invalid_input")
		return
	}

	company, err := database.SaveCompany(input)
	if err != nil {
		failWith(c, err, "company_save_failed")
		return
	}
	c.JSON(http.StatusOK, company)
}

// --- POST: /api/company/logo ---
func UploadLogo(c *gin.Context) {
	// 1. Get the file from the request
	file, err := c.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid_input")
		return
	}
	if file.Size > maxLogoBytes {
		fail(c, http.StatusBadRequest, "invalid_input")
		return
	}

	src, err := file.Open()
	if err != nil {
		failWith(c, err, "operation_failed")
		return
	}
	defer src.Close()

	// 2. Only images, judged by content rather than the client's header
	head := make([]byte, 512)
	n, _ := io.ReadFull(src, head)
	contentType := http.DetectContentType(head[:n])
	ext, ok := logoExtensions[contentType]
	if !ok {
		fail(c, http.StatusBadRequest, "logo_must_be_image")
		return
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		failWith(c, err, "operation_failed")
		return
	}

	// 3. Generate a safe unique filename; the extension follows the content
	name := uuid.NewString() + ext
	if err := deps.Logos.Save(c.Request.Context(), name, src, file.Size, contentType); err != nil {
		failWith(c, err, "operation_failed")
		return
	}

	company, err := database.SetCompanyLogo(name)
	if err != nil {
		failWith(c, err, "company_save_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logo_path": company.LogoPath,
		"url":       "/api/uploads/" + name,
	})
}

// --- GET: /api/uploads/:filename ---
func ServeUpload(c *gin.Context) {
	rc, contentType, err := deps.Logos.Open(c.Request.Context(), c.Param("filename"))
	if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidName) {
		fail(c, http.StatusNotFound, "file_not_found")
		return
	}
	if err != nil {
		failWith(c, err, "operation_failed")
		return
	}
	defer rc.Close()

	c.Header("Cache-Control", "public, max-age=86400")
	c.Header("X-Content-Type-Options", "nosniff")
	c.DataFromReader(http.StatusOK, -1, contentType, rc, nil)
}
