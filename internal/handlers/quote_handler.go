package handlers

import (
	"net/http"
	"strconv"

	"go-quote-desk/internal/database"
	"go-quote-desk/internal/event"
	"go-quote-desk/internal/i18n"
	"go-quote-desk/internal/models"
	"go-quote-desk/internal/quote"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 100
	maxPageSize     = 500
)

// --- GET: /api/quotes?skip=&limit= ---
func ListQuotes(c *gin.Context) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		fail(c, http.StatusBadRequest, "invalid_input")
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if err != nil || limit <= 0 {
		fail(c, http.StatusBadRequest, "invalid_input")
		return
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	quotes, err := database.ListQuotes(skip, limit)
	if err != nil {
		failWith(c, err, "quote_load_failed")
		return
	}
	c.JSON(http.StatusOK, quotes)
}

// --- GET: /api/quotes/:id ---
func GetQuote(c *gin.Context) {
	q, err := database.GetQuote(c.Param("id"))
	if err != nil {
		failWith(c, err, "quote_load_failed")
		return
	}
	c.JSON(http.StatusOK, q)
}

// --- POST: /api/quotes ---
// Identity, number and dates are assigned here; totals are recomputed from
// the items whatever the client sent.
func CreateQuote(c *gin.Context) {
	var input models.Quote
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "invalid_input")
		return
	}

	quote.Recalculate(&input)
	if err := quote.Validate(&input); err != nil {
		failWith(c, err, "quote_save_failed")
		return
	}

	if err := database.CreateQuote(&input); err != nil {
		failWith(c, err, "quote_save_failed")
		return
	}

	event.Emit(c.Request.Context(), deps.Events, event.QuoteCreated, &input)
	c.JSON(http.StatusCreated, input)
}

// --- PUT: /api/quotes/:id ---
// Fields missing from the body keep their stored values.
func UpdateQuote(c *gin.Context) {
	var input models.QuoteUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "invalid_input")
		return
	}

	id := c.Param("id")
	q, err := database.GetQuote(id)
	if err != nil {
		failWith(c, err, "quote_load_failed")
		return
	}

	quote.ApplyUpdate(q, &input)
	if err := quote.Validate(q); err != nil {
		failWith(c, err, "quote_save_failed")
		return
	}

	if err := database.UpdateQuote(id, q); err != nil {
		failWith(c, err, "quote_save_failed")
		return
	}

	event.Emit(c.Request.Context(), deps.Events, event.QuoteUpdated, q)
	c.JSON(http.StatusOK, q)
}

// --- DELETE: /api/quotes/:id ---
func DeleteQuote(c *gin.Context) {
	id := c.Param("id")
	q, err := database.GetQuote(id)
	if err != nil {
		failWith(c, err, "operation_failed")
		return
	}
	if err := database.DeleteQuote(id); err != nil {
		failWith(c, err, "operation_failed")
		return
	}

	event.Emit(c.Request.Context(), deps.Events, event.QuoteDeleted, q)
	c.JSON(http.StatusOK, gin.H{"message": i18n.T(lang(c), "quote_deleted")})
}
