package handlers

import (
	"net/http"
	"time"

	"go-quote-desk/internal/database"

	"github.com/gin-gonic/gin"
)

// --- GET: /api/reports/quotes?start=YYYY-MM-DD&end=YYYY-MM-DD ---
// Both dates are inclusive. Without them the current month is reported.
func GetQuoteReport(c *gin.Context) {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := now

	if s := c.Query("start"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			fail(c, http.StatusBadRequest, "invalid_input")
			return
		}
		start = t
	}
	if e := c.Query("end"); e != "" {
		t, err := time.Parse("2006-01-02", e)
		if err != nil {
			fail(c, http.StatusBadRequest, "invalid_input")
			return
		}
		end = t.Add(24*time.Hour - time.Nanosecond)
	}
	if end.Before(start) {
		fail(c, http.StatusBadRequest, "invalid_input")
		return
	}

	report, err := database.GetQuoteReport(start, end)
	if err != nil {
		failWith(c, err, "operation_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"start":  start.Format("2006-01-02"),
		"end":    end.Format("2006-01-02"),
		"report": report,
	})
}
