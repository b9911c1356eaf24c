package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/khanonymous/relay-backend/internal/common"
	"github.com/khanonymous/relay-backend/internal/repository"
	"github.com/khanonymous/relay-backend/internal/service"
)

// AdminHandler serves the administrative read surface: analytics, ranking,
// report log and ban management.
type AdminHandler struct {
	stats        service.StatsService
	directory    service.DirectoryService
	reports      repository.ReportRepository
	topLimit     int
	reportsLimit int
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(
	stats service.StatsService,
	directory service.DirectoryService,
	reports repository.ReportRepository,
	topLimit, reportsLimit int,
) *AdminHandler {
	return &AdminHandler{
		stats:        stats,
		directory:    directory,
		reports:      reports,
		topLimit:     topLimit,
		reportsLimit: reportsLimit,
	}
}

// GetTodayStats handles GET /admin/stats/today
func (h *AdminHandler) GetTodayStats(c *gin.Context) {
	counts, err := h.stats.TrailingWindow(c.Request.Context(), 1)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "stats query failed", err)
		return
	}
	common.SuccessResponse(c, counts[0], nil)
}

// GetWeeklyStats handles GET /admin/stats/weekly
func (h *AdminHandler) GetWeeklyStats(c *gin.Context) {
	window, err := h.stats.TrailingWindow(c.Request.Context(), 7)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "stats query failed", err)
		return
	}
	common.SuccessResponse(c, window, nil)
}

// GetTotals handles GET /admin/stats/totals
func (h *AdminHandler) GetTotals(c *gin.Context) {
	totals, err := h.stats.Totals(c.Request.Context())
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "stats query failed", err)
		return
	}
	common.SuccessResponse(c, totals, nil)
}

// GetTopSenders handles GET /admin/top/senders
func (h *AdminHandler) GetTopSenders(c *gin.Context) {
	h.top(c, service.TopKindSender)
}

// GetTopReceivers handles GET /admin/top/receivers
func (h *AdminHandler) GetTopReceivers(c *gin.Context) {
	h.top(c, service.TopKindReceiver)
}

func (h *AdminHandler) top(c *gin.Context, kind string) {
	limit := h.topLimit
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := h.stats.Top(c.Request.Context(), kind, limit)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "top query failed", err)
		return
	}
	common.SuccessResponse(c, entries, nil)
}

// ListReports handles GET /admin/reports, most-recent-first
func (h *AdminHandler) ListReports(c *gin.Context) {
	limit := h.reportsLimit
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	reports, err := h.reports.ListRecent(limit)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "report list failed", err)
		return
	}
	common.SuccessResponse(c, reports, nil)
}

// ListBanned handles GET /admin/banned
func (h *AdminHandler) ListBanned(c *gin.Context) {
	users, err := h.directory.ListBanned(h.reportsLimit)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "banned list failed", err)
		return
	}
	common.SuccessResponse(c, users, nil)
}

// ListRecipients handles GET /admin/recipients, the broadcast audience:
// every non-banned user id
func (h *AdminHandler) ListRecipients(c *gin.Context) {
	ids, err := h.directory.ListActiveIDs()
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "recipient list failed", err)
		return
	}
	common.SuccessResponse(c, gin.H{"user_ids": ids, "count": len(ids)}, nil)
}

// BanUser handles POST /admin/users/:id/ban
func (h *AdminHandler) BanUser(c *gin.Context) {
	h.setBanned(c, true)
}

// UnbanUser handles DELETE /admin/users/:id/ban
func (h *AdminHandler) UnbanUser(c *gin.Context) {
	h.setBanned(c, false)
}

func (h *AdminHandler) setBanned(c *gin.Context, banned bool) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid user id", err)
		return
	}

	if err := h.directory.SetBanned(userID, banned); err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "ban update failed", err)
		return
	}
	common.SuccessResponse(c, gin.H{"user_id": userID, "is_banned": banned}, nil)
}

// GetUserStats handles GET /admin/users/:id/stats
func (h *AdminHandler) GetUserStats(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid user id", err)
		return
	}

	stats, err := h.stats.UserStats(c.Request.Context(), userID)
	if err != nil {
		relayErrorResponse(c, err)
		return
	}
	common.SuccessResponse(c, stats, nil)
}
