package delivery

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tabsy-backend/internal/calendar/domain"
	"tabsy-backend/internal/calendar/usecase"
	"tabsy-backend/internal/user"
	"tabsy-backend/pkg/google"
)

// CalendarHandler handles calendar-related HTTP requests
type CalendarHandler struct {
	calendarUsecase usecase.CalendarUsecase
}

func NewCalendarHandler(calendarUsecase usecase.CalendarUsecase) *CalendarHandler {
	return &CalendarHandler{calendarUsecase: calendarUsecase}
}

// CreateEventRequest represents the request body for creating an event
type CreateEventRequest struct {
	Title       string `json:"title" binding:"required"`
	Start       string `json:"start" binding:"required"`
	End         string `json:"end" binding:"required"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

// UpdateEventRequest represents the request body for updating an event
type UpdateEventRequest struct {
	Title    *string `json:"title"`
	NewStart *string `json:"newStart"`
	NewEnd   *string `json:"newEnd"`
}

// GetEvents returns the cached event collection, refreshing when stale.
// GET /api/calendar/events?forceRefresh=true
func (h *CalendarHandler) GetEvents(c *gin.Context) {
	forceRefresh := c.Query("forceRefresh") == "true"

	events, err := h.calendarUsecase.GetEvents(c.Request.Context(), user.DefaultUserID, forceRefresh)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": events})
}

// CreateEvent creates an event at the provider and refreshes the cache.
// POST /api/calendar/events
func (h *CalendarHandler) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Title, start, and end are required"})
		return
	}

	start, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid start time: " + err.Error()})
		return
	}
	end, err := time.Parse(time.RFC3339, req.End)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid end time: " + err.Error()})
		return
	}

	event, err := h.calendarUsecase.CreateEvent(c.Request.Context(), user.DefaultUserID, domain.EventInput{
		Title:       req.Title,
		Start:       start,
		End:         end,
		Description: req.Description,
		Location:    req.Location,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": event})
}

// UpdateEvent updates an event at the provider and refreshes the cache.
// PUT /api/calendar/events/:eventId
func (h *CalendarHandler) UpdateEvent(c *gin.Context) {
	eventID := c.Param("eventId")

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	upd := domain.EventUpdate{Title: req.Title}
	if req.NewStart != nil {
		t, err := time.Parse(time.RFC3339, *req.NewStart)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid newStart time: " + err.Error()})
			return
		}
		upd.NewStart = &t
	}
	if req.NewEnd != nil {
		t, err := time.Parse(time.RFC3339, *req.NewEnd)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid newEnd time: " + err.Error()})
			return
		}
		upd.NewEnd = &t
	}

	event, err := h.calendarUsecase.UpdateEvent(c.Request.Context(), user.DefaultUserID, eventID, upd)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": event})
}

// FindFreeSlots scans a workday for gaps.
// GET /api/calendar/free-slots?date=2026-01-15&duration=30
func (h *CalendarHandler) FindFreeSlots(c *gin.Context) {
	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			parsed, err = time.Parse("2006-01-02", raw)
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid date: " + raw})
			return
		}
		date = parsed
	}

	duration, _ := strconv.Atoi(c.DefaultQuery("duration", "30"))

	slots, err := h.calendarUsecase.FindFreeSlots(c.Request.Context(), user.DefaultUserID, date, duration)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": slots})
}

func respondError(c *gin.Context, err error) {
	if google.IsAuthError(err) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
}
