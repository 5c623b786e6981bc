package meetings

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/collabconnect/meet/internal/domain"
)

// Handlers serves the /api/meetings routes.
type Handlers struct {
	Store Store
}

func (h *Handlers) Mount(g *gin.RouterGroup) {
	g.POST("/schedule", h.schedule)
	g.GET("/upcoming", h.upcoming)
	g.GET("/:meetingId", h.get)
}

type scheduleRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	HostUsername    string `json:"hostUsername"`
}

func (h *Handlers) schedule(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if req.Title == "" || req.StartTime == "" || req.HostUsername == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "missing required fields"})
		return
	}
	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid startTime"})
		return
	}
	duration := req.DurationMinutes
	if duration <= 0 {
		duration = domain.DefaultMeetingDuration
	}

	m := domain.Meeting{
		MeetingID:       uuid.NewString(),
		Title:           req.Title,
		Description:     req.Description,
		StartTime:       start,
		DurationMinutes: duration,
		HostUsername:    req.HostUsername,
		CreatedAt:       time.Now().UTC(),
	}
	if err := h.Store.Create(c.Request.Context(), m); err != nil {
		log.Error().Err(err).Str("module", "meetings").Msg("schedule meeting")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}
	log.Info().Str("module", "meetings").Str("meeting_id", m.MeetingID).
		Str("host", m.HostUsername).Time("start", m.StartTime).Msg("meeting scheduled")
	c.JSON(http.StatusCreated, gin.H{"message": "meeting scheduled", "meeting": m})
}

func (h *Handlers) upcoming(c *gin.Context) {
	list, err := h.Store.Upcoming(c.Request.Context(), c.Query("host"))
	if err != nil {
		log.Error().Err(err).Str("module", "meetings").Msg("list upcoming")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"meetings": list})
}

func (h *Handlers) get(c *gin.Context) {
	m, err := h.Store.Get(c.Request.Context(), c.Param("meetingId"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "meeting not found"})
			return
		}
		log.Error().Err(err).Str("module", "meetings").Msg("get meeting")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"meeting": m})
}
