package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/synthra/synthra-api/internal/domain"
	"github.com/synthra/synthra-api/internal/identity"
)

// weekdays is the fixed round-robin posting window.
var weekdays = [5]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// MarketingHandler handles trend, schedule and publish endpoints.
type MarketingHandler struct {
	*Handler
}

// NewMarketingHandler creates a new marketing handler.
func NewMarketingHandler(base *Handler) *MarketingHandler {
	return &MarketingHandler{Handler: base}
}

// RegisterRoutes registers marketing routes.
func (h *MarketingHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/marketing", func(r chi.Router) {
		r.Post("/trends", h.GetTrends)
		r.Post("/schedule", h.GetSchedule)
		r.Post("/publish", h.Publish)
	})
}

type trendsRequest struct {
	SurveyData domain.Survey `json:"surveyData"`
}

type scheduleRequest struct {
	Trends []string `json:"trends"`
}

// ScheduleEntry is one planned posting slot.
type ScheduleEntry struct {
	Day     string `json:"day"`
	Time    string `json:"time"`
	Type    string `json:"type"`
	Content string `json:"content"`
}

// generateTrends derives five placeholder trend strings from the company
// name. Deterministic: two identical surveys produce identical trends.
func generateTrends(survey domain.Survey) []string {
	trends := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		trends = append(trends, fmt.Sprintf("Trend for %s #%d", survey.CompanyName, i+1))
	}
	return trends
}

// generateSchedule maps each trend to a weekday/time slot: days wrap through
// the five-day week while the hour keeps incrementing from 09:00 per index.
func generateSchedule(trends []string) []ScheduleEntry {
	schedule := make([]ScheduleEntry, 0, len(trends))
	for i, trend := range trends {
		schedule = append(schedule, ScheduleEntry{
			Day:     weekdays[i%len(weekdays)],
			Time:    fmt.Sprintf("%02d:00", 9+i),
			Type:    "Text",
			Content: trend,
		})
	}
	return schedule
}

// GetTrends returns placeholder trends for the surveyed company. Guests can
// fetch trends; authenticated callers additionally get the batch persisted in
// the background, best effort.
func (h *MarketingHandler) GetTrends(w http.ResponseWriter, r *http.Request) {
	var req trendsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.SurveyData.CompanyName == "" {
		Error(w, http.StatusBadRequest, "companyName is required")
		return
	}

	trends := generateTrends(req.SurveyData)

	user := identity.FromContext(r.Context())
	if !user.IsGuest {
		userID := user.ID
		persistAsync("marketing trends", func(ctx context.Context) error {
			_, err := h.repo.CreateMarketingRecord(ctx, &domain.MarketingRecord{
				UserID: userID,
				Trends: trends,
			})
			return err
		})
	}

	JSON(w, http.StatusOK, map[string]interface{}{"trends": trends})
}

// GetSchedule returns a posting schedule for the given trends. Guests are
// rejected.
func (h *MarketingHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	user := identity.FromContext(r.Context())
	if user.IsGuest {
		Error(w, http.StatusForbidden, "Guests cannot generate schedule. Please log in.")
		return
	}

	var req scheduleRequest
	if !decodeBody(w, r, &req) {
		return
	}

	JSON(w, http.StatusOK, map[string]interface{}{"schedule": generateSchedule(req.Trends)})
}

// Publish acknowledges a scheduled item. Placeholder: no external publish
// happens, and any caller identity is accepted.
func (h *MarketingHandler) Publish(w http.ResponseWriter, r *http.Request) {
	var item ScheduleEntry
	if !decodeBody(w, r, &item) {
		return
	}

	JSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Content scheduled for %s at %s successfully.", item.Day, item.Time),
	})
}
