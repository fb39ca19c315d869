package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/ledgerline/emi-scheduler/internal/service"
	apperrors "github.com/ledgerline/emi-scheduler/pkg/errors"
	"github.com/ledgerline/emi-scheduler/pkg/response"
)

type SchedulerHandler struct {
	service   *service.SchedulerService
	validator *validator.Validate
}

func NewSchedulerHandler(service *service.SchedulerService) *SchedulerHandler {
	return &SchedulerHandler{
		service:   service,
		validator: validator.New(),
	}
}

type upcomingQuery struct {
	Days int `validate:"gte=0,lte=60"`
}

// DailyCheck runs the gated once-a-day check for a user. Hitting it twice in
// one local day returns an empty result the second time.
func (h *SchedulerHandler) DailyCheck(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	result, err := h.service.Initialize(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "daily EMI check failed", err)
		return
	}

	response.Success(w, result)
}

// RunEMIs processes the user's due EMIs immediately, bypassing the daily
// gate. Safe to repeat: the ledger-derived idempotency check reports already
// recorded cycles as skipped.
func (h *SchedulerHandler) RunEMIs(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	result, err := h.service.ProcessDailyEMIs(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "EMI run failed", err)
		return
	}

	response.Success(w, result)
}

// GetUpcoming lists EMIs due within the lookahead window (query param "days",
// default from configuration).
func (h *SchedulerHandler) GetUpcoming(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	q := upcomingQuery{}
	if raw := r.URL.Query().Get("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "days must be an integer", err)
			return
		}
		q.Days = days
	}
	if err := h.validator.Struct(q); err != nil {
		response.BadRequest(w, "days must be between 0 and 60", err)
		return
	}

	upcoming, err := h.service.GetUpcomingEMIs(r.Context(), userID, q.Days)
	if err != nil {
		response.InternalServerError(w, "failed to list upcoming EMIs", err)
		return
	}

	response.Success(w, upcoming)
}

// CreateReminders plans deduplicated reminders for the user's upcoming EMIs.
func (h *SchedulerHandler) CreateReminders(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	created, err := h.service.CreateEMIReminders(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "failed to create reminders", err)
		return
	}

	response.Created(w, created)
}

// GetNotifications lists the user's unread reminders.
func (h *SchedulerHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	notifications, err := h.service.GetUnreadNotifications(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "failed to list notifications", err)
		return
	}

	response.Success(w, notifications)
}

// MarkNotificationRead marks one notification as read.
func (h *SchedulerHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "invalid notification id", err)
		return
	}

	if err := h.service.MarkAsRead(r.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotificationNotFound) {
			response.NotFound(w, "notification not found")
			return
		}
		response.InternalServerError(w, "failed to mark notification read", err)
		return
	}

	response.Success(w, map[string]string{"id": id.String(), "status": "read"})
}
