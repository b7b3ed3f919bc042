package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"roomly/internal/bookings/repository"
	"roomly/internal/bookings/service"
	apperrors "roomly/pkg/errors"
	httputil "roomly/pkg/http"
	"roomly/pkg/logger"
	"roomly/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// bookingResponse decorates the stored booking with its derived lifecycle
// status for API consumers.
type bookingResponse struct {
	*model.Booking
	Status model.BookingStatus `json:"status"`
}

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
	now     func() time.Time
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
		now:     time.Now,
	}
}

func (h *BookingHandler) toResponse(b *model.Booking) bookingResponse {
	return bookingResponse{Booking: b, Status: b.Status(h.now())}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var booking model.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
			Code:  apperrors.CodeBadRequest,
		})
		return
	}

	if err := h.service.Create(r.Context(), &booking); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, h.toResponse(&booking))
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	booking, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, h.toResponse(booking))
}

func (h *BookingHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	startFrom, err := httputil.ExtractTimeParam(r, "start_from")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	startTo, err := httputil.ExtractTimeParam(r, "start_to")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	query := r.URL.Query()
	active := model.ActiveOnly
	if query.Get("include_deleted") == "true" {
		active = model.IncludeDeleted
	}

	filter := repository.ListFilter{
		RoomID:    query.Get("room_id"),
		ManagerID: query.Get("manager_id"),
		StartFrom: startFrom,
		StartTo:   startTo,
		Active:    active,
	}

	bookings, total, err := h.service.GetAll(r.Context(), filter, limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	responses := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		responses = append(responses, h.toResponse(b))
	}

	httputil.WritePaginated(w, responses, total, limit, offset)
}

func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var updates model.BookingUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
			Code:  apperrors.CodeBadRequest,
		})
		return
	}

	booking, err := h.service.Update(r.Context(), id, &updates)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, h.toResponse(booking))
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.Cancel(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *BookingHandler) Availability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	roomID := query.Get("room_id")
	if roomID == "" {
		httputil.WriteError(w, apperrors.InvalidInput("room_id query parameter is required"))
		return
	}

	start, err := httputil.ExtractTimeParam(r, "start_time")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	end, err := httputil.ExtractTimeParam(r, "end_time")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if start == nil || end == nil {
		httputil.WriteError(w, apperrors.InvalidInput("start_time and end_time query parameters are required"))
		return
	}

	result, err := h.service.CheckAvailability(r.Context(), roomID, model.Interval{Start: *start, End: *end})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, result)
}

func (h *BookingHandler) Stats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	roomID := r.URL.Query().Get("room_id")
	if roomID == "" {
		httputil.WriteError(w, apperrors.InvalidInput("room_id query parameter is required"))
		return
	}

	stats, err := h.service.RoomStats(r.Context(), roomID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, stats)
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", h.Create)
	router.GET("/api/v1/bookings", h.GetAll)
	router.GET("/api/v1/bookings/id/:id", h.GetByID)
	router.PATCH("/api/v1/bookings/id/:id", h.Update)
	router.DELETE("/api/v1/bookings/id/:id", h.Cancel)
	router.GET("/api/v1/bookings/availability", h.Availability)
	router.GET("/api/v1/bookings/stats", h.Stats)
}
