package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/interface/http/dto"
	"github.com/ignatzorin/skillswap-backend/internal/interface/http/response"
	"github.com/ignatzorin/skillswap-backend/internal/metrics"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
	"github.com/ignatzorin/skillswap-backend/internal/usecase/request"
)

// RequestEvents получает уведомления о жизненном цикле заявок.
type RequestEvents interface {
	RequestCreated(req *entity.SkillRequest)
	RequestTransitioned(req *entity.SkillRequest, actorID uuid.UUID)
}

type RequestHandler struct {
	createRequestUC *request.CreateRequestUseCase
	listRequestsUC  *request.ListRequestsUseCase
	getRequestUC    *request.GetRequestUseCase
	transitionUC    *request.TransitionRequestUseCase
	progress        ProgressInvalidator
	events          RequestEvents
}

func NewRequestHandler(
	createRequestUC *request.CreateRequestUseCase,
	listRequestsUC *request.ListRequestsUseCase,
	getRequestUC *request.GetRequestUseCase,
	transitionUC *request.TransitionRequestUseCase,
	progress ProgressInvalidator,
	events RequestEvents,
) *RequestHandler {
	return &RequestHandler{
		createRequestUC: createRequestUC,
		listRequestsUC:  listRequestsUC,
		getRequestUC:    getRequestUC,
		transitionUC:    transitionUC,
		progress:        progress,
		events:          events,
	}
}

// CreateRequest обслуживает POST /api/skills/:id/requests.
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	skillID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateSkillRequestRequest
	if !bindJSON(c, &req) {
		return
	}
	var toUserID uuid.UUID
	if req.ToUserID != "" {
		parsed, err := uuid.Parse(req.ToUserID)
		if err != nil {
			response.ValidationFailed(c, "некорректный получатель", map[string]any{"to_user_id": req.ToUserID})
			return
		}
		toUserID = parsed
	}

	created, err := h.createRequestUC.Execute(c.Request.Context(), request.CreateRequestInput{
		FromUserID:        userID,
		ToUserID:          toUserID,
		SkillID:           skillID,
		Message:           req.Message,
		PreferredSchedule: req.PreferredSchedule,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.progress.Invalidate(c.Request.Context(), created.FromUserID, created.ToUserID)
	h.events.RequestCreated(created)
	response.Created(c, dto.ToSkillRequestResponse(created))
}

func (h *RequestHandler) ListSent(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	requests, err := h.listRequestsUC.Sent(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToSkillRequestResponses(requests))
}

func (h *RequestHandler) ListReceived(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	requests, err := h.listRequestsUC.Received(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToSkillRequestResponses(requests))
}

func (h *RequestHandler) GetRequest(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	requestID, ok := pathID(c, "id")
	if !ok {
		return
	}

	found, err := h.getRequestUC.Execute(c.Request.Context(), requestID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToSkillRequestResponse(found))
}

// UpdateStatus обслуживает PUT /api/requests/:id/status.
func (h *RequestHandler) UpdateStatus(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	requestID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateRequestStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.transitionUC.Execute(c.Request.Context(), requestID, userID, req.Status)
	metrics.RequestTransitions.WithLabelValues(req.Status, metrics.TransitionResult(string(apperror.CodeOf(err)))).Inc()
	if err != nil {
		response.Error(c, err)
		return
	}

	h.progress.Invalidate(c.Request.Context(), updated.FromUserID, updated.ToUserID)
	h.events.RequestTransitioned(updated, userID)
	response.Success(c, dto.ToSkillRequestResponse(updated))
}
