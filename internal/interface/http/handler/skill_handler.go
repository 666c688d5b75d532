package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
	"github.com/ignatzorin/skillswap-backend/internal/interface/http/dto"
	"github.com/ignatzorin/skillswap-backend/internal/interface/http/response"
	"github.com/ignatzorin/skillswap-backend/internal/metrics"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
	"github.com/ignatzorin/skillswap-backend/internal/usecase/skill"
	"github.com/ignatzorin/skillswap-backend/internal/validation"
)

// ProgressInvalidator сбрасывает закэшированный прогресс пользователей.
type ProgressInvalidator interface {
	Invalidate(ctx context.Context, userIDs ...uuid.UUID)
}

type SkillHandler struct {
	createSkillUC *skill.CreateSkillUseCase
	getSkillUC    *skill.GetSkillUseCase
	listSkillsUC  *skill.ListSkillsUseCase
	updateSkillUC *skill.UpdateSkillUseCase
	deleteSkillUC *skill.DeleteSkillUseCase
	addReviewUC   *skill.AddReviewUseCase
	listReviewsUC *skill.ListReviewsUseCase
	progress      ProgressInvalidator
}

func NewSkillHandler(
	createSkillUC *skill.CreateSkillUseCase,
	getSkillUC *skill.GetSkillUseCase,
	listSkillsUC *skill.ListSkillsUseCase,
	updateSkillUC *skill.UpdateSkillUseCase,
	deleteSkillUC *skill.DeleteSkillUseCase,
	addReviewUC *skill.AddReviewUseCase,
	listReviewsUC *skill.ListReviewsUseCase,
	progress ProgressInvalidator,
) *SkillHandler {
	return &SkillHandler{
		createSkillUC: createSkillUC,
		getSkillUC:    getSkillUC,
		listSkillsUC:  listSkillsUC,
		updateSkillUC: updateSkillUC,
		deleteSkillUC: deleteSkillUC,
		addReviewUC:   addReviewUC,
		listReviewsUC: listReviewsUC,
		progress:      progress,
	}
}

// ListSkills обслуживает GET /api/skills?q=&category=&level=&price=free|paid&sort=&limit=&offset=
func (h *SkillHandler) ListSkills(c *gin.Context) {
	filter, err := parseSkillFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	sortBy, err := skill.ParseSortBy(c.Query("sort"))
	if err != nil {
		response.Error(c, err)
		return
	}

	limit, offset := skill.NormalizePage(parseIntQuery(c, "limit", 20), parseIntQuery(c, "offset", 0))

	skills, total, err := h.listSkillsUC.ExecutePage(c.Request.Context(), skill.ListSkillsInput{
		Filter: filter,
		SortBy: sortBy,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, dto.ToSkillResponses(skills), total, limit, offset)
}

func parseSkillFilter(c *gin.Context) (repository.SkillFilter, error) {
	filter := repository.SkillFilter{SearchText: c.Query("q")}

	if err := validation.ValidateLength("q", filter.SearchText, 0, validation.MaxSearchQueryLength); err != nil {
		return filter, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	if v := c.Query("category"); v != "" {
		category, err := valueobject.NewCategory(v)
		if err != nil {
			return filter, err
		}
		filter.Category = &category
	}

	if v := c.Query("level"); v != "" {
		level, err := valueobject.NewLevel(v)
		if err != nil {
			return filter, err
		}
		filter.Level = &level
	}

	switch v := c.Query("price"); v {
	case "":
	case "free":
		filter.FreeOnly = true
	case "paid":
		filter.PaidOnly = true
	default:
		return filter, apperror.New(apperror.ErrCodeValidation, "параметр price должен быть free или paid").WithDetail("price", v)
	}

	return filter, nil
}

func (h *SkillHandler) GetSkill(c *gin.Context) {
	skillID, ok := pathID(c, "id")
	if !ok {
		return
	}

	found, err := h.getSkillUC.Execute(c.Request.Context(), skillID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToSkillResponse(found))
}

func (h *SkillHandler) CreateSkill(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.CreateSkillRequest
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.createSkillUC.Execute(c.Request.Context(), skill.CreateSkillInput{
		OwnerID:     userID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Level:       req.Level,
		IsPaid:      req.IsPaid,
		Price:       req.Price,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	metrics.SkillsCreated.Inc()
	h.progress.Invalidate(c.Request.Context(), userID)
	response.Created(c, dto.ToSkillResponse(created))
}

func (h *SkillHandler) UpdateSkill(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	skillID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateSkillRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.updateSkillUC.Execute(c.Request.Context(), skillID, userID, req.ToPatch())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToSkillResponse(updated))
}

func (h *SkillHandler) DeleteSkill(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	skillID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.deleteSkillUC.Execute(c.Request.Context(), skillID, userID); err != nil {
		response.Error(c, err)
		return
	}

	h.progress.Invalidate(c.Request.Context(), userID)
	response.NoContent(c)
}

func (h *SkillHandler) AddReview(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	skillID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.AddReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review, updated, err := h.addReviewUC.Execute(c.Request.Context(), skill.AddReviewInput{
		SkillID:  skillID,
		AuthorID: userID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.progress.Invalidate(c.Request.Context(), updated.OwnerID)
	response.Created(c, dto.ToReviewResponse(review, updated))
}

// ListReviews обслуживает GET /api/skills/:id/reviews.
func (h *SkillHandler) ListReviews(c *gin.Context) {
	skillID, ok := pathID(c, "id")
	if !ok {
		return
	}

	reviews, err := h.listReviewsUC.Execute(c.Request.Context(), skillID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToReviewResponses(reviews))
}
