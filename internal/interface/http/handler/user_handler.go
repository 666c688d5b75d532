package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/skillswap-backend/internal/interface/http/dto"
	"github.com/ignatzorin/skillswap-backend/internal/interface/http/response"
	"github.com/ignatzorin/skillswap-backend/internal/usecase/progress"
	"github.com/ignatzorin/skillswap-backend/internal/usecase/skill"
)

// UserHandler отдаёт публичные данные пользователя: его навыки и прогресс.
type UserHandler struct {
	listOwnerSkillsUC *skill.ListOwnerSkillsUseCase
	getProgressUC     *progress.GetProgressUseCase
}

func NewUserHandler(listOwnerSkillsUC *skill.ListOwnerSkillsUseCase, getProgressUC *progress.GetProgressUseCase) *UserHandler {
	return &UserHandler{
		listOwnerSkillsUC: listOwnerSkillsUC,
		getProgressUC:     getProgressUC,
	}
}

func (h *UserHandler) ListSkills(c *gin.Context) {
	ownerID, ok := pathID(c, "id")
	if !ok {
		return
	}

	skills, err := h.listOwnerSkillsUC.Execute(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToSkillResponses(skills))
}

func (h *UserHandler) GetProgress(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	p, err := h.getProgressUC.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, p)
}
