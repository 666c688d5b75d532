package progress

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
)

const (
	xpPerSkill          = 10
	xpPerExchange       = 25
	xpPerFiveStarReview = 15
	xpPerLevel          = 100
)

// Идентификаторы достижений, которые открываются счётчиками прогресса.
const (
	AchievementFirstSkill    = "first-skill"
	AchievementFirstExchange = "first-exchange"
	AchievementFirstReview   = "first-review"
)

// Progress — сводка активности пользователя для системы достижений.
// SkillsCreated — число навыков пользователя в каталоге сейчас: удалённый навык
// перестаёт приносить XP.
type Progress struct {
	UserID             uuid.UUID `json:"user_id"`
	SkillsCreated      int       `json:"skills_created"`
	ExchangesCompleted int       `json:"exchanges_completed"`
	FiveStarReviews    int       `json:"five_star_reviews"`
	RequestsSent       int       `json:"requests_sent"`
	RequestsReceived   int       `json:"requests_received"`
	XP                 int       `json:"xp"`
	Level              int       `json:"level"`
	XPToNextLevel      int       `json:"xp_to_next_level"`
	Achievements       []string  `json:"achievements"`
}

// Cache хранит рассчитанный прогресс. Ошибки кэша не должны ломать чтение.
type Cache interface {
	Get(ctx context.Context, userID uuid.UUID) (*Progress, bool)
	Set(ctx context.Context, p *Progress)
	Invalidate(ctx context.Context, userIDs ...uuid.UUID)
}

func calculate(p *Progress) {
	p.XP = p.SkillsCreated*xpPerSkill +
		p.ExchangesCompleted*xpPerExchange +
		p.FiveStarReviews*xpPerFiveStarReview
	p.Level = p.XP/xpPerLevel + 1
	p.XPToNextLevel = xpPerLevel - p.XP%xpPerLevel

	p.Achievements = []string{}
	if p.SkillsCreated > 0 {
		p.Achievements = append(p.Achievements, AchievementFirstSkill)
	}
	if p.ExchangesCompleted > 0 {
		p.Achievements = append(p.Achievements, AchievementFirstExchange)
	}
	if p.FiveStarReviews > 0 {
		p.Achievements = append(p.Achievements, AchievementFirstReview)
	}
}

type GetProgressUseCase struct {
	skillRepo   repository.SkillRepository
	requestRepo repository.SkillRequestRepository
	reviewRepo  repository.ReviewRepository
	cache       Cache

	// epoch растёт при каждой инвалидации. Результат, посчитанный до неё,
	// в кэш не попадает.
	epoch atomic.Uint64
}

func NewGetProgressUseCase(
	skillRepo repository.SkillRepository,
	requestRepo repository.SkillRequestRepository,
	reviewRepo repository.ReviewRepository,
	cache Cache,
) *GetProgressUseCase {
	return &GetProgressUseCase{
		skillRepo:   skillRepo,
		requestRepo: requestRepo,
		reviewRepo:  reviewRepo,
		cache:       cache,
	}
}

func (uc *GetProgressUseCase) Execute(ctx context.Context, userID uuid.UUID) (*Progress, error) {
	if uc.cache != nil {
		if cached, ok := uc.cache.Get(ctx, userID); ok {
			return cached, nil
		}
	}
	epoch := uc.epoch.Load()

	skills, err := uc.skillRepo.CountByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	completed, err := uc.requestRepo.CountCompletedByParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}
	fiveStar, err := uc.reviewRepo.CountFiveStarByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	sent, err := uc.requestRepo.FindBySender(ctx, userID)
	if err != nil {
		return nil, err
	}
	received, err := uc.requestRepo.FindByReceiver(ctx, userID)
	if err != nil {
		return nil, err
	}

	p := &Progress{
		UserID:             userID,
		SkillsCreated:      skills,
		ExchangesCompleted: completed,
		FiveStarReviews:    fiveStar,
		RequestsSent:       len(sent),
		RequestsReceived:   len(received),
	}
	calculate(p)

	if uc.cache != nil && uc.epoch.Load() == epoch {
		uc.cache.Set(ctx, p)
		// Инвалидация могла пройти между проверкой и записью.
		if uc.epoch.Load() != epoch {
			uc.cache.Invalidate(ctx, userID)
		}
	}
	return p, nil
}

// Invalidate сбрасывает кэш прогресса участников изменившейся сущности.
func (uc *GetProgressUseCase) Invalidate(ctx context.Context, userIDs ...uuid.UUID) {
	uc.epoch.Add(1)
	if uc.cache != nil {
		uc.cache.Invalidate(ctx, userIDs...)
	}
}
