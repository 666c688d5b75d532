package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
	"github.com/ignatzorin/skillswap-backend/internal/http/middleware"
	"github.com/ignatzorin/skillswap-backend/internal/infrastructure/cache"
	"github.com/ignatzorin/skillswap-backend/internal/infrastructure/memory"
	"github.com/ignatzorin/skillswap-backend/internal/interface/http/handler"
	"github.com/ignatzorin/skillswap-backend/internal/usecase/progress"
	"github.com/ignatzorin/skillswap-backend/internal/usecase/request"
	"github.com/ignatzorin/skillswap-backend/internal/usecase/skill"
	"github.com/ignatzorin/skillswap-backend/internal/validation"
)

type recordedEvent struct {
	kind    string
	request *entity.SkillRequest
}

type recordingEvents struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *recordingEvents) RequestCreated(req *entity.SkillRequest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{kind: "created", request: req})
}

func (r *recordingEvents) RequestTransitioned(req *entity.SkillRequest, _ uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{kind: string(req.Status), request: req})
}

type testServer struct {
	engine *gin.Engine
	events *recordingEvents
}

// newTestServer собирает маршруты на in-memory хранилищах. Пользователь
// передаётся заголовком X-User-ID вместо JWT.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.RegisterGinValidators()

	skills := memory.NewSkillStore()
	requests := memory.NewRequestStore()
	reviews := memory.NewReviewStore(skills)
	progressUC := progress.NewGetProgressUseCase(skills, requests, reviews, cache.NewMemoryProgressCache(time.Minute))
	events := &recordingEvents{}

	skillHandler := handler.NewSkillHandler(
		skill.NewCreateSkillUseCase(skills),
		skill.NewGetSkillUseCase(skills),
		skill.NewListSkillsUseCase(skills),
		skill.NewUpdateSkillUseCase(skills),
		skill.NewDeleteSkillUseCase(skills),
		skill.NewAddReviewUseCase(skills, reviews),
		skill.NewListReviewsUseCase(skills, reviews),
		progressUC,
	)
	requestHandler := handler.NewRequestHandler(
		request.NewCreateRequestUseCase(requests, skills),
		request.NewListRequestsUseCase(requests),
		request.NewGetRequestUseCase(requests),
		request.NewTransitionRequestUseCase(requests, valueobject.CompletionByEither),
		progressUC,
		events,
	)
	userHandler := handler.NewUserHandler(skill.NewListOwnerSkillsUseCase(skills), progressUC)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if id, err := uuid.Parse(c.GetHeader("X-User-ID")); err == nil {
			c.Set(middleware.ContextUserIDKey, id)
		}
		c.Next()
	})
	r.GET("/api/skills", skillHandler.ListSkills)
	r.GET("/api/skills/:id", skillHandler.GetSkill)
	r.POST("/api/skills", skillHandler.CreateSkill)
	r.PUT("/api/skills/:id", skillHandler.UpdateSkill)
	r.DELETE("/api/skills/:id", skillHandler.DeleteSkill)
	r.GET("/api/skills/:id/reviews", skillHandler.ListReviews)
	r.POST("/api/skills/:id/reviews", skillHandler.AddReview)
	r.POST("/api/skills/:id/requests", requestHandler.CreateRequest)
	r.GET("/api/requests/sent", requestHandler.ListSent)
	r.GET("/api/requests/received", requestHandler.ListReceived)
	r.GET("/api/requests/:id", requestHandler.GetRequest)
	r.PUT("/api/requests/:id/status", requestHandler.UpdateStatus)
	r.GET("/api/users/:id/skills", userHandler.ListSkills)
	r.GET("/api/users/:id/progress", userHandler.GetProgress)

	return &testServer{engine: r, events: events}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
	Pagination *struct {
		Total   int  `json:"total"`
		Limit   int  `json:"limit"`
		HasMore bool `json:"has_more"`
	} `json:"pagination"`
}

func (s *testServer) do(t *testing.T, method, path string, userID uuid.UUID, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if userID != uuid.Nil {
		req.Header.Set("X-User-ID", userID.String())
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

type skillJSON struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Name        string    `json:"name"`
	IsPaid      bool      `json:"is_paid"`
	Price       *float64  `json:"price"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"review_count"`
}

type requestJSON struct {
	ID          uuid.UUID  `json:"id"`
	FromUserID  uuid.UUID  `json:"from_user_id"`
	ToUserID    uuid.UUID  `json:"to_user_id"`
	SkillName   string     `json:"skill_name"`
	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completed_at"`
}

func (s *testServer) createSkill(t *testing.T, owner uuid.UUID, body map[string]any) skillJSON {
	t.Helper()
	w, env := s.do(t, http.MethodPost, "/api/skills", owner, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var out skillJSON
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func guitarSkill() map[string]any {
	return map[string]any{
		"name":        "Guitar Lessons",
		"description": "Аккорды и бой для начинающих",
		"category":    "music",
		"level":       "beginner",
		"is_paid":     false,
	}
}

func TestSkillHandler_CreateRequiresAuth(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(t, http.MethodPost, "/api/skills", uuid.Nil, guitarSkill())

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
}

func TestSkillHandler_CreateValidation(t *testing.T) {
	s := newTestServer(t)
	owner := uuid.New()

	t.Run("unknown category", func(t *testing.T) {
		body := guitarSkill()
		body["category"] = "astrology"
		w, env := s.do(t, http.MethodPost, "/api/skills", owner, body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
		assert.Contains(t, env.Error.Details, "category")
	})

	t.Run("paid without price", func(t *testing.T) {
		body := guitarSkill()
		body["is_paid"] = true
		w, env := s.do(t, http.MethodPost, "/api/skills", owner, body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})
}

func TestSkillHandler_CatalogFlow(t *testing.T) {
	s := newTestServer(t)
	owner, other := uuid.New(), uuid.New()

	free := s.createSkill(t, owner, guitarSkill())
	paidBody := map[string]any{
		"name":        "Go для бэкенда",
		"description": "Конкурентность и каналы",
		"category":    "programming",
		"level":       "advanced",
		"is_paid":     true,
		"price":       50.0,
	}
	paid := s.createSkill(t, owner, paidBody)
	require.NotNil(t, paid.Price)
	assert.Equal(t, 50.0, *paid.Price)
	assert.Nil(t, free.Price)

	t.Run("search is case-insensitive", func(t *testing.T) {
		w, env := s.do(t, http.MethodGet, "/api/skills?q=GUITAR", uuid.Nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var items []skillJSON
		require.NoError(t, json.Unmarshal(env.Data, &items))
		require.Len(t, items, 1)
		assert.Equal(t, free.ID, items[0].ID)
		require.NotNil(t, env.Pagination)
		assert.Equal(t, 1, env.Pagination.Total)
	})

	t.Run("price filter", func(t *testing.T) {
		_, env := s.do(t, http.MethodGet, "/api/skills?price=paid", uuid.Nil, nil)
		var items []skillJSON
		require.NoError(t, json.Unmarshal(env.Data, &items))
		require.Len(t, items, 1)
		assert.Equal(t, paid.ID, items[0].ID)
	})

	t.Run("unknown sort", func(t *testing.T) {
		w, env := s.do(t, http.MethodGet, "/api/skills?sort=popular", uuid.Nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})

	t.Run("limit is clamped", func(t *testing.T) {
		_, env := s.do(t, http.MethodGet, "/api/skills?limit=1", uuid.Nil, nil)
		require.NotNil(t, env.Pagination)
		assert.Equal(t, 1, env.Pagination.Limit)
		assert.True(t, env.Pagination.HasMore)
	})

	t.Run("update by stranger is forbidden", func(t *testing.T) {
		w, env := s.do(t, http.MethodPut, "/api/skills/"+free.ID.String(), other, map[string]any{"name": "Чужой"})
		assert.Equal(t, http.StatusForbidden, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "FORBIDDEN", env.Error.Code)
	})

	t.Run("update by owner", func(t *testing.T) {
		w, env := s.do(t, http.MethodPut, "/api/skills/"+free.ID.String(), owner, map[string]any{"name": "Guitar Pro"})
		require.Equal(t, http.StatusOK, w.Code)
		var out skillJSON
		require.NoError(t, json.Unmarshal(env.Data, &out))
		assert.Equal(t, "Guitar Pro", out.Name)
	})

	t.Run("review updates rating", func(t *testing.T) {
		w, _ := s.do(t, http.MethodPost, "/api/skills/"+free.ID.String()+"/reviews", other, map[string]any{"rating": 4, "comment": "Отлично"})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		_, env := s.do(t, http.MethodGet, "/api/skills/"+free.ID.String(), uuid.Nil, nil)
		var out skillJSON
		require.NoError(t, json.Unmarshal(env.Data, &out))
		assert.Equal(t, 4.0, out.Rating)
		assert.Equal(t, 1, out.ReviewCount)
	})

	t.Run("owner skills", func(t *testing.T) {
		_, env := s.do(t, http.MethodGet, "/api/users/"+owner.String()+"/skills", uuid.Nil, nil)
		var items []skillJSON
		require.NoError(t, json.Unmarshal(env.Data, &items))
		assert.Len(t, items, 2)
	})

	t.Run("delete", func(t *testing.T) {
		w, _ := s.do(t, http.MethodDelete, "/api/skills/"+paid.ID.String(), owner, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w, env := s.do(t, http.MethodGet, "/api/skills/"+paid.ID.String(), uuid.Nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
	})
}

func TestSkillHandler_InvalidID(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(t, http.MethodGet, "/api/skills/not-a-uuid", uuid.Nil, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

type reviewJSON struct {
	ID       uuid.UUID  `json:"id"`
	SkillID  uuid.UUID  `json:"skill_id"`
	AuthorID uuid.UUID  `json:"author_id"`
	Rating   int        `json:"rating"`
	Comment  string     `json:"comment"`
	Skill    *skillJSON `json:"skill"`
}

func TestSkillHandler_ReviewsAndOwnerProgress(t *testing.T) {
	s := newTestServer(t)
	owner, first, second := uuid.New(), uuid.New(), uuid.New()
	guitar := s.createSkill(t, owner, guitarSkill())

	ownerProgress := func(t *testing.T) progress.Progress {
		t.Helper()
		w, env := s.do(t, http.MethodGet, "/api/users/"+owner.String()+"/progress", uuid.Nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var p progress.Progress
		require.NoError(t, json.Unmarshal(env.Data, &p))
		return p
	}

	// Прогресс попадает в кэш до отзыва.
	before := ownerProgress(t)
	assert.Equal(t, 10, before.XP)
	assert.NotContains(t, before.Achievements, progress.AchievementFirstReview)

	w, env := s.do(t, http.MethodPost, "/api/skills/"+guitar.ID.String()+"/reviews", first, map[string]any{"rating": 5, "comment": "Супер"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created reviewJSON
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotNil(t, created.Skill)
	assert.Equal(t, 1, created.Skill.ReviewCount)

	w, _ = s.do(t, http.MethodPost, "/api/skills/"+guitar.ID.String()+"/reviews", second, map[string]any{"rating": 3})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	t.Run("five-star review adds XP", func(t *testing.T) {
		p := ownerProgress(t)
		assert.Equal(t, 1, p.SkillsCreated)
		assert.Equal(t, 1, p.FiveStarReviews)
		assert.Equal(t, 25, p.XP)
		assert.Contains(t, p.Achievements, progress.AchievementFirstReview)
	})

	t.Run("list reviews newest first", func(t *testing.T) {
		w, env := s.do(t, http.MethodGet, "/api/skills/"+guitar.ID.String()+"/reviews", uuid.Nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var items []reviewJSON
		require.NoError(t, json.Unmarshal(env.Data, &items))
		require.Len(t, items, 2)
		assert.Equal(t, second, items[0].AuthorID)
		assert.Equal(t, 3, items[0].Rating)
		assert.Equal(t, first, items[1].AuthorID)
		assert.Equal(t, "Супер", items[1].Comment)
		assert.Nil(t, items[0].Skill)
	})

	t.Run("skill without reviews", func(t *testing.T) {
		other := s.createSkill(t, owner, map[string]any{
			"name": "Укулеле", "description": "Три аккорда", "category": "music", "level": "beginner",
		})
		w, env := s.do(t, http.MethodGet, "/api/skills/"+other.ID.String()+"/reviews", uuid.Nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", string(env.Data))
	})

	t.Run("unknown skill", func(t *testing.T) {
		w, env := s.do(t, http.MethodGet, "/api/skills/"+uuid.New().String()+"/reviews", uuid.Nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
	})
}

func TestRequestHandler_Lifecycle(t *testing.T) {
	s := newTestServer(t)
	alice, bob := uuid.New(), uuid.New()
	guitar := s.createSkill(t, alice, guitarSkill())

	w, env := s.do(t, http.MethodPost, "/api/skills/"+guitar.ID.String()+"/requests", bob, map[string]any{
		"message":            "Научишь?",
		"preferred_schedule": "weekend-morning",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created requestJSON
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, alice, created.ToUserID)
	assert.Equal(t, "pending", created.Status)
	assert.Equal(t, "Guitar Lessons", created.SkillName)

	statusPath := "/api/requests/" + created.ID.String() + "/status"

	t.Run("sender cannot approve", func(t *testing.T) {
		w, env := s.do(t, http.MethodPut, statusPath, bob, map[string]any{"status": "approved"})
		assert.Equal(t, http.StatusForbidden, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "FORBIDDEN", env.Error.Code)
	})

	t.Run("unknown status", func(t *testing.T) {
		w, _ := s.do(t, http.MethodPut, statusPath, alice, map[string]any{"status": "archived"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("stranger cannot read", func(t *testing.T) {
		w, _ := s.do(t, http.MethodGet, "/api/requests/"+created.ID.String(), uuid.New(), nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	w, _ = s.do(t, http.MethodPut, statusPath, alice, map[string]any{"status": "approved"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, env = s.do(t, http.MethodPut, statusPath, bob, map[string]any{"status": "completed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var completed requestJSON
	require.NoError(t, json.Unmarshal(env.Data, &completed))
	assert.Equal(t, "completed", completed.Status)
	assert.NotNil(t, completed.CompletedAt)

	t.Run("terminal state rejects transitions", func(t *testing.T) {
		w, env := s.do(t, http.MethodPut, statusPath, alice, map[string]any{"status": "rejected"})
		assert.Equal(t, http.StatusConflict, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "INVALID_TRANSITION", env.Error.Code)
		assert.Equal(t, "completed", env.Error.Details["from"])
	})

	t.Run("lists", func(t *testing.T) {
		_, env := s.do(t, http.MethodGet, "/api/requests/sent", bob, nil)
		var sent []requestJSON
		require.NoError(t, json.Unmarshal(env.Data, &sent))
		require.Len(t, sent, 1)
		assert.Equal(t, created.ID, sent[0].ID)

		_, env = s.do(t, http.MethodGet, "/api/requests/received", bob, nil)
		var received []requestJSON
		require.NoError(t, json.Unmarshal(env.Data, &received))
		assert.Empty(t, received)
	})

	t.Run("progress counts the exchange", func(t *testing.T) {
		_, env := s.do(t, http.MethodGet, "/api/users/"+alice.String()+"/progress", uuid.Nil, nil)
		var p progress.Progress
		require.NoError(t, json.Unmarshal(env.Data, &p))
		assert.Equal(t, 1, p.SkillsCreated)
		assert.Equal(t, 1, p.ExchangesCompleted)
		assert.Equal(t, 35, p.XP)
	})

	s.events.mu.Lock()
	defer s.events.mu.Unlock()
	kinds := make([]string, 0, len(s.events.events))
	for _, e := range s.events.events {
		kinds = append(kinds, e.kind)
	}
	assert.Equal(t, []string{"created", "approved", "completed"}, kinds)
}

func TestRequestHandler_SelfRequest(t *testing.T) {
	s := newTestServer(t)
	alice := uuid.New()
	guitar := s.createSkill(t, alice, guitarSkill())

	w, env := s.do(t, http.MethodPost, "/api/skills/"+guitar.ID.String()+"/requests", alice, map[string]any{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}
