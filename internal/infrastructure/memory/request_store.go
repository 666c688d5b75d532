package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

// RequestStore хранит заявки в памяти с индексами по отправителю и получателю.
// Одна запись видна в обоих представлениях.
type RequestStore struct {
	mu         sync.RWMutex
	requests   map[uuid.UUID]*entity.SkillRequest
	bySender   map[uuid.UUID][]uuid.UUID
	byReceiver map[uuid.UUID][]uuid.UUID
}

func NewRequestStore() *RequestStore {
	return &RequestStore{
		requests:   make(map[uuid.UUID]*entity.SkillRequest),
		bySender:   make(map[uuid.UUID][]uuid.UUID),
		byReceiver: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (s *RequestStore) Create(_ context.Context, request *entity.SkillRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.requests[request.ID]; exists {
		return apperror.New(apperror.ErrCodeConsistency, "заявка уже существует").WithDetail("request_id", request.ID.String())
	}
	s.requests[request.ID] = request.Clone()
	s.bySender[request.FromUserID] = append(s.bySender[request.FromUserID], request.ID)
	s.byReceiver[request.ToUserID] = append(s.byReceiver[request.ToUserID], request.ID)
	return nil
}

// UpdateStatus записывает новый статус под блокировкой, только если текущий равен expected.
func (s *RequestStore) UpdateStatus(_ context.Context, request *entity.SkillRequest, expected valueobject.RequestStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.requests[request.ID]
	if !ok {
		return apperror.ErrRequestNotFound.WithDetail("request_id", request.ID.String())
	}
	if stored.Status != expected {
		return repository.ErrStatusChanged
	}

	stored.Status = request.Status
	stored.UpdatedAt = request.UpdatedAt
	if request.CompletedAt != nil {
		completedAt := *request.CompletedAt
		stored.CompletedAt = &completedAt
	}
	return nil
}

func (s *RequestStore) FindByID(_ context.Context, id uuid.UUID) (*entity.SkillRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	request, ok := s.requests[id]
	if !ok {
		return nil, apperror.ErrRequestNotFound.WithDetail("request_id", id.String())
	}
	return request.Clone(), nil
}

func (s *RequestStore) FindBySender(_ context.Context, fromUserID uuid.UUID) ([]*entity.SkillRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(s.bySender[fromUserID]), nil
}

func (s *RequestStore) FindByReceiver(_ context.Context, toUserID uuid.UUID) ([]*entity.SkillRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(s.byReceiver[toUserID]), nil
}

func (s *RequestStore) CountCompletedByParticipant(_ context.Context, userID uuid.UUID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, request := range s.requests {
		if request.Status == valueobject.RequestStatusCompleted && request.IsParticipant(userID) {
			count++
		}
	}
	return count, nil
}

// collect копирует заявки по индексу: новые первыми, при равном времени позже добавленные первыми.
func (s *RequestStore) collect(ids []uuid.UUID) []*entity.SkillRequest {
	result := make([]*entity.SkillRequest, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		result = append(result, s.requests[ids[i]].Clone())
	}
	slices.SortStableFunc(result, func(a, b *entity.SkillRequest) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return result
}
