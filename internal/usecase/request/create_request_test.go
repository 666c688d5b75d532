package request_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
	"github.com/ignatzorin/skillswap-backend/internal/infrastructure/memory"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
	"github.com/ignatzorin/skillswap-backend/internal/usecase/request"
)

type fixture struct {
	skills   *memory.SkillStore
	requests *memory.RequestStore

	create     *request.CreateRequestUseCase
	list       *request.ListRequestsUseCase
	get        *request.GetRequestUseCase
	transition *request.TransitionRequestUseCase
}

func newFixture(policy valueobject.CompletionPolicy) *fixture {
	skills := memory.NewSkillStore()
	requests := memory.NewRequestStore()
	return &fixture{
		skills:     skills,
		requests:   requests,
		create:     request.NewCreateRequestUseCase(requests, skills),
		list:       request.NewListRequestsUseCase(requests),
		get:        request.NewGetRequestUseCase(requests),
		transition: request.NewTransitionRequestUseCase(requests, policy),
	}
}

func (f *fixture) addSkill(t *testing.T, owner uuid.UUID, name string, pricing valueobject.Pricing) *entity.Skill {
	t.Helper()
	s, err := entity.NewSkill(owner, name, "описание", valueobject.CategoryMusic, valueobject.LevelBeginner, pricing)
	require.NoError(t, err)
	require.NoError(t, f.skills.Create(context.Background(), s))
	return s
}

func (f *fixture) send(t *testing.T, from uuid.UUID, s *entity.Skill) *entity.SkillRequest {
	t.Helper()
	req, err := f.create.Execute(context.Background(), request.CreateRequestInput{
		FromUserID: from,
		ToUserID:   s.OwnerID,
		SkillID:    s.ID,
		Message:    "Хочу научиться",
	})
	require.NoError(t, err)
	return req
}

func TestCreateRequestUseCase_Success(t *testing.T) {
	f := newFixture(valueobject.CompletionByEither)
	owner, learner := uuid.New(), uuid.New()
	s := f.addSkill(t, owner, "Guitar Lessons", valueobject.Free())

	req, err := f.create.Execute(context.Background(), request.CreateRequestInput{
		FromUserID:        learner,
		ToUserID:          owner,
		SkillID:           s.ID,
		Message:           "  Привет ",
		PreferredSchedule: string(valueobject.ScheduleWeekendMorning),
	})
	require.NoError(t, err)

	assert.Equal(t, valueobject.RequestStatusPending, req.Status)
	assert.Equal(t, "Guitar Lessons", req.SkillName)
	assert.Equal(t, "Привет", req.Message)
	assert.Equal(t, valueobject.ScheduleWeekendMorning, req.PreferredSchedule)
	assert.False(t, req.Terms.IsPaid())
	assert.Nil(t, req.CompletedAt)
}

func TestCreateRequestUseCase_Errors(t *testing.T) {
	f := newFixture(valueobject.CompletionByEither)
	owner, learner := uuid.New(), uuid.New()
	s := f.addSkill(t, owner, "Guitar", valueobject.Free())
	ctx := context.Background()

	t.Run("self request is validation error before lookup", func(t *testing.T) {
		_, err := f.create.Execute(ctx, request.CreateRequestInput{FromUserID: owner, ToUserID: owner, SkillID: uuid.New()})
		assert.True(t, apperror.IsValidation(err), "got %v", err)
	})

	t.Run("unknown skill", func(t *testing.T) {
		_, err := f.create.Execute(ctx, request.CreateRequestInput{FromUserID: learner, ToUserID: owner, SkillID: uuid.New()})
		assert.True(t, apperror.IsNotFound(err), "got %v", err)
	})

	t.Run("receiver is not owner", func(t *testing.T) {
		_, err := f.create.Execute(ctx, request.CreateRequestInput{FromUserID: learner, ToUserID: uuid.New(), SkillID: s.ID})
		assert.True(t, apperror.IsConsistency(err), "got %v", err)
	})

	t.Run("owner without explicit receiver", func(t *testing.T) {
		_, err := f.create.Execute(ctx, request.CreateRequestInput{FromUserID: owner, SkillID: s.ID})
		assert.True(t, apperror.IsValidation(err), "got %v", err)
	})

	t.Run("schedule too long", func(t *testing.T) {
		long := strings.Repeat("x", 100)
		_, err := f.create.Execute(ctx, request.CreateRequestInput{FromUserID: learner, ToUserID: owner, SkillID: s.ID, PreferredSchedule: long})
		assert.True(t, apperror.IsValidation(err), "got %v", err)
	})

	sent, err := f.list.Sent(ctx, learner)
	require.NoError(t, err)
	assert.Empty(t, sent)
}

func TestCreateRequestUseCase_TermsSnapshot(t *testing.T) {
	f := newFixture(valueobject.CompletionByEither)
	ctx := context.Background()
	owner, learner := uuid.New(), uuid.New()

	paid, err := valueobject.Paid(20)
	require.NoError(t, err)
	s := f.addSkill(t, owner, "Guitar", paid)
	req := f.send(t, learner, s)

	s.Pricing = valueobject.Free()
	s.Name = "Ukulele"
	require.NoError(t, f.skills.Update(ctx, s))

	stored, err := f.get.Execute(ctx, req.ID, learner)
	require.NoError(t, err)
	p, ok := stored.Terms.Price()
	assert.True(t, ok)
	assert.Equal(t, 20.0, p)
	assert.Equal(t, "Guitar", stored.SkillName)

	require.NoError(t, f.skills.Delete(ctx, s.ID))
	_, err = f.transition.Execute(ctx, req.ID, owner, "approved")
	require.NoError(t, err)
}

func TestCreateRequestUseCase_TermsKeepPriceAfterRaise(t *testing.T) {
	f := newFixture(valueobject.CompletionByEither)
	ctx := context.Background()
	owner, learner := uuid.New(), uuid.New()

	price25, err := valueobject.Paid(25)
	require.NoError(t, err)
	s := f.addSkill(t, owner, "Guitar", price25)
	before := f.send(t, learner, s)

	price40, err := valueobject.Paid(40)
	require.NoError(t, err)
	s.Pricing = price40
	require.NoError(t, f.skills.Update(ctx, s))

	stored, err := f.get.Execute(ctx, before.ID, owner)
	require.NoError(t, err)
	p, ok := stored.Terms.Price()
	require.True(t, ok)
	assert.Equal(t, 25.0, p)

	after := f.send(t, uuid.New(), s)
	p, ok = after.Terms.Price()
	require.True(t, ok)
	assert.Equal(t, 40.0, p)
}

func TestListRequestsUseCase_Partition(t *testing.T) {
	f := newFixture(valueobject.CompletionByEither)
	ctx := context.Background()
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	skillB := f.addSkill(t, b, "B skill", valueobject.Free())
	skillC := f.addSkill(t, c, "C skill", valueobject.Free())

	ab := f.send(t, a, skillB)
	ac := f.send(t, a, skillC)
	cb := f.send(t, c, skillB)

	expectIDs := func(t *testing.T, got []*entity.SkillRequest, want ...uuid.UUID) {
		t.Helper()
		ids := make([]uuid.UUID, len(got))
		for i, r := range got {
			ids[i] = r.ID
		}
		assert.ElementsMatch(t, want, ids)
	}

	sentA, err := f.list.Sent(ctx, a)
	require.NoError(t, err)
	expectIDs(t, sentA, ab.ID, ac.ID)

	receivedB, err := f.list.Received(ctx, b)
	require.NoError(t, err)
	expectIDs(t, receivedB, ab.ID, cb.ID)

	sentC, err := f.list.Sent(ctx, c)
	require.NoError(t, err)
	receivedC, err := f.list.Received(ctx, c)
	require.NoError(t, err)
	expectIDs(t, sentC, cb.ID)
	expectIDs(t, receivedC, ac.ID)

	for _, r := range append(sentA, receivedB...) {
		assert.NotEqual(t, r.FromUserID, r.ToUserID)
	}
}

func TestGetRequestUseCase_ParticipantsOnly(t *testing.T) {
	f := newFixture(valueobject.CompletionByEither)
	ctx := context.Background()
	owner, learner := uuid.New(), uuid.New()
	req := f.send(t, learner, f.addSkill(t, owner, "Guitar", valueobject.Free()))

	_, err := f.get.Execute(ctx, req.ID, owner)
	assert.NoError(t, err)
	_, err = f.get.Execute(ctx, req.ID, learner)
	assert.NoError(t, err)
	_, err = f.get.Execute(ctx, req.ID, uuid.New())
	assert.True(t, apperror.IsForbidden(err))
	_, err = f.get.Execute(ctx, uuid.New(), owner)
	assert.True(t, apperror.IsNotFound(err))
}

func TestCreateRequestUseCase_DefaultsReceiverToOwner(t *testing.T) {
	f := newFixture(valueobject.CompletionByEither)
	owner, learner := uuid.New(), uuid.New()
	s := f.addSkill(t, owner, "Guitar", valueobject.Free())

	req, err := f.create.Execute(context.Background(), request.CreateRequestInput{FromUserID: learner, SkillID: s.ID})
	require.NoError(t, err)
	assert.Equal(t, owner, req.ToUserID)
}
