package ws

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub
}

func TestHub_DeliversOnlyToTargetUser(t *testing.T) {
	hub := startHub(t)

	alice := NewClient(nil, hub, uuid.New())
	bob := NewClient(nil, hub, uuid.New())
	hub.Register(alice)
	hub.Register(bob)

	require.NoError(t, hub.BroadcastToUser(alice.userID, "request.created", map[string]string{"k": "v"}))

	select {
	case raw := <-alice.send:
		var ev Event
		require.NoError(t, json.Unmarshal(raw, &ev))
		assert.Equal(t, "request.created", ev.Type)
	case <-time.After(time.Second):
		t.Fatal("сообщение не доставлено")
	}

	select {
	case <-bob.send:
		t.Fatal("сообщение доставлено не тому пользователю")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	hub := startHub(t)

	client := NewClient(nil, hub, uuid.New())
	hub.Register(client)
	require.Eventually(t, func() bool { return hub.Connected(client.userID) == 1 }, time.Second, 5*time.Millisecond)

	client.Close()
	client.Close()

	require.Eventually(t, func() bool { return hub.Connected(client.userID) == 0 }, time.Second, 5*time.Millisecond)
	_, ok := <-client.send
	assert.False(t, ok)
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events map[uuid.UUID][]string
}

func (r *recordingBroadcaster) BroadcastToUser(userID uuid.UUID, event string, _ any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[userID] = append(r.events[userID], event)
	return nil
}

func (r *recordingBroadcaster) get(userID uuid.UUID) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events[userID]...)
}

func TestRequestNotifier_NotifiesOtherParticipant(t *testing.T) {
	rec := &recordingBroadcaster{events: map[uuid.UUID][]string{}}
	notifier := NewRequestNotifier(rec)

	req := &entity.SkillRequest{
		ID:         uuid.New(),
		FromUserID: uuid.New(),
		ToUserID:   uuid.New(),
		Status:     valueobject.RequestStatusPending,
	}

	notifier.RequestCreated(req)
	require.Eventually(t, func() bool { return len(rec.get(req.ToUserID)) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{EventRequestCreated}, rec.get(req.ToUserID))

	req.Status = valueobject.RequestStatusApproved
	notifier.RequestTransitioned(req, req.ToUserID)
	require.Eventually(t, func() bool { return len(rec.get(req.FromUserID)) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"request.approved"}, rec.get(req.FromUserID))
}
