package ws

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/goroutine"
	"github.com/ignatzorin/skillswap-backend/internal/logger"
)

const (
	EventRequestCreated = "request.created"
	eventRequestPrefix  = "request."
)

// Broadcaster доставляет событие пользователю.
type Broadcaster interface {
	BroadcastToUser(userID uuid.UUID, event string, data any) error
}

// RequestEvent — полезная нагрузка событий жизненного цикла заявки.
type RequestEvent struct {
	RequestID uuid.UUID `json:"request_id"`
	SkillID   uuid.UUID `json:"skill_id"`
	SkillName string    `json:"skill_name"`
	Status    string    `json:"status"`
	ActorID   uuid.UUID `json:"actor_id"`
	At        time.Time `json:"at"`
}

// RequestNotifier сообщает второй стороне заявки о её создании и смене статуса.
type RequestNotifier struct {
	hub Broadcaster
}

func NewRequestNotifier(hub Broadcaster) *RequestNotifier {
	return &RequestNotifier{hub: hub}
}

// RequestCreated уведомляет получателя о новой заявке.
func (n *RequestNotifier) RequestCreated(req *entity.SkillRequest) {
	n.publish(req.ToUserID, EventRequestCreated, req, req.FromUserID)
}

// RequestTransitioned уведомляет участника, который не выполнял переход.
func (n *RequestNotifier) RequestTransitioned(req *entity.SkillRequest, actorID uuid.UUID) {
	recipient := req.FromUserID
	if actorID == req.FromUserID {
		recipient = req.ToUserID
	}
	n.publish(recipient, eventRequestPrefix+string(req.Status), req, actorID)
}

func (n *RequestNotifier) publish(recipient uuid.UUID, event string, req *entity.SkillRequest, actorID uuid.UUID) {
	if n == nil || n.hub == nil {
		return
	}

	payload := RequestEvent{
		RequestID: req.ID,
		SkillID:   req.SkillID,
		SkillName: req.SkillName,
		Status:    string(req.Status),
		ActorID:   actorID,
		At:        req.UpdatedAt,
	}

	goroutine.SafeGo("ws.notify", func() {
		if err := n.hub.BroadcastToUser(recipient, event, payload); err != nil {
			logger.Log.WithFields(logrus.Fields{
				"event":      event,
				"request_id": req.ID,
				"error":      err,
			}).Warn("ws: не удалось отправить уведомление")
		}
	})
}
