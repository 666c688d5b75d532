package valueobject

import "github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusApproved  RequestStatus = "approved"
	RequestStatusRejected  RequestStatus = "rejected"
	RequestStatusCompleted RequestStatus = "completed"
)

// requestTransitions — граф допустимых переходов заявки. Терминальные статусы не имеют исходящих рёбер.
var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestStatusPending:   {RequestStatusApproved, RequestStatusRejected},
	RequestStatusApproved:  {RequestStatusCompleted},
	RequestStatusRejected:  {},
	RequestStatusCompleted: {},
}

func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusPending, RequestStatusApproved, RequestStatusRejected, RequestStatusCompleted:
		return true
	}
	return false
}

func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusRejected || s == RequestStatusCompleted
}

func (s RequestStatus) CanTransitionTo(newStatus RequestStatus) bool {
	allowed, ok := requestTransitions[s]
	if !ok {
		return false
	}

	for _, status := range allowed {
		if status == newStatus {
			return true
		}
	}
	return false
}

func NewRequestStatus(status string) (RequestStatus, error) {
	s := RequestStatus(status)
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректный статус заявки").WithDetail("status", status)
	}
	return s, nil
}

// CompletionPolicy определяет, кто может перевести одобренную заявку в completed.
type CompletionPolicy string

const (
	CompletionByEither   CompletionPolicy = "either"
	CompletionByReceiver CompletionPolicy = "receiver"
)

func NewCompletionPolicy(policy string) (CompletionPolicy, error) {
	switch p := CompletionPolicy(policy); p {
	case CompletionByEither, CompletionByReceiver:
		return p, nil
	case "":
		return CompletionByEither, nil
	}
	return "", apperror.New(apperror.ErrCodeValidation, "некорректная политика завершения заявки").WithDetail("policy", policy)
}
