package action

import "wildcraft/internal/domain/survival"

type Request struct {
	SessionID      string
	IdempotencyKey string
	Intent         survival.ActionIntent
}

type Response struct {
	UpdatedState survival.GameState     `json:"updated_state"`
	Events       []survival.DomainEvent `json:"events"`
	ResultCode   survival.ResultCode    `json:"result_code"`
	Replayed     bool                   `json:"replayed,omitempty"`
}
