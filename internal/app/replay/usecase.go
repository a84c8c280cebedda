package replay

import (
	"context"
	"errors"
	"strings"

	"wildcraft/internal/app/ports"
	"wildcraft/internal/domain/survival"
	"wildcraft/internal/domain/world"
)

var ErrInvalidRequest = errors.New("invalid replay request")

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

type UseCase struct {
	Events ports.EventRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.SessionID) == "" || req.Limit < 0 {
		return Response{}, ErrInvalidRequest
	}
	limit := req.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	events, err := u.Events.ListBySessionID(ctx, strings.TrimSpace(req.SessionID), limit)
	if errors.Is(err, ports.ErrNotFound) {
		return Response{Events: []survival.DomainEvent{}}, nil
	}
	if err != nil {
		return Response{}, err
	}
	events = filterByTimeWindow(events, req.OccurredFrom, req.OccurredTo)
	return Response{Events: events, LatestState: reconstruct(events)}, nil
}

func filterByTimeWindow(events []survival.DomainEvent, from, to int64) []survival.DomainEvent {
	if from <= 0 && to <= 0 {
		return events
	}
	out := make([]survival.DomainEvent, 0, len(events))
	for _, evt := range events {
		ts := evt.OccurredAt.Unix()
		if from > 0 && ts < from {
			continue
		}
		if to > 0 && ts > to {
			continue
		}
		out = append(out, evt)
	}
	return out
}

// reconstruct reads the newest action_settled event; events arrive newest
// first.
func reconstruct(events []survival.DomainEvent) *Snapshot {
	for _, evt := range events {
		if evt.Type != survival.EventActionSettled {
			continue
		}
		after, ok := evt.Payload["state_after"].(map[string]any)
		if !ok {
			continue
		}
		clock := world.Clock{
			Day:    int(num(after["day"])),
			Hour:   int(num(after["hour"])),
			Minute: int(num(after["minute"])),
		}
		clock.IsDayTime = world.IsDayHour(clock.Hour)
		biome, _ := after["biome"].(string)
		return &Snapshot{
			Stats: survival.Stats{
				Health: num(after["health"]),
				Hunger: num(after["hunger"]),
				Thirst: num(after["thirst"]),
				Energy: num(after["energy"]),
			},
			Clock:   clock,
			Biome:   world.Biome(biome),
			Version: int64(num(after["version"])),
		}
	}
	return nil
}

func num(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
