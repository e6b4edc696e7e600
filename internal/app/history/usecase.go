package history

import (
	"context"
	"errors"
	"strings"

	"warhold/internal/app/ports"
	"warhold/internal/domain/ledger"
)

var ErrInvalidRequest = errors.New("invalid history request")

const defaultLimit = 50

type Request struct {
	Account ledger.Address
	Limit   int
}

type Response struct {
	Account ledger.Address `json:"account"`
	Events  []ledger.Event `json:"events"`
}

// UseCase lists the committed ledger events for one account, newest first.
type UseCase struct {
	Events ports.EventRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.Account = ledger.Address(strings.TrimSpace(string(req.Account)))
	if req.Account == ledger.ZeroAddress {
		return Response{}, ErrInvalidRequest
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	events, err := u.Events.ListByAccount(ctx, req.Account, limit)
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return Response{}, err
	}
	if events == nil {
		events = []ledger.Event{}
	}
	return Response{Account: req.Account, Events: events}, nil
}
