package token

import (
	"context"
	"errors"
	"strings"
	"time"

	"warhold/internal/app/ports"
	"warhold/internal/domain/ledger"
)

var (
	ErrInvalidRequest    = errors.New("invalid token request")
	ErrUnknownCollection = errors.New("unknown collection")
)

// Collection selects which NFT aggregate an operation targets.
type Collection string

const (
	CollectionWarrior Collection = "warrior"
	CollectionLand    Collection = "land"
)

const (
	opTransferFrom      = "transferFrom"
	opApprove           = "approve"
	opSetApprovalForAll = "setApprovalForAll"
	opBurn              = "burn"
)

type TransferRequest struct {
	Collection Collection
	Caller     ledger.Address
	From       ledger.Address
	To         ledger.Address
	TokenID    uint64
}

type ApproveRequest struct {
	Collection Collection
	Caller     ledger.Address
	Spender    ledger.Address
	TokenID    uint64
}

type ApprovalForAllRequest struct {
	Collection Collection
	Caller     ledger.Address
	Operator   ledger.Address
	Approved   bool
}

type BurnRequest struct {
	Collection Collection
	Caller     ledger.Address
	TokenID    uint64
}

type Response struct {
	TotalSupply uint64 `json:"total_supply"`
}

// UseCase drives the shared ERC721-style surface of the Warrior and Land
// collections. Staked warriors sit in contract custody, so they fail the
// authorization check on every path here; only the claim path moves them.
type UseCase struct {
	TxManager ports.TxManager
	Warriors  ports.WarriorRepository
	Lands     ports.LandRepository
	Events    ports.EventRepository
	Metrics   ports.TxMetrics
	Now       func() time.Time
}

func (u UseCase) Transfer(ctx context.Context, req TransferRequest) (Response, error) {
	if !validAddr(req.Caller) || !validAddr(req.From) {
		return Response{}, ErrInvalidRequest
	}
	return u.run(ctx, req.Collection, opTransferFrom, func(w *ledger.WarriorState, l *ledger.LandState, now time.Time) ([]ledger.Event, error) {
		var err error
		evType := ledger.EventWarriorTransferred
		if w != nil {
			err = w.TransferFrom(req.Caller, req.From, req.To, req.TokenID)
		} else {
			err = l.TransferFrom(req.Caller, req.From, req.To, req.TokenID)
			evType = ledger.EventLandTransferred
		}
		if err != nil {
			return nil, err
		}
		return []ledger.Event{{
			Type:       evType,
			Account:    req.From,
			OccurredAt: now,
			Payload:    map[string]any{"token_id": req.TokenID, "to": string(req.To)},
		}}, nil
	})
}

func (u UseCase) Approve(ctx context.Context, req ApproveRequest) (Response, error) {
	if !validAddr(req.Caller) {
		return Response{}, ErrInvalidRequest
	}
	return u.run(ctx, req.Collection, opApprove, func(w *ledger.WarriorState, l *ledger.LandState, now time.Time) ([]ledger.Event, error) {
		if w != nil {
			return nil, w.Approve(req.Caller, req.Spender, req.TokenID)
		}
		return nil, l.Approve(req.Caller, req.Spender, req.TokenID)
	})
}

func (u UseCase) SetApprovalForAll(ctx context.Context, req ApprovalForAllRequest) (Response, error) {
	if !validAddr(req.Caller) || !validAddr(req.Operator) {
		return Response{}, ErrInvalidRequest
	}
	return u.run(ctx, req.Collection, opSetApprovalForAll, func(w *ledger.WarriorState, l *ledger.LandState, now time.Time) ([]ledger.Event, error) {
		if w != nil {
			w.SetApprovalForAll(req.Caller, req.Operator, req.Approved)
		} else {
			l.SetApprovalForAll(req.Caller, req.Operator, req.Approved)
		}
		return nil, nil
	})
}

func (u UseCase) Burn(ctx context.Context, req BurnRequest) (Response, error) {
	if !validAddr(req.Caller) {
		return Response{}, ErrInvalidRequest
	}
	return u.run(ctx, req.Collection, opBurn, func(w *ledger.WarriorState, l *ledger.LandState, now time.Time) ([]ledger.Event, error) {
		evType := ledger.EventWarriorBurned
		var err error
		if w != nil {
			err = w.Burn(req.Caller, req.TokenID)
		} else {
			err = l.Burn(req.Caller, req.TokenID)
			evType = ledger.EventLandBurned
		}
		if err != nil {
			return nil, err
		}
		return []ledger.Event{{
			Type:       evType,
			Account:    req.Caller,
			OccurredAt: now,
			Payload:    map[string]any{"token_id": req.TokenID},
		}}, nil
	})
}

// run loads the selected aggregate, applies fn and commits the new version
// together with any events. Exactly one of the fn arguments is non-nil.
func (u UseCase) run(ctx context.Context, col Collection, op string, fn func(*ledger.WarriorState, *ledger.LandState, time.Time) ([]ledger.Event, error)) (Response, error) {
	if col != CollectionWarrior && col != CollectionLand {
		return Response{}, ErrUnknownCollection
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	var out Response
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		now := nowFn()
		var events []ledger.Event

		switch col {
		case CollectionWarrior:
			warrior, err := u.Warriors.Load(txCtx)
			if err != nil {
				return err
			}
			if events, err = fn(&warrior, nil, now); err != nil {
				return err
			}
			prev := warrior.Version
			warrior.Version++
			if err := u.Warriors.Save(txCtx, warrior, prev); err != nil {
				return err
			}
			out = Response{TotalSupply: warrior.TotalSupply}
		case CollectionLand:
			land, err := u.Lands.Load(txCtx)
			if err != nil {
				return err
			}
			if events, err = fn(nil, &land, now); err != nil {
				return err
			}
			prev := land.Version
			land.Version++
			if err := u.Lands.Save(txCtx, land, prev); err != nil {
				return err
			}
			out = Response{TotalSupply: land.TotalSupply}
		}
		return u.Events.Append(txCtx, events)
	})
	if err != nil {
		if u.Metrics != nil {
			u.Metrics.RecordReverted(op)
		}
		return Response{}, err
	}
	if u.Metrics != nil {
		u.Metrics.RecordAccepted(op)
	}
	return out, nil
}

func validAddr(a ledger.Address) bool {
	return strings.TrimSpace(string(a)) != ""
}
