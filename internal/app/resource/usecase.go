package resource

import (
	"context"
	"errors"
	"strings"
	"time"

	"warhold/internal/app/ports"
	"warhold/internal/domain/ledger"
)

var ErrInvalidRequest = errors.New("invalid resource request")

const (
	opMint     = "resourceMint"
	opBurn     = "resourceBurn"
	opTransfer = "resourceTransfer"
)

type MintRequest struct {
	Caller  ledger.Address
	Account ledger.Address
	Amount  uint64
}

type BurnRequest struct {
	Caller  ledger.Address
	Account ledger.Address
	Amount  uint64
}

type TransferRequest struct {
	Caller ledger.Address
	To     ledger.Address
	Amount uint64
}

type Response struct {
	Balance     uint64 `json:"balance"`
	TotalSupply uint64 `json:"total_supply"`
}

// UseCase drives the RESOURCE token: game-master mint/burn plus plain
// balance transfers. Game-master membership is looked up on every call.
type UseCase struct {
	TxManager ports.TxManager
	Resources ports.ResourceRepository
	Events    ports.EventRepository
	Metrics   ports.TxMetrics
	Now       func() time.Time
}

func (u UseCase) Mint(ctx context.Context, req MintRequest) (Response, error) {
	if !validAddr(req.Caller) || !validAddr(req.Account) {
		return Response{}, ErrInvalidRequest
	}
	return u.run(ctx, opMint, req.Account, func(r *ledger.ResourceState, now time.Time) ([]ledger.Event, error) {
		if err := r.Mint(req.Caller, req.Account, req.Amount); err != nil {
			return nil, err
		}
		return []ledger.Event{{
			Type:       ledger.EventResourceMinted,
			Account:    req.Account,
			OccurredAt: now,
			Payload:    map[string]any{"amount": req.Amount, "by": string(req.Caller)},
		}}, nil
	})
}

func (u UseCase) Burn(ctx context.Context, req BurnRequest) (Response, error) {
	if !validAddr(req.Caller) || !validAddr(req.Account) {
		return Response{}, ErrInvalidRequest
	}
	return u.run(ctx, opBurn, req.Account, func(r *ledger.ResourceState, now time.Time) ([]ledger.Event, error) {
		if err := r.Burn(req.Caller, req.Account, req.Amount); err != nil {
			return nil, err
		}
		return []ledger.Event{{
			Type:       ledger.EventResourceBurned,
			Account:    req.Account,
			OccurredAt: now,
			Payload:    map[string]any{"amount": req.Amount, "by": string(req.Caller)},
		}}, nil
	})
}

func (u UseCase) Transfer(ctx context.Context, req TransferRequest) (Response, error) {
	if !validAddr(req.Caller) {
		return Response{}, ErrInvalidRequest
	}
	return u.run(ctx, opTransfer, req.Caller, func(r *ledger.ResourceState, now time.Time) ([]ledger.Event, error) {
		if err := r.Transfer(req.Caller, req.To, req.Amount); err != nil {
			return nil, err
		}
		return []ledger.Event{{
			Type:       ledger.EventResourceTransferred,
			Account:    req.Caller,
			OccurredAt: now,
			Payload:    map[string]any{"amount": req.Amount, "to": string(req.To)},
		}}, nil
	})
}

func (u UseCase) run(ctx context.Context, op string, balanceOf ledger.Address, fn func(*ledger.ResourceState, time.Time) ([]ledger.Event, error)) (Response, error) {
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	var out Response
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		resource, err := u.Resources.Load(txCtx)
		if err != nil {
			return err
		}
		events, err := fn(&resource, nowFn())
		if err != nil {
			return err
		}
		prev := resource.Version
		resource.Version++
		if err := u.Resources.Save(txCtx, resource, prev); err != nil {
			return err
		}
		if err := u.Events.Append(txCtx, events); err != nil {
			return err
		}
		out = Response{Balance: resource.BalanceOf(balanceOf), TotalSupply: resource.TotalSupply}
		return nil
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
