package admin

import (
	"context"
	"errors"
	"strings"
	"time"

	"warhold/internal/app/ports"
	"warhold/internal/domain/ledger"
)

var ErrInvalidRequest = errors.New("invalid admin request")

const (
	opFlipSaleState        = "flipSaleState"
	opSetContractAddresses = "setContractAddresses"
	opSetLandClaimTime     = "setLandClaimTime"
	opWithdraw             = "withdraw"
	opEditGameMasters      = "editGameMasters"
)

type FlipSaleRequest struct {
	Caller ledger.Address
}

type FlipSaleResponse struct {
	SaleLive bool `json:"sale_live"`
}

type SetContractsRequest struct {
	Caller   ledger.Address
	Land     ledger.Address
	Resource ledger.Address
}

type SetClaimTimeRequest struct {
	Caller  ledger.Address
	Seconds uint64
}

type WithdrawRequest struct {
	Caller ledger.Address
}

type WithdrawResponse struct {
	AmountWei uint64 `json:"amount_wei"`
}

type EditGameMastersRequest struct {
	Caller   ledger.Address
	Accounts []ledger.Address
	Flags    []bool
}

// UseCase covers the owner-gated configuration surface of the Warrior and
// RESOURCE contracts. Every operation re-checks the caller against the
// contract owner inside the transaction.
type UseCase struct {
	TxManager ports.TxManager
	Warriors  ports.WarriorRepository
	Resources ports.ResourceRepository
	Events    ports.EventRepository
	Metrics   ports.TxMetrics
	Now       func() time.Time
}

func (u UseCase) FlipSaleState(ctx context.Context, req FlipSaleRequest) (FlipSaleResponse, error) {
	var out FlipSaleResponse
	err := u.mutateWarrior(ctx, req.Caller, opFlipSaleState, func(w *ledger.WarriorState, now time.Time) ([]ledger.Event, error) {
		if err := w.FlipSaleState(req.Caller); err != nil {
			return nil, err
		}
		out = FlipSaleResponse{SaleLive: w.SaleLive}
		return []ledger.Event{{
			Type:       ledger.EventSaleStateFlipped,
			Account:    req.Caller,
			OccurredAt: now,
			Payload:    map[string]any{"sale_live": w.SaleLive},
		}}, nil
	})
	return out, err
}

func (u UseCase) SetContractAddresses(ctx context.Context, req SetContractsRequest) error {
	return u.mutateWarrior(ctx, req.Caller, opSetContractAddresses, func(w *ledger.WarriorState, now time.Time) ([]ledger.Event, error) {
		if err := w.SetContractAddresses(req.Caller, req.Land, req.Resource); err != nil {
			return nil, err
		}
		return []ledger.Event{{
			Type:       ledger.EventContractsWired,
			Account:    req.Caller,
			OccurredAt: now,
			Payload:    map[string]any{"land": string(req.Land), "resource": string(req.Resource)},
		}}, nil
	})
}

func (u UseCase) SetLandClaimTime(ctx context.Context, req SetClaimTimeRequest) error {
	return u.mutateWarrior(ctx, req.Caller, opSetLandClaimTime, func(w *ledger.WarriorState, now time.Time) ([]ledger.Event, error) {
		if err := w.SetLandClaimTime(req.Caller, time.Duration(req.Seconds)*time.Second); err != nil {
			return nil, err
		}
		return []ledger.Event{{
			Type:       ledger.EventClaimTimeChanged,
			Account:    req.Caller,
			OccurredAt: now,
			Payload:    map[string]any{"seconds": req.Seconds},
		}}, nil
	})
}

func (u UseCase) Withdraw(ctx context.Context, req WithdrawRequest) (WithdrawResponse, error) {
	var out WithdrawResponse
	err := u.mutateWarrior(ctx, req.Caller, opWithdraw, func(w *ledger.WarriorState, now time.Time) ([]ledger.Event, error) {
		amount, err := w.Withdraw(req.Caller)
		if err != nil {
			return nil, err
		}
		out = WithdrawResponse{AmountWei: amount}
		return []ledger.Event{{
			Type:       ledger.EventVaultWithdrawn,
			Account:    req.Caller,
			OccurredAt: now,
			Payload:    map[string]any{"amount_wei": amount},
		}}, nil
	})
	return out, err
}

func (u UseCase) EditGameMasters(ctx context.Context, req EditGameMastersRequest) error {
	if !validAddr(req.Caller) {
		return ErrInvalidRequest
	}
	nowFn := u.nowFn()
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		resource, err := u.Resources.Load(txCtx)
		if err != nil {
			return err
		}
		if err := resource.EditGameMasters(req.Caller, req.Accounts, req.Flags); err != nil {
			return err
		}
		prev := resource.Version
		resource.Version++
		if err := u.Resources.Save(txCtx, resource, prev); err != nil {
			return err
		}
		return u.Events.Append(txCtx, []ledger.Event{{
			Type:       ledger.EventGameMastersEdited,
			Account:    req.Caller,
			OccurredAt: nowFn(),
			Payload:    map[string]any{"count": len(req.Accounts)},
		}})
	})
	u.record(opEditGameMasters, err)
	return err
}

func (u UseCase) mutateWarrior(ctx context.Context, caller ledger.Address, op string, fn func(*ledger.WarriorState, time.Time) ([]ledger.Event, error)) error {
	if !validAddr(caller) {
		return ErrInvalidRequest
	}
	nowFn := u.nowFn()
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		warrior, err := u.Warriors.Load(txCtx)
		if err != nil {
			return err
		}
		events, err := fn(&warrior, nowFn())
		if err != nil {
			return err
		}
		prev := warrior.Version
		warrior.Version++
		if err := u.Warriors.Save(txCtx, warrior, prev); err != nil {
			return err
		}
		return u.Events.Append(txCtx, events)
	})
	u.record(op, err)
	return err
}

func (u UseCase) nowFn() func() time.Time {
	if u.Now != nil {
		return u.Now
	}
	return time.Now
}

func (u UseCase) record(op string, err error) {
	if u.Metrics == nil {
		return
	}
	if err != nil {
		u.Metrics.RecordReverted(op)
		return
	}
	u.Metrics.RecordAccepted(op)
}

func validAddr(a ledger.Address) bool {
	return strings.TrimSpace(string(a)) != ""
}
