package mint

import (
	"context"
	"errors"
	"strings"
	"time"

	"warhold/internal/app/ports"
	"warhold/internal/domain/ledger"
)

var ErrInvalidRequest = errors.New("invalid mint request")

const opPublicMint = "publicMint"

type Request struct {
	Caller   ledger.Address
	Quantity uint64
	Stake    bool
	ValueWei uint64
}

type Response struct {
	TokenIDs    []uint64 `json:"token_ids"`
	Staked      bool     `json:"staked"`
	TotalSupply uint64   `json:"total_supply"`
}

type UseCase struct {
	TxManager ports.TxManager
	Warriors  ports.WarriorRepository
	Events    ports.EventRepository
	Metrics   ports.TxMetrics
	Now       func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.Caller = ledger.Address(strings.TrimSpace(string(req.Caller)))
	if req.Caller == ledger.ZeroAddress {
		return Response{}, ErrInvalidRequest
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	var out Response
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		warrior, err := u.Warriors.Load(txCtx)
		if err != nil {
			return err
		}
		now := nowFn()
		ids, err := warrior.Mint(req.Caller, req.Quantity, req.Stake, req.ValueWei, now)
		if err != nil {
			return err
		}

		prev := warrior.Version
		warrior.Version++
		if err := u.Warriors.Save(txCtx, warrior, prev); err != nil {
			return err
		}

		events := make([]ledger.Event, 0, len(ids))
		for _, id := range ids {
			evType := ledger.EventWarriorMinted
			if req.Stake {
				evType = ledger.EventWarriorStaked
			}
			events = append(events, ledger.Event{
				Type:       evType,
				Account:    req.Caller,
				OccurredAt: now,
				Payload:    map[string]any{"token_id": id, "value_wei": warrior.PriceWei},
			})
		}
		if err := u.Events.Append(txCtx, events); err != nil {
			return err
		}

		out = Response{TokenIDs: ids, Staked: req.Stake, TotalSupply: warrior.TotalSupply}
		return nil
	})
	if err != nil {
		if u.Metrics != nil {
			u.Metrics.RecordReverted(opPublicMint)
		}
		return Response{}, err
	}
	if u.Metrics != nil {
		u.Metrics.RecordAccepted(opPublicMint)
	}
	return out, nil
}
