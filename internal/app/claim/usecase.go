package claim

import (
	"context"
	"errors"
	"strings"
	"time"

	"warhold/internal/app/ports"
	"warhold/internal/domain/ledger"
)

var ErrInvalidRequest = errors.New("invalid claim request")

const opClaimLand = "claimLand"

type Request struct {
	Caller   ledger.Address
	TokenIDs []uint64
}

type Response struct {
	LandTokenIDs    []uint64 `json:"land_token_ids"`
	ResourceReward  uint64   `json:"resource_reward"`
	LandTotalSupply uint64   `json:"land_total_supply"`
}

// UseCase executes the claim path: staked warriors whose claim time has
// elapsed return to their staker, one Land parcel is minted per id and the
// RESOURCE reward is paid out. The call is all-or-nothing; one bad id
// reverts every state change.
type UseCase struct {
	TxManager ports.TxManager
	Warriors  ports.WarriorRepository
	Lands     ports.LandRepository
	Resources ports.ResourceRepository
	Events    ports.EventRepository
	Metrics   ports.TxMetrics
	Now       func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.Caller = ledger.Address(strings.TrimSpace(string(req.Caller)))
	if req.Caller == ledger.ZeroAddress || len(req.TokenIDs) == 0 {
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
		land, err := u.Lands.Load(txCtx)
		if err != nil {
			return err
		}
		resource, err := u.Resources.Load(txCtx)
		if err != nil {
			return err
		}

		now := nowFn()
		landIDs, err := warrior.ClaimLand(req.Caller, req.TokenIDs, now, &land, &resource)
		if err != nil {
			return err
		}

		prev := warrior.Version
		warrior.Version++
		if err := u.Warriors.Save(txCtx, warrior, prev); err != nil {
			return err
		}
		prev = land.Version
		land.Version++
		if err := u.Lands.Save(txCtx, land, prev); err != nil {
			return err
		}
		prev = resource.Version
		resource.Version++
		if err := u.Resources.Save(txCtx, resource, prev); err != nil {
			return err
		}

		reward := warrior.ClaimRewardUnits * uint64(len(req.TokenIDs))
		events := make([]ledger.Event, 0, len(req.TokenIDs)+1)
		for i, id := range req.TokenIDs {
			events = append(events, ledger.Event{
				Type:       ledger.EventLandClaimed,
				Account:    req.Caller,
				OccurredAt: now,
				Payload:    map[string]any{"warrior_id": id, "land_id": landIDs[i]},
			})
		}
		if reward > 0 {
			events = append(events, ledger.Event{
				Type:       ledger.EventResourceMinted,
				Account:    req.Caller,
				OccurredAt: now,
				Payload:    map[string]any{"amount": reward},
			})
		}
		if err := u.Events.Append(txCtx, events); err != nil {
			return err
		}

		out = Response{
			LandTokenIDs:    landIDs,
			ResourceReward:  reward,
			LandTotalSupply: land.TotalSupply,
		}
		return nil
	})
	if err != nil {
		if u.Metrics != nil {
			u.Metrics.RecordReverted(opClaimLand)
		}
		return Response{}, err
	}
	if u.Metrics != nil {
		u.Metrics.RecordAccepted(opClaimLand)
	}
	return out, nil
}
