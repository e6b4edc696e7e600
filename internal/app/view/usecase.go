package view

import (
	"context"
	"errors"
	"strings"
	"time"

	"warhold/internal/app/ports"
	"warhold/internal/domain/ledger"
)

var ErrInvalidRequest = errors.New("invalid view request")

// UseCase serves the read-only views of the three contracts. Reads run
// outside the tx manager; each Load returns a committed snapshot.
type UseCase struct {
	Warriors  ports.WarriorRepository
	Lands     ports.LandRepository
	Resources ports.ResourceRepository
}

type BalanceResponse struct {
	Account ledger.Address `json:"account"`
	Balance uint64         `json:"balance"`
}

type OwnerResponse struct {
	TokenID uint64         `json:"token_id"`
	Owner   ledger.Address `json:"owner"`
}

type SupplyResponse struct {
	TotalSupply uint64 `json:"total_supply"`
	NextID      uint64 `json:"next_id"`
}

type SaleResponse struct {
	SaleLive         bool           `json:"sale_live"`
	PriceWei         uint64         `json:"price_wei"`
	LandClaimSeconds uint64         `json:"land_claim_seconds"`
	LandAddr         ledger.Address `json:"land_addr,omitempty"`
	ResourceAddr     ledger.Address `json:"resource_addr,omitempty"`
	VaultWei         uint64         `json:"vault_wei"`
}

type ActivityResponse struct {
	TokenID  uint64         `json:"token_id"`
	Staker   ledger.Address `json:"staker"`
	StakedAt time.Time      `json:"staked_at"`
}

type GameMasterResponse struct {
	Account    ledger.Address `json:"account"`
	GameMaster bool           `json:"game_master"`
}

func (u UseCase) WarriorBalance(ctx context.Context, account ledger.Address) (BalanceResponse, error) {
	if !validAddr(account) {
		return BalanceResponse{}, ErrInvalidRequest
	}
	w, err := u.Warriors.Load(ctx)
	if err != nil {
		return BalanceResponse{}, err
	}
	return BalanceResponse{Account: account, Balance: w.BalanceOf(account)}, nil
}

func (u UseCase) WarriorOwner(ctx context.Context, id uint64) (OwnerResponse, error) {
	w, err := u.Warriors.Load(ctx)
	if err != nil {
		return OwnerResponse{}, err
	}
	owner, err := w.OwnerOf(id)
	if err != nil {
		return OwnerResponse{}, err
	}
	return OwnerResponse{TokenID: id, Owner: owner}, nil
}

func (u UseCase) WarriorSupply(ctx context.Context) (SupplyResponse, error) {
	w, err := u.Warriors.Load(ctx)
	if err != nil {
		return SupplyResponse{}, err
	}
	return SupplyResponse{TotalSupply: w.TotalSupply, NextID: w.NextID}, nil
}

func (u UseCase) Sale(ctx context.Context) (SaleResponse, error) {
	w, err := u.Warriors.Load(ctx)
	if err != nil {
		return SaleResponse{}, err
	}
	return SaleResponse{
		SaleLive:         w.SaleLive,
		PriceWei:         w.PriceWei,
		LandClaimSeconds: uint64(w.LandClaimTime / time.Second),
		LandAddr:         w.LandAddr,
		ResourceAddr:     w.ResourceAddr,
		VaultWei:         w.VaultWei,
	}, nil
}

func (u UseCase) Activity(ctx context.Context, id uint64) (ActivityResponse, error) {
	w, err := u.Warriors.Load(ctx)
	if err != nil {
		return ActivityResponse{}, err
	}
	act, err := w.Activity(id)
	if err != nil {
		return ActivityResponse{}, err
	}
	return ActivityResponse{TokenID: id, Staker: act.Staker, StakedAt: act.StakedAt}, nil
}

func (u UseCase) LandBalance(ctx context.Context, account ledger.Address) (BalanceResponse, error) {
	if !validAddr(account) {
		return BalanceResponse{}, ErrInvalidRequest
	}
	l, err := u.Lands.Load(ctx)
	if err != nil {
		return BalanceResponse{}, err
	}
	return BalanceResponse{Account: account, Balance: l.BalanceOf(account)}, nil
}

func (u UseCase) LandOwner(ctx context.Context, id uint64) (OwnerResponse, error) {
	l, err := u.Lands.Load(ctx)
	if err != nil {
		return OwnerResponse{}, err
	}
	owner, err := l.OwnerOf(id)
	if err != nil {
		return OwnerResponse{}, err
	}
	return OwnerResponse{TokenID: id, Owner: owner}, nil
}

func (u UseCase) LandSupply(ctx context.Context) (SupplyResponse, error) {
	l, err := u.Lands.Load(ctx)
	if err != nil {
		return SupplyResponse{}, err
	}
	return SupplyResponse{TotalSupply: l.TotalSupply, NextID: l.NextID}, nil
}

func (u UseCase) ResourceBalance(ctx context.Context, account ledger.Address) (BalanceResponse, error) {
	if !validAddr(account) {
		return BalanceResponse{}, ErrInvalidRequest
	}
	r, err := u.Resources.Load(ctx)
	if err != nil {
		return BalanceResponse{}, err
	}
	return BalanceResponse{Account: account, Balance: r.BalanceOf(account)}, nil
}

func (u UseCase) ResourceSupply(ctx context.Context) (SupplyResponse, error) {
	r, err := u.Resources.Load(ctx)
	if err != nil {
		return SupplyResponse{}, err
	}
	return SupplyResponse{TotalSupply: r.TotalSupply}, nil
}

func (u UseCase) GameMaster(ctx context.Context, account ledger.Address) (GameMasterResponse, error) {
	if !validAddr(account) {
		return GameMasterResponse{}, ErrInvalidRequest
	}
	r, err := u.Resources.Load(ctx)
	if err != nil {
		return GameMasterResponse{}, err
	}
	return GameMasterResponse{Account: account, GameMaster: r.IsGameMaster(account)}, nil
}

func validAddr(a ledger.Address) bool {
	return strings.TrimSpace(string(a)) != ""
}
