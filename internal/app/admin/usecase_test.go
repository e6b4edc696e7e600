package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	memrepo "warhold/internal/adapter/repo/memory"
	"warhold/internal/domain/ledger"
)

const (
	warriorSelf  = ledger.Address("0xwarrior")
	landSelf     = ledger.Address("0xland")
	resourceSelf = ledger.Address("0xresource")
	owner        = ledger.Address("0xowner")
	alice        = ledger.Address("0xa11ce")
)

func newFixture(t *testing.T) (*memrepo.Store, UseCase) {
	t.Helper()
	w := ledger.NewWarriorState(warriorSelf, owner)
	w.Version = 1
	r := ledger.NewResourceState(resourceSelf, owner)
	r.Version = 1

	store := memrepo.NewStore()
	store.SeedWarrior(w)
	store.SeedResource(r)

	uc := UseCase{
		TxManager: memrepo.NewTxManager(store),
		Warriors:  memrepo.NewWarriorRepo(store),
		Resources: memrepo.NewResourceRepo(store),
		Events:    memrepo.NewEventRepo(store),
		Now:       func() time.Time { return time.Unix(1700000000, 0) },
	}
	return store, uc
}

func TestFlipSaleState_Toggles(t *testing.T) {
	store, uc := newFixture(t)
	ctx := context.Background()

	resp, err := uc.FlipSaleState(ctx, FlipSaleRequest{Caller: owner})
	if err != nil {
		t.Fatalf("flip on: %v", err)
	}
	if !resp.SaleLive {
		t.Fatalf("expected sale live after first flip")
	}
	resp, err = uc.FlipSaleState(ctx, FlipSaleRequest{Caller: owner})
	if err != nil {
		t.Fatalf("flip off: %v", err)
	}
	if resp.SaleLive {
		t.Fatalf("expected sale closed after second flip")
	}

	w, _ := memrepo.NewWarriorRepo(store).Load(ctx)
	if w.Version != 3 {
		t.Fatalf("expected version 3 after two flips, got %d", w.Version)
	}
}

func TestOwnerGate(t *testing.T) {
	store, uc := newFixture(t)
	ctx := context.Background()

	if _, err := uc.FlipSaleState(ctx, FlipSaleRequest{Caller: alice}); !errors.Is(err, ledger.ErrNotContractOwner) {
		t.Fatalf("flip: expected ErrNotContractOwner, got %v", err)
	}
	if err := uc.SetContractAddresses(ctx, SetContractsRequest{Caller: alice, Land: landSelf, Resource: resourceSelf}); !errors.Is(err, ledger.ErrNotContractOwner) {
		t.Fatalf("contracts: expected ErrNotContractOwner, got %v", err)
	}
	if err := uc.SetLandClaimTime(ctx, SetClaimTimeRequest{Caller: alice, Seconds: 60}); !errors.Is(err, ledger.ErrNotContractOwner) {
		t.Fatalf("claim time: expected ErrNotContractOwner, got %v", err)
	}
	if _, err := uc.Withdraw(ctx, WithdrawRequest{Caller: alice}); !errors.Is(err, ledger.ErrNotContractOwner) {
		t.Fatalf("withdraw: expected ErrNotContractOwner, got %v", err)
	}
	if err := uc.EditGameMasters(ctx, EditGameMastersRequest{Caller: alice, Accounts: []ledger.Address{alice}, Flags: []bool{true}}); !errors.Is(err, ledger.ErrNotContractOwner) {
		t.Fatalf("game masters: expected ErrNotContractOwner, got %v", err)
	}

	w, _ := memrepo.NewWarriorRepo(store).Load(ctx)
	r, _ := memrepo.NewResourceRepo(store).Load(ctx)
	if w.Version != 1 || r.Version != 1 {
		t.Fatalf("rejected calls must not bump versions: warrior=%d resource=%d", w.Version, r.Version)
	}
}

func TestSetContractAddresses_And_ClaimTime(t *testing.T) {
	store, uc := newFixture(t)
	ctx := context.Background()

	if err := uc.SetContractAddresses(ctx, SetContractsRequest{Caller: owner, Land: landSelf, Resource: resourceSelf}); err != nil {
		t.Fatalf("set contracts: %v", err)
	}
	if err := uc.SetLandClaimTime(ctx, SetClaimTimeRequest{Caller: owner, Seconds: 3600}); err != nil {
		t.Fatalf("set claim time: %v", err)
	}

	w, _ := memrepo.NewWarriorRepo(store).Load(ctx)
	if w.LandAddr != landSelf || w.ResourceAddr != resourceSelf {
		t.Fatalf("contracts not wired: %+v", w)
	}
	if w.LandClaimTime != time.Hour {
		t.Fatalf("expected one hour claim time, got %s", w.LandClaimTime)
	}
}

func TestWithdraw_DrainsVault(t *testing.T) {
	store, uc := newFixture(t)
	ctx := context.Background()

	w, _ := memrepo.NewWarriorRepo(store).Load(ctx)
	if err := w.FlipSaleState(owner); err != nil {
		t.Fatalf("flip sale: %v", err)
	}
	if _, err := w.Mint(alice, 2, false, 2*w.PriceWei, time.Unix(1700000000, 0)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := memrepo.NewWarriorRepo(store).Save(ctx, w, 1); err != nil {
		t.Fatalf("save: %v", err)
	}

	resp, err := uc.Withdraw(ctx, WithdrawRequest{Caller: owner})
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if resp.AmountWei != 2*ledger.DefaultPriceWei {
		t.Fatalf("expected full vault, got %d", resp.AmountWei)
	}

	after, _ := memrepo.NewWarriorRepo(store).Load(ctx)
	if after.VaultWei != 0 {
		t.Fatalf("vault must be empty after withdraw, got %d", after.VaultWei)
	}
}

func TestEditGameMasters_Grant(t *testing.T) {
	store, uc := newFixture(t)
	ctx := context.Background()

	if err := uc.EditGameMasters(ctx, EditGameMastersRequest{
		Caller:   owner,
		Accounts: []ledger.Address{warriorSelf, alice},
		Flags:    []bool{true, true},
	}); err != nil {
		t.Fatalf("grant: %v", err)
	}
	if err := uc.EditGameMasters(ctx, EditGameMastersRequest{
		Caller:   owner,
		Accounts: []ledger.Address{alice},
		Flags:    []bool{true, false},
	}); !errors.Is(err, ledger.ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}

	r, _ := memrepo.NewResourceRepo(store).Load(ctx)
	if !r.IsGameMaster(warriorSelf) || !r.IsGameMaster(alice) {
		t.Fatalf("grants not applied")
	}
	if r.Version != 2 {
		t.Fatalf("expected version 2, got %d", r.Version)
	}
}

func TestRejectsEmptyCaller(t *testing.T) {
	_, uc := newFixture(t)
	if _, err := uc.FlipSaleState(context.Background(), FlipSaleRequest{}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}
