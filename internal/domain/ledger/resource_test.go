package ledger

import (
	"errors"
	"testing"
)

const resourceSelf = Address("0xresource")

func gmResourceState(t *testing.T) ResourceState {
	t.Helper()
	r := NewResourceState(resourceSelf, owner)
	if err := r.EditGameMasters(owner, []Address{warriorSelf}, []bool{true}); err != nil {
		t.Fatalf("edit game masters: %v", err)
	}
	return r
}

func TestEditGameMasters(t *testing.T) {
	r := NewResourceState(resourceSelf, owner)

	if err := r.EditGameMasters(alice, []Address{alice}, []bool{true}); !errors.Is(err, ErrNotContractOwner) {
		t.Fatalf("expected ErrNotContractOwner, got %v", err)
	}
	if err := r.EditGameMasters(owner, []Address{alice, bob}, []bool{true}); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}

	if err := r.EditGameMasters(owner, []Address{alice, bob}, []bool{true, true}); err != nil {
		t.Fatalf("grant: %v", err)
	}
	if !r.IsGameMaster(alice) || !r.IsGameMaster(bob) {
		t.Fatalf("both accounts should be game masters")
	}
	if err := r.EditGameMasters(owner, []Address{bob}, []bool{false}); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if r.IsGameMaster(bob) {
		t.Fatalf("bob should be revoked")
	}
}

func TestResourceMintBurn_GameMasterOnly(t *testing.T) {
	r := gmResourceState(t)

	if err := r.Mint(alice, alice, 100); !errors.Is(err, ErrNotGameMaster) {
		t.Fatalf("expected ErrNotGameMaster, got %v", err)
	}
	if err := r.Mint(warriorSelf, alice, 100); err != nil {
		t.Fatalf("game master mint: %v", err)
	}
	if r.BalanceOf(alice) != 100 || r.TotalSupply != 100 {
		t.Fatalf("balance=%d supply=%d", r.BalanceOf(alice), r.TotalSupply)
	}

	if err := r.Burn(alice, alice, 10); !errors.Is(err, ErrNotGameMaster) {
		t.Fatalf("expected ErrNotGameMaster, got %v", err)
	}
	if err := r.Burn(warriorSelf, alice, 150); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("burn must not underflow, got %v", err)
	}
	if err := r.Burn(warriorSelf, alice, 40); err != nil {
		t.Fatalf("burn: %v", err)
	}
	if r.BalanceOf(alice) != 60 || r.TotalSupply != 60 {
		t.Fatalf("balance=%d supply=%d after burn", r.BalanceOf(alice), r.TotalSupply)
	}
}

func TestResourceTransfer(t *testing.T) {
	r := gmResourceState(t)
	if err := r.Mint(warriorSelf, alice, 100); err != nil {
		t.Fatalf("mint: %v", err)
	}

	if err := r.Transfer(alice, bob, 120); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if err := r.Transfer(alice, bob, 30); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if r.BalanceOf(alice) != 70 || r.BalanceOf(bob) != 30 {
		t.Fatalf("balances alice=%d bob=%d", r.BalanceOf(alice), r.BalanceOf(bob))
	}
	if r.TotalSupply != 100 {
		t.Fatalf("transfer must not change supply, got %d", r.TotalSupply)
	}
}
