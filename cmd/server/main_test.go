package main

import (
	"testing"
	"time"

	"warhold/internal/domain/ledger"
)

func TestStrEnv(t *testing.T) {
	t.Setenv("WARHOLD_ADDR", "")
	if got := strEnv("WARHOLD_ADDR", ":8080"); got != ":8080" {
		t.Fatalf("strEnv fallback: got %q", got)
	}
	t.Setenv("WARHOLD_ADDR", " :9090 ")
	if got := strEnv("WARHOLD_ADDR", ":8080"); got != ":9090" {
		t.Fatalf("strEnv trims: got %q", got)
	}
}

func TestUint64Env(t *testing.T) {
	t.Setenv("WARHOLD_PRICE_WEI", "")
	if got := uint64Env("WARHOLD_PRICE_WEI", 7); got != 7 {
		t.Fatalf("uint64Env fallback: got %d", got)
	}
	t.Setenv("WARHOLD_PRICE_WEI", "123")
	if got := uint64Env("WARHOLD_PRICE_WEI", 7); got != 123 {
		t.Fatalf("uint64Env parse: got %d", got)
	}
	t.Setenv("WARHOLD_PRICE_WEI", "not-a-number")
	if got := uint64Env("WARHOLD_PRICE_WEI", 7); got != 7 {
		t.Fatalf("uint64Env invalid falls back: got %d", got)
	}
}

func TestOwnerFromEnv(t *testing.T) {
	t.Setenv("WARHOLD_OWNER", "")
	if got := ownerFromEnv(); got != ledger.Address("0xowner") {
		t.Fatalf("default owner: got %q", got)
	}
	t.Setenv("WARHOLD_OWNER", "0xdeployer")
	if got := ownerFromEnv(); got != ledger.Address("0xdeployer") {
		t.Fatalf("env owner: got %q", got)
	}
}

func TestBuildGenesis(t *testing.T) {
	warrior, land, res := buildGenesis(genesisConfig{
		Owner:            "0xdeployer",
		PriceWei:         ledger.DefaultPriceWei,
		LandClaimSeconds: 3600,
		ClaimReward:      50,
	})

	if warrior.Self != warriorContract || warrior.ContractOwner != "0xdeployer" {
		t.Fatalf("unexpected warrior identity: %+v", warrior)
	}
	if warrior.SaleLive {
		t.Fatalf("sale must start closed")
	}
	if warrior.LandAddr != landContract || warrior.ResourceAddr != resourceContract {
		t.Fatalf("contracts must be wired at genesis: %+v", warrior)
	}
	if warrior.LandClaimTime != time.Hour || warrior.ClaimRewardUnits != 50 {
		t.Fatalf("claim config not applied: %+v", warrior)
	}

	if land.Self != landContract || land.Minter != warriorContract {
		t.Fatalf("unexpected land wiring: %+v", land)
	}
	if !res.GameMasters[warriorContract] {
		t.Fatalf("warrior contract must be a game master at genesis")
	}

	if warrior.Version != 1 || land.Version != 1 || res.Version != 1 {
		t.Fatalf("genesis aggregates must start at version 1")
	}
}
