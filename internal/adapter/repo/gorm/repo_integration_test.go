package gormrepo

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"warhold/internal/app/ports"
	"warhold/internal/domain/ledger"
)

func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("WARHOLD_DB_DSN")
	if dsn == "" {
		t.Skip("WARHOLD_DB_DSN is required for integration test")
	}
	return dsn
}

func TestWarriorRepo_RoundTripAndVersionConflict(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	ctx := context.Background()
	if err := ApplyMigrations(ctx, db, "../../../../migrations"); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	_ = db.Exec("DELETE FROM contract_states WHERE name = ?", contractWarrior).Error

	repo := NewWarriorRepo(db)
	state := ledger.NewWarriorState("0xwarrior", "0xowner")
	if err := state.FlipSaleState("0xowner"); err != nil {
		t.Fatalf("flip sale: %v", err)
	}
	if _, err := state.Mint("0xa11ce", 2, true, 2*state.PriceWei, time.Unix(1700000000, 0)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	state.Version = 1

	if err := repo.Save(ctx, state, 0); err != nil {
		t.Fatalf("genesis save: %v", err)
	}
	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.TotalSupply != 2 || got.VaultWei != 2*ledger.DefaultPriceWei {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	act, err := got.Activity(0)
	if err != nil {
		t.Fatalf("activity: %v", err)
	}
	if act.Staker != ledger.Address("0xa11ce") {
		t.Fatalf("activity round trip mismatch: %+v", act)
	}

	got.Version = 2
	if err := repo.Save(ctx, got, 5); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected ports.ErrConflict, got %v", err)
	}
	if err := repo.Save(ctx, got, 1); err != nil {
		t.Fatalf("save with matching version: %v", err)
	}
}

func TestEventRepo_AppendAndListNewestFirst(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	ctx := context.Background()
	if err := ApplyMigrations(ctx, db, "../../../../migrations"); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	account := ledger.Address("it-event-list")
	_ = db.Exec("DELETE FROM ledger_events WHERE account = ?", string(account)).Error

	repo := NewEventRepo(db)
	base := time.Unix(1700000000, 0).UTC()
	for i := 0; i < 3; i++ {
		err := repo.Append(ctx, []ledger.Event{{
			Type:       ledger.EventWarriorMinted,
			Account:    account,
			OccurredAt: base.Add(time.Duration(i) * time.Second),
			Payload:    map[string]any{"token_id": float64(i)},
		}})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	events, err := repo.ListByAccount(ctx, account, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected limit 2, got %d", len(events))
	}
	if !events[0].OccurredAt.After(events[1].OccurredAt) {
		t.Fatalf("expected newest first: %+v", events)
	}
}

func TestTxManager_RollsBackOnError(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	ctx := context.Background()
	if err := ApplyMigrations(ctx, db, "../../../../migrations"); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	_ = db.Exec("DELETE FROM contract_states WHERE name = ?", contractLand).Error

	repo := NewLandRepo(db)
	tm := NewTxManager(db)

	land := ledger.NewLandState("0xland", "0xowner", "0xwarrior")
	land.Version = 1

	sentinel := errors.New("boom")
	err = tm.RunInTx(ctx, func(txCtx context.Context) error {
		if err := repo.Save(txCtx, land, 0); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel, got %v", err)
	}
	if _, err := repo.Load(ctx); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("rolled back insert must not be visible, got %v", err)
	}
}
