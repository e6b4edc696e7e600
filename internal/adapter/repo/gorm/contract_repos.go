package gormrepo

import (
	"context"
	"encoding/json"
	"errors"

	"warhold/internal/adapter/repo/gorm/model"
	"warhold/internal/app/ports"
	"warhold/internal/domain/ledger"

	"gorm.io/gorm"
)

const (
	contractWarrior  = "warrior"
	contractLand     = "land"
	contractResource = "resource"
)

// Aggregates are stored whole, one jsonb row per contract, with the version
// mirrored into its own column for the optimistic update predicate.

func loadContract(ctx context.Context, db *gorm.DB, name string, out any) error {
	var row model.ContractState
	if err := getDBFromCtx(ctx, db).Where("name = ?", name).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ErrNotFound
		}
		return err
	}
	return json.Unmarshal(row.State, out)
}

func saveContract(ctx context.Context, db *gorm.DB, name string, state any, version, expectedVersion int64) error {
	b, err := json.Marshal(state)
	if err != nil {
		return err
	}
	conn := getDBFromCtx(ctx, db)

	if expectedVersion == 0 {
		row := model.ContractState{Name: name, State: b, Version: version}
		return conn.Create(&row).Error
	}

	res := conn.Model(&model.ContractState{}).
		Where("name = ? AND version = ?", name, expectedVersion).
		Updates(map[string]any{"state": b, "version": version})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

type WarriorRepo struct {
	db *gorm.DB
}

func NewWarriorRepo(db *gorm.DB) WarriorRepo {
	return WarriorRepo{db: db}
}

func (r WarriorRepo) Load(ctx context.Context) (ledger.WarriorState, error) {
	var state ledger.WarriorState
	if err := loadContract(ctx, r.db, contractWarrior, &state); err != nil {
		return ledger.WarriorState{}, err
	}
	return state, nil
}

func (r WarriorRepo) Save(ctx context.Context, state ledger.WarriorState, expectedVersion int64) error {
	return saveContract(ctx, r.db, contractWarrior, state, state.Version, expectedVersion)
}

type LandRepo struct {
	db *gorm.DB
}

func NewLandRepo(db *gorm.DB) LandRepo {
	return LandRepo{db: db}
}

func (r LandRepo) Load(ctx context.Context) (ledger.LandState, error) {
	var state ledger.LandState
	if err := loadContract(ctx, r.db, contractLand, &state); err != nil {
		return ledger.LandState{}, err
	}
	return state, nil
}

func (r LandRepo) Save(ctx context.Context, state ledger.LandState, expectedVersion int64) error {
	return saveContract(ctx, r.db, contractLand, state, state.Version, expectedVersion)
}

type ResourceRepo struct {
	db *gorm.DB
}

func NewResourceRepo(db *gorm.DB) ResourceRepo {
	return ResourceRepo{db: db}
}

func (r ResourceRepo) Load(ctx context.Context) (ledger.ResourceState, error) {
	var state ledger.ResourceState
	if err := loadContract(ctx, r.db, contractResource, &state); err != nil {
		return ledger.ResourceState{}, err
	}
	return state, nil
}

func (r ResourceRepo) Save(ctx context.Context, state ledger.ResourceState, expectedVersion int64) error {
	return saveContract(ctx, r.db, contractResource, state, state.Version, expectedVersion)
}
