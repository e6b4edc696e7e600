package gormrepo

import (
	"context"
	"encoding/json"

	"warhold/internal/adapter/repo/gorm/model"
	"warhold/internal/domain/ledger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) EventRepo {
	return EventRepo{db: db}
}

func (r EventRepo) Append(ctx context.Context, events []ledger.Event) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]model.LedgerEvent, 0, len(events))
	for _, e := range events {
		b, _ := json.Marshal(e.Payload)
		rows = append(rows, model.LedgerEvent{
			Account:    string(e.Account),
			Type:       e.Type,
			OccurredAt: e.OccurredAt,
			Payload:    b,
		})
	}
	return getDBFromCtx(ctx, r.db).Create(&rows).Error
}

func (r EventRepo) ListByAccount(ctx context.Context, account ledger.Address, limit int) ([]ledger.Event, error) {
	rows := []model.LedgerEvent{}
	query := getDBFromCtx(ctx, r.db).
		Where(&model.LedgerEvent{Account: string(account)}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "occurred_at"}, Desc: true}},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]ledger.Event, 0, len(rows))
	for _, row := range rows {
		var payload map[string]any
		if len(row.Payload) > 0 {
			_ = json.Unmarshal(row.Payload, &payload)
		}
		out = append(out, ledger.Event{
			Type:       row.Type,
			Account:    ledger.Address(row.Account),
			OccurredAt: row.OccurredAt,
			Payload:    payload,
		})
	}
	return out, nil
}
