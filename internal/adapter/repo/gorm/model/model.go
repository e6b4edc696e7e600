package model

import "time"

// ContractState holds one serialized aggregate per contract name
// ("warrior", "land", "resource") with an optimistic version column.
type ContractState struct {
	Name    string `gorm:"primaryKey;column:name"`
	State   []byte `gorm:"column:state;type:jsonb"`
	Version int64  `gorm:"column:version"`
}

func (ContractState) TableName() string { return "contract_states" }

type LedgerEvent struct {
	ID         int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Account    string    `gorm:"column:account;index"`
	Type       string    `gorm:"column:type"`
	OccurredAt time.Time `gorm:"column:occurred_at"`
	Payload    []byte    `gorm:"column:payload;type:jsonb"`
}

func (LedgerEvent) TableName() string { return "ledger_events" }
