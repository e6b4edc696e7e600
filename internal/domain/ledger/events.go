package ledger

import "time"

type Event struct {
	Type       string         `json:"type"`
	Account    Address        `json:"account"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload,omitempty"`
}

const (
	EventWarriorMinted       = "warrior_minted"
	EventWarriorStaked       = "warrior_staked"
	EventWarriorTransferred  = "warrior_transferred"
	EventWarriorBurned       = "warrior_burned"
	EventLandClaimed         = "land_claimed"
	EventLandTransferred     = "land_transferred"
	EventLandBurned          = "land_burned"
	EventResourceMinted      = "resource_minted"
	EventResourceBurned      = "resource_burned"
	EventResourceTransferred = "resource_transferred"
	EventSaleStateFlipped    = "sale_state_flipped"
	EventContractsWired      = "contracts_wired"
	EventClaimTimeChanged    = "claim_time_changed"
	EventVaultWithdrawn      = "vault_withdrawn"
	EventGameMastersEdited   = "game_masters_edited"
)
