package ledger

import "time"

// DefaultPriceWei is 0.08 ether, the fixed mint price of the original
// collection.
const DefaultPriceWei uint64 = 80_000_000_000_000_000

const DefaultLandClaimTime = 24 * time.Hour

// Activity records a staked warrior: who staked it and when. It exists only
// while the token is in contract custody and is deleted by the claim path.
type Activity struct {
	Staker   Address   `json:"staker"`
	StakedAt time.Time `json:"staked_at"`
}

// LandMinter is the privileged entry point the claim path calls on the Land
// aggregate. The callee checks the caller address on every invocation.
type LandMinter interface {
	MintFor(caller, to Address) (uint64, error)
}

// ResourceMinter is the game-master entry point the claim path uses to pay
// out the RESOURCE claim reward.
type ResourceMinter interface {
	Mint(caller, to Address, amount uint64) error
}

// WarriorState is the Warrior contract aggregate: the NFT collection plus
// sale configuration, the payment vault and the staking activity book.
// Staked tokens are held in custody under the contract's own address; the
// activity record keeps the staker's implicit ownership.
type WarriorState struct {
	Collection

	Self          Address       `json:"self"`
	ContractOwner Address       `json:"contract_owner"`
	SaleLive      bool          `json:"sale_live"`
	PriceWei      uint64        `json:"price_wei"`
	LandClaimTime time.Duration `json:"land_claim_time"`
	LandAddr      Address       `json:"land_addr,omitempty"`
	ResourceAddr  Address       `json:"resource_addr,omitempty"`

	// RESOURCE units minted to the staker per claimed warrior.
	ClaimRewardUnits uint64 `json:"claim_reward_units"`

	VaultWei   uint64              `json:"vault_wei"`
	Activities map[uint64]Activity `json:"activities"`

	Version int64 `json:"version"`
}

func NewWarriorState(self, owner Address) WarriorState {
	return WarriorState{
		Collection:    newCollection(),
		Self:          self,
		ContractOwner: owner,
		PriceWei:      DefaultPriceWei,
		LandClaimTime: DefaultLandClaimTime,
		Activities:    map[uint64]Activity{},
	}
}

// Mint mints quantity sequential ids to the payer. Payment must equal
// price*quantity exactly; both under- and overpayment revert. With stake
// set, the new tokens go straight into contract custody with an activity
// record per id.
func (w *WarriorState) Mint(to Address, quantity uint64, stake bool, paymentWei uint64, now time.Time) ([]uint64, error) {
	if to == ZeroAddress {
		return nil, ErrTransferToZero
	}
	if quantity == 0 {
		return nil, ErrMintZeroQuantity
	}
	if !w.SaleLive {
		return nil, ErrSaleNotLive
	}
	due := w.PriceWei * quantity
	if w.PriceWei != 0 && due/w.PriceWei != quantity {
		return nil, ErrIncorrectPayment
	}
	if paymentWei != due {
		return nil, ErrIncorrectPayment
	}

	w.VaultWei += paymentWei
	ids := make([]uint64, 0, quantity)
	for i := uint64(0); i < quantity; i++ {
		holder := to
		if stake {
			holder = w.Self
		}
		id := w.mint(holder)
		if stake {
			w.Activities[id] = Activity{Staker: to, StakedAt: now}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// TransferFrom moves id from `from` to `to` when the caller is the owner,
// an approved operator, or the token's approved spender. Staked tokens are
// owned by the contract itself, so no external caller passes the check; the
// claim path is the only way out of custody.
func (w *WarriorState) TransferFrom(caller, from, to Address, id uint64) error {
	return w.transfer(caller, from, to, id)
}

func (w *WarriorState) Approve(caller, spender Address, id uint64) error {
	return w.approve(caller, spender, id)
}

func (w *WarriorState) SetApprovalForAll(caller, operator Address, approved bool) {
	w.setApprovalForAll(caller, operator, approved)
}

func (w *WarriorState) Burn(caller Address, id uint64) error {
	return w.burn(caller, id)
}

// Activity returns the staking record for id.
func (w *WarriorState) Activity(id uint64) (Activity, error) {
	act, ok := w.Activities[id]
	if !ok {
		return Activity{}, ErrNoActivity
	}
	return act, nil
}

// ClaimLand converts elapsed staking time into Land tokens. The whole call
// is validated before any state changes: every id must carry an activity
// record staked by the caller for at least the configured claim time.
// On success each warrior returns to the staker, its activity record is
// deleted, one Land token is minted per id and the RESOURCE reward is paid
// out, all within the enclosing transaction.
func (w *WarriorState) ClaimLand(caller Address, ids []uint64, now time.Time, land LandMinter, resource ResourceMinter) ([]uint64, error) {
	if w.LandAddr == ZeroAddress || w.ResourceAddr == ZeroAddress {
		return nil, ErrContractsNotSet
	}
	seen := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		act, ok := w.Activities[id]
		if !ok || seen[id] {
			return nil, ErrNoActivity
		}
		if act.Staker != caller {
			return nil, ErrNotStaker
		}
		if now.Sub(act.StakedAt) < w.LandClaimTime {
			return nil, ErrStakeTooShort
		}
		seen[id] = true
	}

	landIDs := make([]uint64, 0, len(ids))
	for _, id := range ids {
		act := w.Activities[id]
		w.Tokens[id] = Token{Owner: act.Staker}
		delete(w.Activities, id)

		landID, err := land.MintFor(w.Self, act.Staker)
		if err != nil {
			return nil, err
		}
		landIDs = append(landIDs, landID)
	}
	if w.ClaimRewardUnits > 0 {
		if err := resource.Mint(w.Self, caller, w.ClaimRewardUnits*uint64(len(ids))); err != nil {
			return nil, err
		}
	}
	return landIDs, nil
}

func (w *WarriorState) FlipSaleState(caller Address) error {
	if err := w.requireOwner(caller); err != nil {
		return err
	}
	w.SaleLive = !w.SaleLive
	return nil
}

func (w *WarriorState) SetContractAddresses(caller, land, resource Address) error {
	if err := w.requireOwner(caller); err != nil {
		return err
	}
	w.LandAddr = land
	w.ResourceAddr = resource
	return nil
}

func (w *WarriorState) SetLandClaimTime(caller Address, d time.Duration) error {
	if err := w.requireOwner(caller); err != nil {
		return err
	}
	w.LandClaimTime = d
	return nil
}

// Withdraw drains the payment vault to the contract owner and returns the
// amount paid out.
func (w *WarriorState) Withdraw(caller Address) (uint64, error) {
	if err := w.requireOwner(caller); err != nil {
		return 0, err
	}
	amount := w.VaultWei
	w.VaultWei = 0
	return amount, nil
}

func (w *WarriorState) requireOwner(caller Address) error {
	if caller != w.ContractOwner {
		return ErrNotContractOwner
	}
	return nil
}

func (w WarriorState) Clone() WarriorState {
	out := w
	out.Collection = w.Collection.clone()
	out.Activities = make(map[uint64]Activity, len(w.Activities))
	for id, act := range w.Activities {
		out.Activities[id] = act
	}
	return out
}
