package ledger

// ResourceState is the fungible RESOURCE token aggregate. Game masters may
// mint and burn arbitrarily; everyone else only moves existing balance.
type ResourceState struct {
	Self          Address            `json:"self"`
	ContractOwner Address            `json:"contract_owner"`
	Balances      map[Address]uint64 `json:"balances"`
	GameMasters   map[Address]bool   `json:"game_masters"`
	TotalSupply   uint64             `json:"total_supply"`

	Version int64 `json:"version"`
}

func NewResourceState(self, owner Address) ResourceState {
	return ResourceState{
		Self:          self,
		ContractOwner: owner,
		Balances:      map[Address]uint64{},
		GameMasters:   map[Address]bool{},
	}
}

func (r *ResourceState) BalanceOf(account Address) uint64 {
	return r.Balances[account]
}

func (r *ResourceState) IsGameMaster(account Address) bool {
	return r.GameMasters[account]
}

// EditGameMasters flips the privileged flag for each account. Owner-only;
// the two slices must pair up.
func (r *ResourceState) EditGameMasters(caller Address, accounts []Address, flags []bool) error {
	if caller != r.ContractOwner {
		return ErrNotContractOwner
	}
	if len(accounts) != len(flags) {
		return ErrLengthMismatch
	}
	for i, account := range accounts {
		if flags[i] {
			r.GameMasters[account] = true
		} else {
			delete(r.GameMasters, account)
		}
	}
	return nil
}

func (r *ResourceState) Mint(caller, account Address, amount uint64) error {
	if !r.GameMasters[caller] {
		return ErrNotGameMaster
	}
	r.Balances[account] += amount
	r.TotalSupply += amount
	return nil
}

func (r *ResourceState) Burn(caller, account Address, amount uint64) error {
	if !r.GameMasters[caller] {
		return ErrNotGameMaster
	}
	if r.Balances[account] < amount {
		return ErrInsufficientBalance
	}
	r.Balances[account] -= amount
	r.TotalSupply -= amount
	if r.Balances[account] == 0 {
		delete(r.Balances, account)
	}
	return nil
}

func (r *ResourceState) Transfer(from, to Address, amount uint64) error {
	if to == ZeroAddress {
		return ErrTransferToZero
	}
	if r.Balances[from] < amount {
		return ErrInsufficientBalance
	}
	r.Balances[from] -= amount
	r.Balances[to] += amount
	if r.Balances[from] == 0 {
		delete(r.Balances, from)
	}
	return nil
}

func (r ResourceState) Clone() ResourceState {
	out := r
	out.Balances = make(map[Address]uint64, len(r.Balances))
	for a, v := range r.Balances {
		out.Balances[a] = v
	}
	out.GameMasters = make(map[Address]bool, len(r.GameMasters))
	for a, v := range r.GameMasters {
		out.GameMasters[a] = v
	}
	return out
}
