package ledger

// LandState is the Land contract aggregate. Land parcels are minted only
// through MintFor, which is reserved for the fixed minter address wired at
// construction (the Warrior contract).
type LandState struct {
	Collection

	Self          Address `json:"self"`
	ContractOwner Address `json:"contract_owner"`
	Minter        Address `json:"minter"`

	Version int64 `json:"version"`
}

func NewLandState(self, owner, minter Address) LandState {
	return LandState{
		Collection:    newCollection(),
		Self:          self,
		ContractOwner: owner,
		Minter:        minter,
	}
}

// MintFor mints one sequential parcel to `to`. The caller address is
// checked on every invocation, never cached.
func (l *LandState) MintFor(caller, to Address) (uint64, error) {
	if caller != l.Minter {
		return 0, ErrNotAllowedMinter
	}
	if to == ZeroAddress {
		return 0, ErrTransferToZero
	}
	return l.mint(to), nil
}

func (l *LandState) TransferFrom(caller, from, to Address, id uint64) error {
	return l.transfer(caller, from, to, id)
}

func (l *LandState) Approve(caller, spender Address, id uint64) error {
	return l.approve(caller, spender, id)
}

func (l *LandState) SetApprovalForAll(caller, operator Address, approved bool) {
	l.setApprovalForAll(caller, operator, approved)
}

func (l *LandState) Burn(caller Address, id uint64) error {
	return l.burn(caller, id)
}

func (l LandState) Clone() LandState {
	out := l
	out.Collection = l.Collection.clone()
	return out
}
