package ledger

// Address identifies an account or contract on the simulated ledger. The
// empty string is the zero address.
type Address string

const ZeroAddress Address = ""

type Token struct {
	Owner    Address `json:"owner"`
	Approved Address `json:"approved,omitempty"`
}

// Collection is the ownership core shared by the Warrior and Land
// aggregates: dense sequential ids, one owner per id, per-owner operator
// grants and per-token single approvals.
type Collection struct {
	Tokens      map[uint64]Token             `json:"tokens"`
	Operators   map[Address]map[Address]bool `json:"operators,omitempty"`
	NextID      uint64                       `json:"next_id"`
	TotalSupply uint64                       `json:"total_supply"`
}

func newCollection() Collection {
	return Collection{
		Tokens:    map[uint64]Token{},
		Operators: map[Address]map[Address]bool{},
	}
}

// OwnerOf fails for ids that were never minted or were burned. Burned ids
// are permanently nonexistent.
func (c *Collection) OwnerOf(id uint64) (Address, error) {
	tok, ok := c.Tokens[id]
	if !ok {
		return ZeroAddress, ErrNonexistentToken
	}
	return tok.Owner, nil
}

func (c *Collection) BalanceOf(account Address) uint64 {
	var n uint64
	for _, tok := range c.Tokens {
		if tok.Owner == account {
			n++
		}
	}
	return n
}

func (c *Collection) Approved(id uint64) (Address, error) {
	tok, ok := c.Tokens[id]
	if !ok {
		return ZeroAddress, ErrNonexistentToken
	}
	return tok.Approved, nil
}

func (c *Collection) IsApprovedForAll(owner, operator Address) bool {
	return c.Operators[owner][operator]
}

func (c *Collection) setApprovalForAll(caller, operator Address, approved bool) {
	grants := c.Operators[caller]
	if grants == nil {
		if !approved {
			return
		}
		grants = map[Address]bool{}
		c.Operators[caller] = grants
	}
	if approved {
		grants[operator] = true
		return
	}
	delete(grants, operator)
	if len(grants) == 0 {
		delete(c.Operators, caller)
	}
}

func (c *Collection) approve(caller, spender Address, id uint64) error {
	tok, ok := c.Tokens[id]
	if !ok {
		return ErrNonexistentToken
	}
	if caller != tok.Owner && !c.IsApprovedForAll(tok.Owner, caller) {
		return ErrNotOwnerNorApproved
	}
	tok.Approved = spender
	c.Tokens[id] = tok
	return nil
}

func (c *Collection) authorized(caller Address, tok Token) bool {
	return caller == tok.Owner || tok.Approved == caller || c.IsApprovedForAll(tok.Owner, caller)
}

func (c *Collection) transfer(caller, from, to Address, id uint64) error {
	tok, ok := c.Tokens[id]
	if !ok {
		return ErrNonexistentToken
	}
	if to == ZeroAddress {
		return ErrTransferToZero
	}
	if tok.Owner != from || !c.authorized(caller, tok) {
		return ErrNotOwnerNorApproved
	}
	// Single-token approval does not survive a transfer.
	c.Tokens[id] = Token{Owner: to}
	return nil
}

func (c *Collection) burn(caller Address, id uint64) error {
	tok, ok := c.Tokens[id]
	if !ok {
		return ErrNonexistentToken
	}
	if !c.authorized(caller, tok) {
		return ErrNotOwnerNorApproved
	}
	delete(c.Tokens, id)
	c.TotalSupply--
	return nil
}

func (c *Collection) mint(to Address) uint64 {
	id := c.NextID
	c.Tokens[id] = Token{Owner: to}
	c.NextID++
	c.TotalSupply++
	return id
}

func (c Collection) clone() Collection {
	out := Collection{
		Tokens:      make(map[uint64]Token, len(c.Tokens)),
		Operators:   make(map[Address]map[Address]bool, len(c.Operators)),
		NextID:      c.NextID,
		TotalSupply: c.TotalSupply,
	}
	for id, tok := range c.Tokens {
		out.Tokens[id] = tok
	}
	for owner, grants := range c.Operators {
		cp := make(map[Address]bool, len(grants))
		for op, v := range grants {
			cp[op] = v
		}
		out.Operators[owner] = cp
	}
	return out
}
