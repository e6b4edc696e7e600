package ledger

import "errors"

// Fault values carry the exact revert-reason strings the original contracts
// emit. Adapters must surface them verbatim.
var (
	ErrSaleNotLive         = errors.New("Sale is not live!")
	ErrIncorrectPayment    = errors.New("Incorrect ETH amount!")
	ErrMintZeroQuantity    = errors.New("MintZeroQuantity()")
	ErrNonexistentToken    = errors.New("OwnerQueryForNonexistentToken()")
	ErrNotOwnerNorApproved = errors.New("TransferCallerNotOwnerNorApproved()")
	ErrTransferToZero      = errors.New("TransferToZeroAddress()")
	ErrNotContractOwner    = errors.New("Ownable: caller is not the owner")
	ErrNotGameMaster       = errors.New("NotGameMaster()")
	ErrInsufficientBalance = errors.New("InsufficientBalance()")
	ErrNoActivity          = errors.New("ActivityQueryForNonexistentToken()")
	ErrNotStaker           = errors.New("ClaimCallerNotStaker()")
	ErrStakeTooShort       = errors.New("StakingDurationNotMet()")
	ErrLengthMismatch      = errors.New("ArrayLengthMismatch()")
	ErrNotAllowedMinter    = errors.New("NotAllowedMinter()")
	ErrContractsNotSet     = errors.New("Contracts not configured!")
)
