package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"warhold/internal/app/admin"
	"warhold/internal/app/claim"
	"warhold/internal/app/history"
	"warhold/internal/app/mint"
	"warhold/internal/app/ports"
	"warhold/internal/app/resource"
	"warhold/internal/app/token"
	"warhold/internal/app/view"
	"warhold/internal/domain/ledger"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// The msg.sender analog: every mutating call names its caller account here.
const callerHeader = "X-Caller-Address"

type Handler struct {
	MintUC     mint.UseCase
	TokenUC    token.UseCase
	ClaimUC    claim.UseCase
	AdminUC    admin.UseCase
	ResourceUC resource.UseCase
	ViewUC     view.UseCase
	HistoryUC  history.UseCase
	KPI        kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	warrior := s.Group("/api/warrior")
	warrior.POST("/mint", h.warriorMint)
	warrior.POST("/transfer", h.warriorTransfer)
	warrior.POST("/approve", h.warriorApprove)
	warrior.POST("/approval", h.warriorApprovalForAll)
	warrior.POST("/burn", h.warriorBurn)
	warrior.POST("/claim", h.warriorClaim)
	warrior.POST("/admin/flip-sale", h.flipSale)
	warrior.POST("/admin/contracts", h.setContracts)
	warrior.POST("/admin/claim-time", h.setClaimTime)
	warrior.POST("/admin/withdraw", h.withdraw)
	warrior.GET("/balance", h.warriorBalance)
	warrior.GET("/owner", h.warriorOwner)
	warrior.GET("/supply", h.warriorSupply)
	warrior.GET("/sale", h.sale)
	warrior.GET("/activity", h.activity)

	land := s.Group("/api/land")
	land.POST("/transfer", h.landTransfer)
	land.POST("/approve", h.landApprove)
	land.POST("/approval", h.landApprovalForAll)
	land.GET("/balance", h.landBalance)
	land.GET("/owner", h.landOwner)
	land.GET("/supply", h.landSupply)

	res := s.Group("/api/resource")
	res.POST("/transfer", h.resourceTransfer)
	res.POST("/mint", h.resourceMint)
	res.POST("/burn", h.resourceBurn)
	res.POST("/admin/game-masters", h.editGameMasters)
	res.GET("/balance", h.resourceBalance)
	res.GET("/supply", h.resourceSupply)
	res.GET("/game-master", h.gameMaster)

	s.GET("/api/ledger/events", h.events)
	s.GET("/ops/kpi", h.kpi)
}

type mintRequest struct {
	Quantity uint64 `json:"quantity"`
	Stake    bool   `json:"stake"`
	ValueWei uint64 `json:"value_wei"`
}

type transferRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	TokenID uint64 `json:"token_id"`
}

type approveRequest struct {
	Spender string `json:"spender"`
	TokenID uint64 `json:"token_id"`
}

type approvalForAllRequest struct {
	Operator string `json:"operator"`
	Approved bool   `json:"approved"`
}

type burnRequest struct {
	TokenID uint64 `json:"token_id"`
}

type claimRequest struct {
	TokenIDs []uint64 `json:"token_ids"`
}

type setContractsRequest struct {
	Land     string `json:"land"`
	Resource string `json:"resource"`
}

type setClaimTimeRequest struct {
	Seconds uint64 `json:"seconds"`
}

type gameMastersRequest struct {
	Accounts []string `json:"accounts"`
	Flags    []bool   `json:"flags"`
}

type resourceMoveRequest struct {
	Account string `json:"account,omitempty"`
	To      string `json:"to,omitempty"`
	Amount  uint64 `json:"amount"`
}

func (h Handler) warriorMint(c context.Context, ctx *app.RequestContext) {
	caller, err := requireCaller(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body mintRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.MintUC.Execute(c, mint.Request{
		Caller:   caller,
		Quantity: body.Quantity,
		Stake:    body.Stake,
		ValueWei: body.ValueWei,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) warriorTransfer(c context.Context, ctx *app.RequestContext) {
	h.transfer(c, ctx, token.CollectionWarrior)
}

func (h Handler) landTransfer(c context.Context, ctx *app.RequestContext) {
	h.transfer(c, ctx, token.CollectionLand)
}

func (h Handler) transfer(c context.Context, ctx *app.RequestContext, col token.Collection) {
	caller, err := requireCaller(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body transferRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.TokenUC.Transfer(c, token.TransferRequest{
		Collection: col,
		Caller:     caller,
		From:       ledger.Address(body.From),
		To:         ledger.Address(body.To),
		TokenID:    body.TokenID,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) warriorApprove(c context.Context, ctx *app.RequestContext) {
	h.approveToken(c, ctx, token.CollectionWarrior)
}

func (h Handler) landApprove(c context.Context, ctx *app.RequestContext) {
	h.approveToken(c, ctx, token.CollectionLand)
}

func (h Handler) approveToken(c context.Context, ctx *app.RequestContext, col token.Collection) {
	caller, err := requireCaller(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body approveRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.TokenUC.Approve(c, token.ApproveRequest{
		Collection: col,
		Caller:     caller,
		Spender:    ledger.Address(body.Spender),
		TokenID:    body.TokenID,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) warriorApprovalForAll(c context.Context, ctx *app.RequestContext) {
	h.approvalForAll(c, ctx, token.CollectionWarrior)
}

func (h Handler) landApprovalForAll(c context.Context, ctx *app.RequestContext) {
	h.approvalForAll(c, ctx, token.CollectionLand)
}

func (h Handler) approvalForAll(c context.Context, ctx *app.RequestContext, col token.Collection) {
	caller, err := requireCaller(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body approvalForAllRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.TokenUC.SetApprovalForAll(c, token.ApprovalForAllRequest{
		Collection: col,
		Caller:     caller,
		Operator:   ledger.Address(body.Operator),
		Approved:   body.Approved,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) warriorBurn(c context.Context, ctx *app.RequestContext) {
	caller, err := requireCaller(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body burnRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.TokenUC.Burn(c, token.BurnRequest{
		Collection: token.CollectionWarrior,
		Caller:     caller,
		TokenID:    body.TokenID,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) warriorClaim(c context.Context, ctx *app.RequestContext) {
	caller, err := requireCaller(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body claimRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.ClaimUC.Execute(c, claim.Request{Caller: caller, TokenIDs: body.TokenIDs})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) flipSale(c context.Context, ctx *app.RequestContext) {
	caller, err := requireCaller(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.AdminUC.FlipSaleState(c, admin.FlipSaleRequest{Caller: caller})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) setContracts(c context.Context, ctx *app.RequestContext) {
	caller, err := requireCaller(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body setContractsRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if err := h.AdminUC.SetContractAddresses(c, admin.SetContractsRequest{
		Caller:   caller,
		Land:     ledger.Address(body.Land),
		Resource: ledger.Address(body.Resource),
	}); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"ok": true})
}

func (h Handler) setClaimTime(c context.Context, ctx *app.RequestContext) {
	caller, err := requireCaller(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body setClaimTimeRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if err := h.AdminUC.SetLandClaimTime(c, admin.SetClaimTimeRequest{Caller: caller, Seconds: body.Seconds}); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"ok": true})
}

func (h Handler) withdraw(c context.Context, ctx *app.RequestContext) {
	caller, err := requireCaller(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.AdminUC.Withdraw(c, admin.WithdrawRequest{Caller: caller})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) editGameMasters(c context.Context, ctx *app.RequestContext) {
	caller, err := requireCaller(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body gameMastersRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	accounts := make([]ledger.Address, 0, len(body.Accounts))
	for _, a := range body.Accounts {
		accounts = append(accounts, ledger.Address(a))
	}
	if err := h.AdminUC.EditGameMasters(c, admin.EditGameMastersRequest{
		Caller:   caller,
		Accounts: accounts,
		Flags:    body.Flags,
	}); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"ok": true})
}

func (h Handler) resourceTransfer(c context.Context, ctx *app.RequestContext) {
	caller, err := requireCaller(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body resourceMoveRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.ResourceUC.Transfer(c, resource.TransferRequest{
		Caller: caller,
		To:     ledger.Address(body.To),
		Amount: body.Amount,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) resourceMint(c context.Context, ctx *app.RequestContext) {
	caller, err := requireCaller(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body resourceMoveRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.ResourceUC.Mint(c, resource.MintRequest{
		Caller:  caller,
		Account: ledger.Address(body.Account),
		Amount:  body.Amount,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) resourceBurn(c context.Context, ctx *app.RequestContext) {
	caller, err := requireCaller(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body resourceMoveRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.ResourceUC.Burn(c, resource.BurnRequest{
		Caller:  caller,
		Account: ledger.Address(body.Account),
		Amount:  body.Amount,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) warriorBalance(c context.Context, ctx *app.RequestContext) {
	resp, err := h.ViewUC.WarriorBalance(c, ledger.Address(ctx.Query("account")))
	writeViewResult(ctx, resp, err)
}

func (h Handler) warriorOwner(c context.Context, ctx *app.RequestContext) {
	id, err := queryTokenID(ctx)
	if err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_token_id", "invalid token id")
		return
	}
	resp, err := h.ViewUC.WarriorOwner(c, id)
	writeViewResult(ctx, resp, err)
}

func (h Handler) warriorSupply(c context.Context, ctx *app.RequestContext) {
	resp, err := h.ViewUC.WarriorSupply(c)
	writeViewResult(ctx, resp, err)
}

func (h Handler) sale(c context.Context, ctx *app.RequestContext) {
	resp, err := h.ViewUC.Sale(c)
	writeViewResult(ctx, resp, err)
}

func (h Handler) activity(c context.Context, ctx *app.RequestContext) {
	id, err := queryTokenID(ctx)
	if err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_token_id", "invalid token id")
		return
	}
	resp, err := h.ViewUC.Activity(c, id)
	writeViewResult(ctx, resp, err)
}

func (h Handler) landBalance(c context.Context, ctx *app.RequestContext) {
	resp, err := h.ViewUC.LandBalance(c, ledger.Address(ctx.Query("account")))
	writeViewResult(ctx, resp, err)
}

func (h Handler) landOwner(c context.Context, ctx *app.RequestContext) {
	id, err := queryTokenID(ctx)
	if err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_token_id", "invalid token id")
		return
	}
	resp, err := h.ViewUC.LandOwner(c, id)
	writeViewResult(ctx, resp, err)
}

func (h Handler) landSupply(c context.Context, ctx *app.RequestContext) {
	resp, err := h.ViewUC.LandSupply(c)
	writeViewResult(ctx, resp, err)
}

func (h Handler) resourceBalance(c context.Context, ctx *app.RequestContext) {
	resp, err := h.ViewUC.ResourceBalance(c, ledger.Address(ctx.Query("account")))
	writeViewResult(ctx, resp, err)
}

func (h Handler) resourceSupply(c context.Context, ctx *app.RequestContext) {
	resp, err := h.ViewUC.ResourceSupply(c)
	writeViewResult(ctx, resp, err)
}

func (h Handler) gameMaster(c context.Context, ctx *app.RequestContext) {
	resp, err := h.ViewUC.GameMaster(c, ledger.Address(ctx.Query("account")))
	writeViewResult(ctx, resp, err)
}

func (h Handler) events(c context.Context, ctx *app.RequestContext) {
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	resp, err := h.HistoryUC.Execute(c, history.Request{
		Account: ledger.Address(ctx.Query("account")),
		Limit:   limit,
	})
	writeViewResult(ctx, resp, err)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func queryTokenID(ctx *app.RequestContext) (uint64, error) {
	return strconv.ParseUint(string(ctx.Query("id")), 10, 64)
}

func writeViewResult(ctx *app.RequestContext, resp any, err error) {
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

var ErrMissingCallerHeader = errors.New("missing x-caller-address header")

func requireCaller(ctx *app.RequestContext) (ledger.Address, error) {
	caller := strings.TrimSpace(string(ctx.GetHeader(callerHeader)))
	if caller == "" {
		return ledger.ZeroAddress, ErrMissingCallerHeader
	}
	return ledger.Address(caller), nil
}

// writeError maps a fault to an HTTP status while surfacing the contract
// revert reason verbatim in the message field.
func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrMissingCallerHeader):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_caller_address", err.Error())
	case errors.Is(err, ledger.ErrIncorrectPayment):
		writeErrorBody(ctx, consts.StatusBadRequest, "incorrect_payment", err.Error())
	case errors.Is(err, ledger.ErrMintZeroQuantity):
		writeErrorBody(ctx, consts.StatusBadRequest, "mint_zero_quantity", err.Error())
	case errors.Is(err, ledger.ErrLengthMismatch):
		writeErrorBody(ctx, consts.StatusBadRequest, "array_length_mismatch", err.Error())
	case errors.Is(err, ledger.ErrTransferToZero):
		writeErrorBody(ctx, consts.StatusBadRequest, "transfer_to_zero_address", err.Error())
	case errors.Is(err, ledger.ErrNotOwnerNorApproved):
		writeErrorBody(ctx, consts.StatusForbidden, "not_owner_nor_approved", err.Error())
	case errors.Is(err, ledger.ErrNotContractOwner):
		writeErrorBody(ctx, consts.StatusForbidden, "not_contract_owner", err.Error())
	case errors.Is(err, ledger.ErrNotGameMaster):
		writeErrorBody(ctx, consts.StatusForbidden, "not_game_master", err.Error())
	case errors.Is(err, ledger.ErrNotAllowedMinter):
		writeErrorBody(ctx, consts.StatusForbidden, "not_allowed_minter", err.Error())
	case errors.Is(err, ledger.ErrNotStaker):
		writeErrorBody(ctx, consts.StatusForbidden, "claim_caller_not_staker", err.Error())
	case errors.Is(err, ledger.ErrNonexistentToken):
		writeErrorBody(ctx, consts.StatusNotFound, "nonexistent_token", err.Error())
	case errors.Is(err, ledger.ErrNoActivity):
		writeErrorBody(ctx, consts.StatusNotFound, "no_activity_record", err.Error())
	case errors.Is(err, ledger.ErrSaleNotLive):
		writeErrorBody(ctx, consts.StatusConflict, "sale_not_live", err.Error())
	case errors.Is(err, ledger.ErrStakeTooShort):
		writeErrorBody(ctx, consts.StatusConflict, "staking_duration_not_met", err.Error())
	case errors.Is(err, ledger.ErrContractsNotSet):
		writeErrorBody(ctx, consts.StatusConflict, "contracts_not_configured", err.Error())
	case errors.Is(err, ledger.ErrInsufficientBalance):
		writeErrorBody(ctx, consts.StatusConflict, "insufficient_balance", err.Error())
	case errors.Is(err, mint.ErrInvalidRequest),
		errors.Is(err, token.ErrInvalidRequest),
		errors.Is(err, token.ErrUnknownCollection),
		errors.Is(err, claim.ErrInvalidRequest),
		errors.Is(err, admin.ErrInvalidRequest),
		errors.Is(err, resource.ErrInvalidRequest),
		errors.Is(err, view.ErrInvalidRequest),
		errors.Is(err, history.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": message,
		},
	})
}
