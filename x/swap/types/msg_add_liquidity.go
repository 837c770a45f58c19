package types

import (
	"fmt"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

var _ sdk.Msg = &MsgAddLiquidity{}

// MsgAddLiquidity deposits up to AmountA of TokenA and AmountB of TokenB into
// a pool. The tokens may be given in either order; whatever the current
// reserve ratio cannot consume is refunded.
type MsgAddLiquidity struct {
	Provider string   `json:"provider"`
	PoolId   uint64   `json:"pool_id"`
	TokenA   string   `json:"token_a"`
	AmountA  math.Int `json:"amount_a"`
	TokenB   string   `json:"token_b"`
	AmountB  math.Int `json:"amount_b"`
}

// NewMsgAddLiquidity creates a new MsgAddLiquidity instance
func NewMsgAddLiquidity(provider string, poolID uint64, tokenA string, amountA math.Int, tokenB string, amountB math.Int) *MsgAddLiquidity {
	return &MsgAddLiquidity{
		Provider: provider,
		PoolId:   poolID,
		TokenA:   tokenA,
		AmountA:  amountA,
		TokenB:   tokenB,
		AmountB:  amountB,
	}
}

// Route implements the sdk.Msg interface
func (msg MsgAddLiquidity) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg MsgAddLiquidity) Type() string { return "add_liquidity" }

// Reset implements the proto.Message interface
func (msg *MsgAddLiquidity) Reset() { *msg = MsgAddLiquidity{} }

// String implements the proto.Message interface
func (msg *MsgAddLiquidity) String() string {
	return fmt.Sprintf("add_liquidity{pool %d: %s%s + %s%s}", msg.PoolId, msg.AmountA, msg.TokenA, msg.AmountB, msg.TokenB)
}

// ProtoMessage implements the proto.Message interface
func (*MsgAddLiquidity) ProtoMessage() {}

// XXX_MessageName supplies the registry name the type URL is built from,
// needed because the type is hand-written rather than generated.
func (*MsgAddLiquidity) XXX_MessageName() string { return "simpleswap.swap.MsgAddLiquidity" }

// GetSigners implements the sdk.Msg interface
func (msg MsgAddLiquidity) GetSigners() []sdk.AccAddress {
	provider, err := sdk.AccAddressFromBech32(msg.Provider)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{provider}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgAddLiquidity) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgAddLiquidity) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Provider); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid provider address: %s", err)
	}

	if msg.PoolId == 0 {
		return sdkerrors.Wrap(ErrInvalidPoolId, "pool id cannot be zero")
	}

	if err := sdk.ValidateDenom(msg.TokenA); err != nil {
		return sdkerrors.Wrapf(ErrInvalidTokenDenom, "invalid token A: %s", err)
	}
	if err := sdk.ValidateDenom(msg.TokenB); err != nil {
		return sdkerrors.Wrapf(ErrInvalidTokenDenom, "invalid token B: %s", err)
	}

	if msg.TokenA == msg.TokenB {
		return sdkerrors.Wrap(ErrSameToken, "deposit tokens must differ")
	}

	if msg.AmountA.IsNil() || !msg.AmountA.IsPositive() {
		return sdkerrors.Wrap(ErrInvalidAmount, "amount A must be positive")
	}
	if msg.AmountB.IsNil() || !msg.AmountB.IsPositive() {
		return sdkerrors.Wrap(ErrInvalidAmount, "amount B must be positive")
	}

	return nil
}
