package types

import (
	"fmt"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

var _ sdk.Msg = &MsgSwap{}

// MsgSwap trades AmountIn of TokenIn for the constant-product quote of
// TokenOut.
type MsgSwap struct {
	Trader   string   `json:"trader"`
	PoolId   uint64   `json:"pool_id"`
	TokenIn  string   `json:"token_in"`
	TokenOut string   `json:"token_out"`
	AmountIn math.Int `json:"amount_in"`
}

// NewMsgSwap creates a new MsgSwap instance
func NewMsgSwap(trader string, poolID uint64, tokenIn, tokenOut string, amountIn math.Int) *MsgSwap {
	return &MsgSwap{
		Trader:   trader,
		PoolId:   poolID,
		TokenIn:  tokenIn,
		TokenOut: tokenOut,
		AmountIn: amountIn,
	}
}

// Route implements the sdk.Msg interface
func (msg MsgSwap) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg MsgSwap) Type() string { return "swap" }

// Reset implements the proto.Message interface
func (msg *MsgSwap) Reset() { *msg = MsgSwap{} }

// String implements the proto.Message interface
func (msg *MsgSwap) String() string {
	return fmt.Sprintf("swap{pool %d: %s %s -> %s}", msg.PoolId, msg.AmountIn, msg.TokenIn, msg.TokenOut)
}

// ProtoMessage implements the proto.Message interface
func (*MsgSwap) ProtoMessage() {}

// XXX_MessageName supplies the registry name the type URL is built from,
// needed because the type is hand-written rather than generated.
func (*MsgSwap) XXX_MessageName() string { return "simpleswap.swap.MsgSwap" }

// GetSigners implements the sdk.Msg interface
func (msg MsgSwap) GetSigners() []sdk.AccAddress {
	trader, err := sdk.AccAddressFromBech32(msg.Trader)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{trader}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgSwap) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgSwap) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Trader); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid trader address: %s", err)
	}

	if msg.PoolId == 0 {
		return sdkerrors.Wrap(ErrInvalidPoolId, "pool id cannot be zero")
	}

	if err := sdk.ValidateDenom(msg.TokenIn); err != nil {
		return sdkerrors.Wrapf(ErrInvalidTokenDenom, "invalid token in: %s", err)
	}
	if err := sdk.ValidateDenom(msg.TokenOut); err != nil {
		return sdkerrors.Wrapf(ErrInvalidTokenDenom, "invalid token out: %s", err)
	}

	if msg.TokenIn == msg.TokenOut {
		return sdkerrors.Wrap(ErrSameToken, "cannot swap identical tokens")
	}

	if msg.AmountIn.IsNil() || !msg.AmountIn.IsPositive() {
		return sdkerrors.Wrap(ErrInvalidAmount, "amount in must be positive")
	}

	return nil
}
