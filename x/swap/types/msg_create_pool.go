package types

import (
	sdkerrors "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

var _ sdk.Msg = &MsgCreatePool{}

// MsgCreatePool registers a new empty pool for a denom pair. Reserves and
// shares start at zero; the first AddLiquidity fixes the initial price.
type MsgCreatePool struct {
	Creator string `json:"creator"`
	TokenA  string `json:"token_a"`
	TokenB  string `json:"token_b"`
}

// NewMsgCreatePool creates a new MsgCreatePool instance
func NewMsgCreatePool(creator, tokenA, tokenB string) *MsgCreatePool {
	return &MsgCreatePool{
		Creator: creator,
		TokenA:  tokenA,
		TokenB:  tokenB,
	}
}

// Route implements the sdk.Msg interface
func (msg MsgCreatePool) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg MsgCreatePool) Type() string { return "create_pool" }

// Reset implements the proto.Message interface
func (msg *MsgCreatePool) Reset() { *msg = MsgCreatePool{} }

// String implements the proto.Message interface
func (msg *MsgCreatePool) String() string {
	return "create_pool{" + msg.Creator + " " + msg.TokenA + "/" + msg.TokenB + "}"
}

// ProtoMessage implements the proto.Message interface
func (*MsgCreatePool) ProtoMessage() {}

// XXX_MessageName supplies the registry name the type URL is built from,
// needed because the type is hand-written rather than generated.
func (*MsgCreatePool) XXX_MessageName() string { return "simpleswap.swap.MsgCreatePool" }

// GetSigners implements the sdk.Msg interface
func (msg MsgCreatePool) GetSigners() []sdk.AccAddress {
	creator, err := sdk.AccAddressFromBech32(msg.Creator)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{creator}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgCreatePool) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgCreatePool) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Creator); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid creator address: %s", err)
	}

	if err := sdk.ValidateDenom(msg.TokenA); err != nil {
		return sdkerrors.Wrapf(ErrInvalidTokenDenom, "invalid token A: %s", err)
	}
	if err := sdk.ValidateDenom(msg.TokenB); err != nil {
		return sdkerrors.Wrapf(ErrInvalidTokenDenom, "invalid token B: %s", err)
	}

	if msg.TokenA == msg.TokenB {
		return sdkerrors.Wrap(ErrSameToken, "cannot create pool with identical tokens")
	}

	return nil
}
