package types

import (
	"fmt"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

var _ sdk.Msg = &MsgRemoveLiquidity{}

// MsgRemoveLiquidity burns Shares of the provider's liquidity claim and
// withdraws the proportional amounts of both pool assets.
type MsgRemoveLiquidity struct {
	Provider string   `json:"provider"`
	PoolId   uint64   `json:"pool_id"`
	Shares   math.Int `json:"shares"`
}

// NewMsgRemoveLiquidity creates a new MsgRemoveLiquidity instance
func NewMsgRemoveLiquidity(provider string, poolID uint64, shares math.Int) *MsgRemoveLiquidity {
	return &MsgRemoveLiquidity{
		Provider: provider,
		PoolId:   poolID,
		Shares:   shares,
	}
}

// Route implements the sdk.Msg interface
func (msg MsgRemoveLiquidity) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg MsgRemoveLiquidity) Type() string { return "remove_liquidity" }

// Reset implements the proto.Message interface
func (msg *MsgRemoveLiquidity) Reset() { *msg = MsgRemoveLiquidity{} }

// String implements the proto.Message interface
func (msg *MsgRemoveLiquidity) String() string {
	return fmt.Sprintf("remove_liquidity{pool %d: %s shares}", msg.PoolId, msg.Shares)
}

// ProtoMessage implements the proto.Message interface
func (*MsgRemoveLiquidity) ProtoMessage() {}

// XXX_MessageName supplies the registry name the type URL is built from,
// needed because the type is hand-written rather than generated.
func (*MsgRemoveLiquidity) XXX_MessageName() string { return "simpleswap.swap.MsgRemoveLiquidity" }

// GetSigners implements the sdk.Msg interface
func (msg MsgRemoveLiquidity) GetSigners() []sdk.AccAddress {
	provider, err := sdk.AccAddressFromBech32(msg.Provider)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{provider}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgRemoveLiquidity) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgRemoveLiquidity) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Provider); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid provider address: %s", err)
	}

	if msg.PoolId == 0 {
		return sdkerrors.Wrap(ErrInvalidPoolId, "pool id cannot be zero")
	}

	if msg.Shares.IsNil() || !msg.Shares.IsPositive() {
		return sdkerrors.Wrap(ErrInvalidAmount, "shares must be positive")
	}

	return nil
}
