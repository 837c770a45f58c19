package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
	cdctypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// RegisterCodec registers the module's concrete message types on the amino
// codec.
func RegisterCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&MsgCreatePool{}, "swap/MsgCreatePool", nil)
	cdc.RegisterConcrete(&MsgSwap{}, "swap/MsgSwap", nil)
	cdc.RegisterConcrete(&MsgAddLiquidity{}, "swap/MsgAddLiquidity", nil)
	cdc.RegisterConcrete(&MsgRemoveLiquidity{}, "swap/MsgRemoveLiquidity", nil)
	cdc.RegisterConcrete(&MsgTransferShares{}, "swap/MsgTransferShares", nil)
}

// RegisterInterfaces registers the module's message implementations with the
// interface registry.
func RegisterInterfaces(registry cdctypes.InterfaceRegistry) {
	registry.RegisterImplementations((*sdk.Msg)(nil),
		&MsgCreatePool{},
		&MsgSwap{},
		&MsgAddLiquidity{},
		&MsgRemoveLiquidity{},
		&MsgTransferShares{},
	)
}

// ModuleCdc is the module's amino codec, used for sign bytes.
var ModuleCdc = codec.NewLegacyAmino()

func init() {
	RegisterCodec(ModuleCdc)
	ModuleCdc.Seal()
}
