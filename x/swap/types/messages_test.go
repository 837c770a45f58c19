package types_test

import (
	"errors"
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/d49976110/simpleswap/x/swap/types"
)

func testAddr(seed string) string {
	b := make([]byte, 20)
	copy(b, seed)
	return sdk.AccAddress(b).String()
}

// TestMsgCreatePool_ValidateBasic covers address and denom validation
func TestMsgCreatePool_ValidateBasic(t *testing.T) {
	tests := []struct {
		name string
		msg  *types.MsgCreatePool
		err  error
	}{
		{
			name: "valid",
			msg:  types.NewMsgCreatePool(testAddr("creator"), "uatom", "uusdt"),
		},
		{
			name: "invalid creator",
			msg:  types.NewMsgCreatePool("not-bech32", "uatom", "uusdt"),
			err:  types.ErrInvalidAddress,
		},
		{
			name: "empty denom",
			msg:  types.NewMsgCreatePool(testAddr("creator"), "", "uusdt"),
			err:  types.ErrInvalidTokenDenom,
		},
		{
			name: "malformed denom",
			msg:  types.NewMsgCreatePool(testAddr("creator"), "7atom", "uusdt"),
			err:  types.ErrInvalidTokenDenom,
		},
		{
			name: "identical tokens",
			msg:  types.NewMsgCreatePool(testAddr("creator"), "uatom", "uatom"),
			err:  types.ErrSameToken,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.msg.ValidateBasic()
			if tc.err != nil {
				require.Error(t, err)
				require.True(t, errors.Is(err, tc.err))
				return
			}
			require.NoError(t, err)
		})
	}
}

// TestMsgSwap_ValidateBasic covers address, pool id, denom, and amount checks
func TestMsgSwap_ValidateBasic(t *testing.T) {
	tests := []struct {
		name string
		msg  *types.MsgSwap
		err  error
	}{
		{
			name: "valid",
			msg:  types.NewMsgSwap(testAddr("trader"), 1, "uatom", "uusdt", math.NewInt(100)),
		},
		{
			name: "invalid trader",
			msg:  types.NewMsgSwap("not-bech32", 1, "uatom", "uusdt", math.NewInt(100)),
			err:  types.ErrInvalidAddress,
		},
		{
			name: "zero pool id",
			msg:  types.NewMsgSwap(testAddr("trader"), 0, "uatom", "uusdt", math.NewInt(100)),
			err:  types.ErrInvalidPoolId,
		},
		{
			name: "identical tokens",
			msg:  types.NewMsgSwap(testAddr("trader"), 1, "uatom", "uatom", math.NewInt(100)),
			err:  types.ErrSameToken,
		},
		{
			name: "zero amount",
			msg:  types.NewMsgSwap(testAddr("trader"), 1, "uatom", "uusdt", math.ZeroInt()),
			err:  types.ErrInvalidAmount,
		},
		{
			name: "negative amount",
			msg:  types.NewMsgSwap(testAddr("trader"), 1, "uatom", "uusdt", math.NewInt(-1)),
			err:  types.ErrInvalidAmount,
		},
		{
			name: "nil amount",
			msg:  &types.MsgSwap{Trader: testAddr("trader"), PoolId: 1, TokenIn: "uatom", TokenOut: "uusdt"},
			err:  types.ErrInvalidAmount,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.msg.ValidateBasic()
			if tc.err != nil {
				require.Error(t, err)
				require.True(t, errors.Is(err, tc.err))
				return
			}
			require.NoError(t, err)
		})
	}
}

// TestMsgAddLiquidity_ValidateBasic covers both deposit sides
func TestMsgAddLiquidity_ValidateBasic(t *testing.T) {
	tests := []struct {
		name string
		msg  *types.MsgAddLiquidity
		err  error
	}{
		{
			name: "valid",
			msg:  types.NewMsgAddLiquidity(testAddr("provider"), 1, "uatom", math.NewInt(10), "uusdt", math.NewInt(40)),
		},
		{
			name: "reversed order valid",
			msg:  types.NewMsgAddLiquidity(testAddr("provider"), 1, "uusdt", math.NewInt(40), "uatom", math.NewInt(10)),
		},
		{
			name: "invalid provider",
			msg:  types.NewMsgAddLiquidity("not-bech32", 1, "uatom", math.NewInt(10), "uusdt", math.NewInt(40)),
			err:  types.ErrInvalidAddress,
		},
		{
			name: "zero pool id",
			msg:  types.NewMsgAddLiquidity(testAddr("provider"), 0, "uatom", math.NewInt(10), "uusdt", math.NewInt(40)),
			err:  types.ErrInvalidPoolId,
		},
		{
			name: "identical tokens",
			msg:  types.NewMsgAddLiquidity(testAddr("provider"), 1, "uatom", math.NewInt(10), "uatom", math.NewInt(40)),
			err:  types.ErrSameToken,
		},
		{
			name: "zero amount A",
			msg:  types.NewMsgAddLiquidity(testAddr("provider"), 1, "uatom", math.ZeroInt(), "uusdt", math.NewInt(40)),
			err:  types.ErrInvalidAmount,
		},
		{
			name: "negative amount B",
			msg:  types.NewMsgAddLiquidity(testAddr("provider"), 1, "uatom", math.NewInt(10), "uusdt", math.NewInt(-40)),
			err:  types.ErrInvalidAmount,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.msg.ValidateBasic()
			if tc.err != nil {
				require.Error(t, err)
				require.True(t, errors.Is(err, tc.err))
				return
			}
			require.NoError(t, err)
		})
	}
}

// TestMsgRemoveLiquidity_ValidateBasic covers share amount validation
func TestMsgRemoveLiquidity_ValidateBasic(t *testing.T) {
	tests := []struct {
		name string
		msg  *types.MsgRemoveLiquidity
		err  error
	}{
		{
			name: "valid",
			msg:  types.NewMsgRemoveLiquidity(testAddr("provider"), 1, math.NewInt(50)),
		},
		{
			name: "invalid provider",
			msg:  types.NewMsgRemoveLiquidity("not-bech32", 1, math.NewInt(50)),
			err:  types.ErrInvalidAddress,
		},
		{
			name: "zero pool id",
			msg:  types.NewMsgRemoveLiquidity(testAddr("provider"), 0, math.NewInt(50)),
			err:  types.ErrInvalidPoolId,
		},
		{
			name: "zero shares",
			msg:  types.NewMsgRemoveLiquidity(testAddr("provider"), 1, math.ZeroInt()),
			err:  types.ErrInvalidAmount,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.msg.ValidateBasic()
			if tc.err != nil {
				require.Error(t, err)
				require.True(t, errors.Is(err, tc.err))
				return
			}
			require.NoError(t, err)
		})
	}
}

// TestMsgTransferShares_ValidateBasic covers sender/recipient validation
func TestMsgTransferShares_ValidateBasic(t *testing.T) {
	tests := []struct {
		name string
		msg  *types.MsgTransferShares
		err  error
	}{
		{
			name: "valid",
			msg:  types.NewMsgTransferShares(testAddr("sender"), testAddr("recipient"), 1, math.NewInt(10)),
		},
		{
			name: "invalid sender",
			msg:  types.NewMsgTransferShares("not-bech32", testAddr("recipient"), 1, math.NewInt(10)),
			err:  types.ErrInvalidAddress,
		},
		{
			name: "invalid recipient",
			msg:  types.NewMsgTransferShares(testAddr("sender"), "not-bech32", 1, math.NewInt(10)),
			err:  types.ErrInvalidAddress,
		},
		{
			name: "self transfer",
			msg:  types.NewMsgTransferShares(testAddr("sender"), testAddr("sender"), 1, math.NewInt(10)),
			err:  types.ErrInvalidAddress,
		},
		{
			name: "zero pool id",
			msg:  types.NewMsgTransferShares(testAddr("sender"), testAddr("recipient"), 0, math.NewInt(10)),
			err:  types.ErrInvalidPoolId,
		},
		{
			name: "zero shares",
			msg:  types.NewMsgTransferShares(testAddr("sender"), testAddr("recipient"), 1, math.ZeroInt()),
			err:  types.ErrInvalidAmount,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.msg.ValidateBasic()
			if tc.err != nil {
				require.Error(t, err)
				require.True(t, errors.Is(err, tc.err))
				return
			}
			require.NoError(t, err)
		})
	}
}

// TestMsgGetSigners returns the expected signer for each message type
func TestMsgGetSigners(t *testing.T) {
	addr := testAddr("signer")
	acc, err := sdk.AccAddressFromBech32(addr)
	require.NoError(t, err)

	msgs := []sdk.Msg{
		types.NewMsgCreatePool(addr, "uatom", "uusdt"),
		types.NewMsgSwap(addr, 1, "uatom", "uusdt", math.NewInt(1)),
		types.NewMsgAddLiquidity(addr, 1, "uatom", math.NewInt(1), "uusdt", math.NewInt(1)),
		types.NewMsgRemoveLiquidity(addr, 1, math.NewInt(1)),
		types.NewMsgTransferShares(addr, testAddr("recipient"), 1, math.NewInt(1)),
	}
	for _, msg := range msgs {
		signers := msg.(interface{ GetSigners() []sdk.AccAddress }).GetSigners()
		require.Len(t, signers, 1)
		require.True(t, acc.Equals(signers[0]))
	}
}
