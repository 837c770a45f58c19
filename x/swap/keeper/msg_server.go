package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/d49976110/simpleswap/x/swap/types"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the swap MsgServer interface
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

// CreatePool handles registration of a new empty pool
func (ms msgServer) CreatePool(goCtx context.Context, msg *types.MsgCreatePool) (*types.MsgCreatePoolResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("CreatePool: validate: %w", err)
	}

	creator, err := sdk.AccAddressFromBech32(msg.Creator)
	if err != nil {
		return nil, fmt.Errorf("CreatePool: invalid creator address: %w", err)
	}

	pool, err := ms.Keeper.CreatePool(goCtx, creator, msg.TokenA, msg.TokenB)
	if err != nil {
		return nil, fmt.Errorf("CreatePool: %w", err)
	}

	return &types.MsgCreatePoolResponse{
		PoolId: pool.Id,
	}, nil
}

// Swap handles token swaps
func (ms msgServer) Swap(goCtx context.Context, msg *types.MsgSwap) (*types.MsgSwapResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("Swap: validate: %w", err)
	}

	trader, err := sdk.AccAddressFromBech32(msg.Trader)
	if err != nil {
		return nil, fmt.Errorf("Swap: invalid trader address: %w", err)
	}

	amountOut, err := ms.Keeper.Swap(goCtx, trader, msg.PoolId, msg.TokenIn, msg.TokenOut, msg.AmountIn)
	if err != nil {
		return nil, fmt.Errorf("Swap: %w", err)
	}

	return &types.MsgSwapResponse{
		AmountOut: amountOut,
	}, nil
}

// AddLiquidity handles deposits into an existing pool
func (ms msgServer) AddLiquidity(goCtx context.Context, msg *types.MsgAddLiquidity) (*types.MsgAddLiquidityResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("AddLiquidity: validate: %w", err)
	}

	provider, err := sdk.AccAddressFromBech32(msg.Provider)
	if err != nil {
		return nil, fmt.Errorf("AddLiquidity: invalid provider address: %w", err)
	}

	usedA, usedB, shares, err := ms.Keeper.AddLiquidity(goCtx, provider, msg.PoolId, msg.TokenA, msg.AmountA, msg.TokenB, msg.AmountB)
	if err != nil {
		return nil, fmt.Errorf("AddLiquidity: %w", err)
	}

	return &types.MsgAddLiquidityResponse{
		AmountA: usedA,
		AmountB: usedB,
		Shares:  shares,
	}, nil
}

// RemoveLiquidity handles withdrawals from a pool
func (ms msgServer) RemoveLiquidity(goCtx context.Context, msg *types.MsgRemoveLiquidity) (*types.MsgRemoveLiquidityResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("RemoveLiquidity: validate: %w", err)
	}

	provider, err := sdk.AccAddressFromBech32(msg.Provider)
	if err != nil {
		return nil, fmt.Errorf("RemoveLiquidity: invalid provider address: %w", err)
	}

	amountA, amountB, err := ms.Keeper.RemoveLiquidity(goCtx, provider, msg.PoolId, msg.Shares)
	if err != nil {
		return nil, fmt.Errorf("RemoveLiquidity: %w", err)
	}

	return &types.MsgRemoveLiquidityResponse{
		AmountA: amountA,
		AmountB: amountB,
	}, nil
}

// TransferShares handles moving a liquidity claim between holders
func (ms msgServer) TransferShares(goCtx context.Context, msg *types.MsgTransferShares) (*types.MsgTransferSharesResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("TransferShares: validate: %w", err)
	}

	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return nil, fmt.Errorf("TransferShares: invalid sender address: %w", err)
	}
	recipient, err := sdk.AccAddressFromBech32(msg.Recipient)
	if err != nil {
		return nil, fmt.Errorf("TransferShares: invalid recipient address: %w", err)
	}

	if err := ms.Keeper.TransferShares(goCtx, sender, recipient, msg.PoolId, msg.Shares); err != nil {
		return nil, fmt.Errorf("TransferShares: %w", err)
	}

	return &types.MsgTransferSharesResponse{}, nil
}
