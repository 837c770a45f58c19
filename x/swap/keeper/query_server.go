package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/d49976110/simpleswap/x/swap/types"
)

type queryServer struct {
	Keeper
}

// NewQueryServerImpl returns an implementation of the swap QueryServer interface
func NewQueryServerImpl(keeper Keeper) types.QueryServer {
	return &queryServer{Keeper: keeper}
}

var _ types.QueryServer = queryServer{}

// Params returns the module parameters
func (qs queryServer) Params(goCtx context.Context, req *types.QueryParamsRequest) (*types.QueryParamsResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	return &types.QueryParamsResponse{
		Params: qs.Keeper.GetParams(goCtx),
	}, nil
}

// Pool returns a specific pool by ID
func (qs queryServer) Pool(goCtx context.Context, req *types.QueryPoolRequest) (*types.QueryPoolResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	pool, err := qs.Keeper.GetPool(goCtx, req.PoolId)
	if err != nil {
		return nil, fmt.Errorf("Pool: get pool %d: %w", req.PoolId, err)
	}

	return &types.QueryPoolResponse{
		Pool: *pool,
	}, nil
}

// Pools returns all registered pools
func (qs queryServer) Pools(goCtx context.Context, req *types.QueryPoolsRequest) (*types.QueryPoolsResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	pools, err := qs.Keeper.GetAllPools(goCtx)
	if err != nil {
		return nil, fmt.Errorf("Pools: %w", err)
	}

	return &types.QueryPoolsResponse{
		Pools: pools,
	}, nil
}

// Reserves returns the current reserves of a pool
func (qs queryServer) Reserves(goCtx context.Context, req *types.QueryReservesRequest) (*types.QueryReservesResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	pool, err := qs.Keeper.GetPool(goCtx, req.PoolId)
	if err != nil {
		return nil, fmt.Errorf("Reserves: get pool %d: %w", req.PoolId, err)
	}

	return &types.QueryReservesResponse{
		TokenA:   pool.TokenA,
		ReserveA: pool.ReserveA,
		TokenB:   pool.TokenB,
		ReserveB: pool.ReserveB,
	}, nil
}

// ShareBalance returns one holder's shares in a pool
func (qs queryServer) ShareBalance(goCtx context.Context, req *types.QueryShareBalanceRequest) (*types.QueryShareBalanceResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	holder, err := sdk.AccAddressFromBech32(req.Address)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("invalid holder address: %v", err)
	}

	pool, err := qs.Keeper.GetPool(goCtx, req.PoolId)
	if err != nil {
		return nil, fmt.Errorf("ShareBalance: get pool %d: %w", req.PoolId, err)
	}

	shares, err := qs.Keeper.GetShares(goCtx, req.PoolId, holder)
	if err != nil {
		return nil, fmt.Errorf("ShareBalance: %w", err)
	}

	return &types.QueryShareBalanceResponse{
		Shares:      shares,
		TotalShares: pool.TotalShares,
	}, nil
}

// SimulateSwap quotes a swap without executing it
func (qs queryServer) SimulateSwap(goCtx context.Context, req *types.QuerySimulateSwapRequest) (*types.QuerySimulateSwapResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	amountOut, err := qs.Keeper.SimulateSwap(goCtx, req.PoolId, req.TokenIn, req.TokenOut, req.AmountIn)
	if err != nil {
		return nil, fmt.Errorf("SimulateSwap: %w", err)
	}

	return &types.QuerySimulateSwapResponse{
		AmountOut: amountOut,
	}, nil
}

// SpotPrice returns the instantaneous reserve ratio of a pool
func (qs queryServer) SpotPrice(goCtx context.Context, req *types.QuerySpotPriceRequest) (*types.QuerySpotPriceResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	price, err := qs.Keeper.GetSpotPrice(goCtx, req.PoolId, req.TokenIn, req.TokenOut)
	if err != nil {
		return nil, fmt.Errorf("SpotPrice: %w", err)
	}

	return &types.QuerySpotPriceResponse{
		Price: price,
	}, nil
}
