package types

import (
	"context"

	"cosmossdk.io/math"
)

// QueryServer is the server API for the swap Query service.
type QueryServer interface {
	// Params returns the module parameters.
	Params(context.Context, *QueryParamsRequest) (*QueryParamsResponse, error)
	// Pool returns a single pool by id.
	Pool(context.Context, *QueryPoolRequest) (*QueryPoolResponse, error)
	// Pools returns every registered pool.
	Pools(context.Context, *QueryPoolsRequest) (*QueryPoolsResponse, error)
	// Reserves returns the current reserves of a pool.
	Reserves(context.Context, *QueryReservesRequest) (*QueryReservesResponse, error)
	// ShareBalance returns one holder's shares in a pool.
	ShareBalance(context.Context, *QueryShareBalanceRequest) (*QueryShareBalanceResponse, error)
	// SimulateSwap quotes a swap without executing it.
	SimulateSwap(context.Context, *QuerySimulateSwapRequest) (*QuerySimulateSwapResponse, error)
	// SpotPrice returns the instantaneous reserve ratio of a pool.
	SpotPrice(context.Context, *QuerySpotPriceRequest) (*QuerySpotPriceResponse, error)
}

// QueryParamsRequest is the request type for the Query/Params RPC method.
type QueryParamsRequest struct{}

// QueryParamsResponse is the response type for the Query/Params RPC method.
type QueryParamsResponse struct {
	Params Params `json:"params"`
}

// QueryPoolRequest is the request type for the Query/Pool RPC method.
type QueryPoolRequest struct {
	PoolId uint64 `json:"pool_id"`
}

// QueryPoolResponse is the response type for the Query/Pool RPC method.
type QueryPoolResponse struct {
	Pool Pool `json:"pool"`
}

// QueryPoolsRequest is the request type for the Query/Pools RPC method.
type QueryPoolsRequest struct{}

// QueryPoolsResponse is the response type for the Query/Pools RPC method.
type QueryPoolsResponse struct {
	Pools []Pool `json:"pools"`
}

// QueryReservesRequest is the request type for the Query/Reserves RPC method.
type QueryReservesRequest struct {
	PoolId uint64 `json:"pool_id"`
}

// QueryReservesResponse is the response type for the Query/Reserves RPC
// method.
type QueryReservesResponse struct {
	TokenA   string   `json:"token_a"`
	ReserveA math.Int `json:"reserve_a"`
	TokenB   string   `json:"token_b"`
	ReserveB math.Int `json:"reserve_b"`
}

// QueryShareBalanceRequest is the request type for the Query/ShareBalance RPC
// method.
type QueryShareBalanceRequest struct {
	PoolId  uint64 `json:"pool_id"`
	Address string `json:"address"`
}

// QueryShareBalanceResponse is the response type for the Query/ShareBalance
// RPC method.
type QueryShareBalanceResponse struct {
	Shares      math.Int `json:"shares"`
	TotalShares math.Int `json:"total_shares"`
}

// QuerySimulateSwapRequest is the request type for the Query/SimulateSwap RPC
// method.
type QuerySimulateSwapRequest struct {
	PoolId   uint64   `json:"pool_id"`
	TokenIn  string   `json:"token_in"`
	TokenOut string   `json:"token_out"`
	AmountIn math.Int `json:"amount_in"`
}

// QuerySimulateSwapResponse is the response type for the Query/SimulateSwap
// RPC method.
type QuerySimulateSwapResponse struct {
	AmountOut math.Int `json:"amount_out"`
}

// QuerySpotPriceRequest is the request type for the Query/SpotPrice RPC
// method. The price is quoted as units of TokenOut per unit of TokenIn.
type QuerySpotPriceRequest struct {
	PoolId   uint64 `json:"pool_id"`
	TokenIn  string `json:"token_in"`
	TokenOut string `json:"token_out"`
}

// QuerySpotPriceResponse is the response type for the Query/SpotPrice RPC
// method.
type QuerySpotPriceResponse struct {
	Price math.LegacyDec `json:"price"`
}
