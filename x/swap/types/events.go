package types

// Event types emitted by the swap module, one per successful mutating
// operation.
const (
	EventTypePoolCreated     = "pool_created"
	EventTypeSwap            = "swap"
	EventTypeAddLiquidity    = "add_liquidity"
	EventTypeRemoveLiquidity = "remove_liquidity"
	EventTypeTransferShares  = "transfer_shares"
)

// Event attribute keys
const (
	AttributeKeyPoolID    = "pool_id"
	AttributeKeyCreator   = "creator"
	AttributeKeyTrader    = "trader"
	AttributeKeyProvider  = "provider"
	AttributeKeyRecipient = "recipient"
	AttributeKeyTokenA    = "token_a"
	AttributeKeyTokenB    = "token_b"
	AttributeKeyTokenIn   = "token_in"
	AttributeKeyTokenOut  = "token_out"
	AttributeKeyAmountA   = "amount_a"
	AttributeKeyAmountB   = "amount_b"
	AttributeKeyAmountIn  = "amount_in"
	AttributeKeyAmountOut = "amount_out"
	AttributeKeyShares    = "shares"
)
