package core

// errors.go – sentinel errors, grouped by the categories in spec.md §7.
//
// The reference implementation represents errors as a Rust #[error_code]
// enum checked by a `check_condition!` macro. The idiomatic Go rendering
// is a flat set of package-level sentinel errors checked with errors.Is,
// following the teacher's own convention in core/utility_functions.go
// (ErrInvalidSignature, ErrStop, ...). No error here is ever caught and
// discarded inside this package; every fallible call returns its error to
// its caller, up to the operation boundary.

import "errors"

// Authority
var (
	ErrUnauthorized   = errors.New("basket: unauthorized")
	ErrInvalidRole    = errors.New("basket: invalid role")
	ErrInvalidCranker = errors.New("basket: invalid cranker")
)

// State
var (
	ErrInvalidBasketStatus   = errors.New("basket: invalid basket status for this operation")
	ErrBasketNotRebalancing  = errors.New("basket: basket is not rebalancing")
	ErrCantMigrateToSameProg = errors.New("basket: cannot migrate to the same program")
)

// Identity
var (
	ErrInvalidPda                  = errors.New("basket: invalid PDA")
	ErrInvalidBump                 = errors.New("basket: invalid bump")
	ErrInvalidBasketTokenMint      = errors.New("basket: invalid basket token mint")
	ErrInvalidFeeRecipient         = errors.New("basket: invalid fee recipient token account")
	ErrInvalidTokenMint            = errors.New("basket: invalid token mint")
	ErrInvalidAuctionSellTokenMint = errors.New("basket: invalid auction sell token mint")
	ErrInvalidAuctionBuyTokenMint  = errors.New("basket: invalid auction buy token mint")
	ErrNewBasketNotOwnedByNewProg  = errors.New("basket: new basket not owned by the new program")
	ErrProgramNotInRegistrar       = errors.New("basket: program not in registrar")
	ErrInvalidSuccessorBasket      = errors.New("basket: successor basket discriminator invalid")
)

// Parameters
var (
	ErrInvalidAuctionLength            = errors.New("basket: invalid auction length")
	ErrInvalidMintFee                  = errors.New("basket: invalid mint fee")
	ErrTVLFeeTooHigh                   = errors.New("basket: tvl fee too high")
	ErrTVLFeeTooLow                    = errors.New("basket: tvl fee too low")
	ErrInvalidMandateLength            = errors.New("basket: invalid mandate length")
	ErrInvalidPrices                   = errors.New("basket: invalid prices")
	ErrInvalidRebalanceLimit           = errors.New("basket: invalid rebalance limit")
	ErrInvalidRebalanceLimitAllOrNone  = errors.New("basket: rebalance limit must be all-zero or all-positive")
	ErrRebalanceTTLExceeded            = errors.New("basket: rebalance ttl exceeded")
	ErrRebalanceAuctionWindowTooLong   = errors.New("basket: rebalance auction launcher window too long")
	ErrRebalanceNotOpenForDetailUpdate = errors.New("basket: rebalance not open for detail updates")
	ErrRebalanceTokenAlreadyAdded      = errors.New("basket: rebalance token already added")
	ErrRebalanceMintsLimitsMismatch    = errors.New("basket: mints and prices/limits length mismatch")
)

// Auction
var (
	ErrAuctionCannotBeOpened                               = errors.New("basket: auction cannot be opened")
	ErrAuctionCannotBeOpenedPermissionlesslyYet             = errors.New("basket: auction cannot be opened permissionlessly yet")
	ErrAuctionCannotBeOpenedPermissionlesslyWithDeferred    = errors.New("basket: auction cannot be opened permissionlessly with deferred price")
	ErrAuctionTimeout                                      = errors.New("basket: auction timed out")
	ErrAuctionCollision                                    = errors.New("basket: auction collision")
	ErrNoRunningAuctionFound                                = errors.New("basket: no running auction found")
	ErrSellTokenNotSurplus                                  = errors.New("basket: sell token not in surplus")
	ErrBuyTokenNotDeficit                                   = errors.New("basket: buy token not in deficit")
)

// Bidding
var (
	ErrInsufficientBid      = errors.New("basket: insufficient bid")
	ErrExcessiveBid         = errors.New("basket: excessive bid")
	ErrSlippageExceeded     = errors.New("basket: slippage exceeded")
	ErrBidInvariantViolated = errors.New("basket: bid invariant violated")
)

// Arithmetic
var ErrMathOverflow = errors.New("basket: math overflow")

// Tokens
var (
	ErrUnsupportedSPLToken        = errors.New("basket: unsupported token standard")
	ErrInvalidSenderTokenAccount  = errors.New("basket: invalid sender token account")
	ErrInvalidRecipientTokenAcct  = errors.New("basket: invalid recipient token account")
)

// Inventory
var (
	ErrBasketFull             = errors.New("basket: inventory is full")
	ErrInventoryEntryNotEmpty = errors.New("basket: inventory entry still has balance or pending amounts")
	ErrMintNotInInventory     = errors.New("basket: mint not present in basket inventory")
)
