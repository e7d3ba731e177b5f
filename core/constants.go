package core

// constants.go – policy bounds and fixed scale factors shared by every
// module in this package. Values mirror the bounds documented in the
// specification; implementers may retune them within the documented
// ranges without touching the formulas that consume them.

const (
	// YearInSeconds anchors the annual-to-per-second fee rate inversion.
	YearInSeconds uint64 = 31_536_000
	// DayInSeconds is the poke truncation boundary.
	DayInSeconds uint64 = 86_400

	// MaxPaddedStringLength bounds the basket mandate string.
	MaxPaddedStringLength = 128

	// MaxBasketTokens bounds the basket inventory array.
	MaxBasketTokens = 16
	// MaxRebalanceTokens bounds the rebalance descriptor's token array.
	MaxRebalanceTokens = 16
	// MaxFeeRecipients bounds a fee-distribution record's recipient table.
	MaxFeeRecipients = 64

	// MinAuctionLength and MaxAuctionLength bound a basket's auction_length.
	MinAuctionLength uint64 = 60
	MaxAuctionLength uint64 = 604_800 // one week

	// MaxTTL bounds a rebalance's time-to-live.
	MaxTTL uint64 = 604_800 // one week
	// RestrictedAuctionBuffer is the minimum gap between a pair's previous
	// auction end and a new auction for the same pair within a nonce.
	RestrictedAuctionBuffer uint64 = 900 // 15 minutes
)

// MaxFeeRecipientsPortion is the denominator against which each fee
// recipient's stored portion is measured; portions for a distribution sum
// to this value.
var MaxFeeRecipientsPortion = FromPlainU64(1)

// Scaled policy caps, expressed as D18 fractions (1.0 == D18Scale).
var (
	// MaxTVLFee caps the annualised TVL fee a basket can configure.
	MaxTVLFee = mustFromDecimalString("0.10") // 10% / year
	// MaxMintFee caps the mint fee fraction.
	MaxMintFee = mustFromDecimalString("0.05") // 5%
	// MaxRate bounds a rebalance token's limits (spot/low/high), expressed
	// as a multiple of basket supply.
	MaxRate = mustFromDecimalString("100")
	// MaxTokenPrice bounds an individual token's rebalance price band.
	MaxTokenPrice = mustFromDecimalString("1000000000")
	// MaxTokenPriceRange bounds the high/low ratio of a token's price band.
	MaxTokenPriceRange = mustFromDecimalString("1000")
)
