package core

// rebalance.go – C6: rebalance descriptors and the window during which
// per-token limits/prices may be supplied. Grounded on
// programs/infinix/src/utils/accounts/rebalance.rs's `clear`,
// `start_rebalance`, `add_rebalance_details`, `open_for_detail_update`,
// `rebalance_ready`, and `get_token_details_pair(_mut)`.

// RebalanceLimits bounds how far a rebalance is allowed to move a token's
// weight, per spec.md §4.4 (all three must be zero together, or all
// positive together — P4).
type RebalanceLimits struct {
	Low    Decimal
	Spot   Decimal
	High   Decimal
}

func (l RebalanceLimits) allZero() bool {
	return l.Low.IsZero() && l.Spot.IsZero() && l.High.IsZero()
}

func (l RebalanceLimits) allPositive() bool {
	return !l.Low.IsZero() && !l.Spot.IsZero() && !l.High.IsZero()
}

// TokenDetail is one token's rebalance parameters: its reference prices
// (used to detect a price-deferred entry, where PriceLow/PriceHigh are
// left zero for permissionless discovery) and its weight limits.
type TokenDetail struct {
	Mint      Address
	PriceLow  Decimal
	PriceHigh Decimal
	Limits    RebalanceLimits
}

func (t TokenDetail) priceDeferred() bool {
	return t.PriceLow.IsZero() && t.PriceHigh.IsZero()
}

// Rebalance is the basket's single in-flight rebalance descriptor
// (spec.md §3). Only one rebalance may be open at a time; Clear resets it
// to the empty zero-value so a new one can start.
type Rebalance struct {
	Nonce         uint64 // strictly monotonic per basket (P3)
	Details       [MaxRebalanceTokens]TokenDetail
	StartedAt     uint64
	RestrictedTTL uint64 // seconds after StartedAt during which only RoleAuctionLauncher may open an auction
	TTL           uint64 // seconds after StartedAt after which the rebalance can no longer produce new auctions
	AvailableAt   uint64 // StartedAt + RestrictedTTL, recorded for open_for_detail_update checks
	// AllRebalanceDetailsAdded gates auction opening (spec.md §4.4/§4.5:
	// "rebalance ready (all_rebalance_details_added == true)"). It starts
	// false on every StartRebalance and is set by the allAdded argument of
	// AddRebalanceDetails; once true, AddRebalanceDetails refuses further
	// additions until the next StartRebalance reopens the window.
	AllRebalanceDetailsAdded bool
	PriceDeferred            bool // true if any detail entry has PriceLow == PriceHigh == 0
	NextAuctionID uint64
	Open          bool
}

// Clear resets the rebalance to its empty state, per rebalance.rs's
// `clear`. Called once a rebalance's auction window has fully elapsed or
// been superseded.
func (r *Rebalance) Clear() {
	*r = Rebalance{}
}

// count returns how many of the fixed Details slots are populated.
func (r *Rebalance) count() int {
	n := 0
	for i := range r.Details {
		if !r.Details[i].Mint.IsZero() {
			n++
		}
	}
	return n
}

// StartRebalance opens a fresh rebalance window, per spec.md §4.4. ttl
// bounds how long the whole rebalance may run; restrictedTTL (<= ttl)
// bounds how long only RoleAuctionLauncher may open auctions before it
// becomes permissionless.
func (r *Rebalance) StartRebalance(now, ttl, restrictedTTL uint64) error {
	if ttl == 0 || ttl > MaxTTL {
		return ErrRebalanceTTLExceeded
	}
	if restrictedTTL > ttl {
		return ErrRebalanceAuctionWindowTooLong
	}
	nextNonce := r.Nonce + 1
	if nextNonce == 0 {
		return ErrMathOverflow
	}
	r.Clear()
	r.Nonce = nextNonce
	r.StartedAt = now
	r.TTL = ttl
	r.RestrictedTTL = restrictedTTL
	r.AvailableAt = now + restrictedTTL
	r.Open = true
	return nil
}

// AddRebalanceDetails appends one token's rebalance parameters, per
// rebalance.rs's `add_rebalance_details`. All entries in a rebalance must
// agree on whether limits are all-zero or all-positive (P4), and a mint
// may not be added twice. Per spec.md §4.4, this fails unless
// AllRebalanceDetailsAdded is still false (the descriptor is still open);
// allAdded is the caller's declaration of whether this is the final
// detail in the batch, stored as the new value of
// AllRebalanceDetailsAdded so Ready (and therefore auction opening) stays
// gated until a caller passes allAdded=true.
func (r *Rebalance) AddRebalanceDetails(detail TokenDetail, allAdded bool) error {
	if !r.Open || r.AllRebalanceDetailsAdded {
		return ErrRebalanceNotOpenForDetailUpdate
	}
	if !detail.Limits.allZero() && !detail.Limits.allPositive() {
		return ErrInvalidRebalanceLimitAllOrNone
	}
	n := r.count()
	if n >= MaxRebalanceTokens {
		return ErrInvalidRebalanceLimit
	}
	for i := 0; i < n; i++ {
		if r.Details[i].Mint == detail.Mint {
			return ErrRebalanceTokenAlreadyAdded
		}
		thisAllZero := r.Details[i].Limits.allZero()
		wantAllZero := detail.Limits.allZero()
		if thisAllZero != wantAllZero {
			return ErrInvalidRebalanceLimitAllOrNone
		}
	}
	if detail.priceDeferred() {
		r.PriceDeferred = true
	}
	r.Details[n] = detail
	r.AllRebalanceDetailsAdded = allAdded
	return nil
}

// OpenForDetailUpdate reports whether new detail entries may still be
// added at time now: only during the restricted window, and only before
// any auction has been launched from this rebalance (NextAuctionID == 0).
func (r *Rebalance) OpenForDetailUpdate(now uint64) bool {
	return r.Open && r.NextAuctionID == 0 && now < r.AvailableAt
}

// Ready reports whether the rebalance has had all of its token details
// added, has at least one, and has not exceeded its TTL at time now, per
// rebalance.rs's `rebalance_ready` and spec.md §4.5 step 1 ("rebalance
// ready (all_rebalance_details_added == true)").
func (r *Rebalance) Ready(now uint64) bool {
	if !r.Open || !r.AllRebalanceDetailsAdded {
		return false
	}
	if now > r.StartedAt+r.TTL {
		return false
	}
	return r.count() > 0
}

// permissionless reports whether, at time now, any caller (not just
// RoleAuctionLauncher) may open an auction from this rebalance.
func (r *Rebalance) permissionless(now uint64) bool {
	return now >= r.AvailableAt
}

// GetTokenDetail returns the detail entry for mint, or false if absent.
func (r *Rebalance) GetTokenDetail(mint Address) (TokenDetail, bool) {
	for i := 0; i < r.count(); i++ {
		if r.Details[i].Mint == mint {
			return r.Details[i], true
		}
	}
	return TokenDetail{}, false
}

// GetTokenDetailPair returns both the sell-side and buy-side detail for
// an auction, per rebalance.rs's `get_token_details_pair`. Either side
// missing is reported via ok=false, which callers surface as
// ErrInvalidAuctionSellTokenMint / ErrInvalidAuctionBuyTokenMint.
func (r *Rebalance) GetTokenDetailPair(sell, buy Address) (sellDetail, buyDetail TokenDetail, ok bool) {
	sellDetail, sellOK := r.GetTokenDetail(sell)
	buyDetail, buyOK := r.GetTokenDetail(buy)
	return sellDetail, buyDetail, sellOK && buyOK
}

// NextAuction allocates and returns the next auction id for this
// rebalance, per rebalance.rs's `get_next_auction_id`.
func (r *Rebalance) NextAuction() uint64 {
	id := r.NextAuctionID
	r.NextAuctionID++
	return id
}
