package core

import "testing"

func TestStartRebalanceIncrementsNonceAndSetsWindow(t *testing.T) {
	r := &Rebalance{}
	if err := r.StartRebalance(1000, 3600, 600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Nonce != 1 {
		t.Fatalf("got nonce %d, want 1", r.Nonce)
	}
	if !r.Open {
		t.Fatalf("expected rebalance to be open")
	}
	if r.AvailableAt != 1600 {
		t.Fatalf("got AvailableAt %d, want 1600", r.AvailableAt)
	}

	if err := r.StartRebalance(5000, 100, 50); err != nil {
		t.Fatalf("unexpected error restarting: %v", err)
	}
	if r.Nonce != 2 {
		t.Fatalf("got nonce %d, want 2 after restart", r.Nonce)
	}
}

func TestStartRebalanceRejectsExcessiveTTL(t *testing.T) {
	r := &Rebalance{}
	if err := r.StartRebalance(0, MaxTTL+1, 0); err != ErrRebalanceTTLExceeded {
		t.Fatalf("expected ErrRebalanceTTLExceeded, got %v", err)
	}
	if err := r.StartRebalance(0, 0, 0); err != ErrRebalanceTTLExceeded {
		t.Fatalf("expected ErrRebalanceTTLExceeded for zero ttl, got %v", err)
	}
}

func TestStartRebalanceRejectsRestrictedLongerThanTTL(t *testing.T) {
	r := &Rebalance{}
	if err := r.StartRebalance(0, 100, 200); err != ErrRebalanceAuctionWindowTooLong {
		t.Fatalf("expected ErrRebalanceAuctionWindowTooLong, got %v", err)
	}
}

func TestAddRebalanceDetailsRequiresOpenWindow(t *testing.T) {
	r := &Rebalance{}
	detail := TokenDetail{Mint: AddressFromLabel("usdc")}
	if err := r.AddRebalanceDetails(detail, false); err != ErrRebalanceNotOpenForDetailUpdate {
		t.Fatalf("expected ErrRebalanceNotOpenForDetailUpdate, got %v", err)
	}
}

func TestAddRebalanceDetailsRejectsMixedLimits(t *testing.T) {
	r := &Rebalance{}
	r.StartRebalance(0, 100, 50)
	zeroLimits := TokenDetail{Mint: AddressFromLabel("a")}
	positiveLimits := TokenDetail{
		Mint:   AddressFromLabel("b"),
		Limits: RebalanceLimits{Low: mustFromDecimalString("0.1"), Spot: mustFromDecimalString("0.2"), High: mustFromDecimalString("0.3")},
	}
	if err := r.AddRebalanceDetails(zeroLimits, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.AddRebalanceDetails(positiveLimits, false); err != ErrInvalidRebalanceLimitAllOrNone {
		t.Fatalf("expected ErrInvalidRebalanceLimitAllOrNone, got %v", err)
	}
}

func TestAddRebalanceDetailsRejectsDuplicateMint(t *testing.T) {
	r := &Rebalance{}
	r.StartRebalance(0, 100, 50)
	detail := TokenDetail{Mint: AddressFromLabel("usdc")}
	if err := r.AddRebalanceDetails(detail, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.AddRebalanceDetails(detail, false); err != ErrRebalanceTokenAlreadyAdded {
		t.Fatalf("expected ErrRebalanceTokenAlreadyAdded, got %v", err)
	}
}

func TestAddRebalanceDetailsRejectsOnceAllDetailsAdded(t *testing.T) {
	r := &Rebalance{}
	r.StartRebalance(0, 100, 50)
	first := TokenDetail{Mint: AddressFromLabel("usdc")}
	if err := r.AddRebalanceDetails(first, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.AllRebalanceDetailsAdded {
		t.Fatalf("expected AllRebalanceDetailsAdded to be set")
	}
	second := TokenDetail{Mint: AddressFromLabel("dai")}
	if err := r.AddRebalanceDetails(second, false); err != ErrRebalanceNotOpenForDetailUpdate {
		t.Fatalf("expected ErrRebalanceNotOpenForDetailUpdate once closed, got %v", err)
	}
}

func TestAddRebalanceDetailsMarksPriceDeferred(t *testing.T) {
	r := &Rebalance{}
	r.StartRebalance(0, 100, 50)
	detail := TokenDetail{Mint: AddressFromLabel("usdc")}
	if err := r.AddRebalanceDetails(detail, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.PriceDeferred {
		t.Fatalf("expected PriceDeferred to be set for a zero-price entry")
	}
}

func TestOpenForDetailUpdateWindow(t *testing.T) {
	r := &Rebalance{}
	r.StartRebalance(1000, 3600, 600)
	if !r.OpenForDetailUpdate(1000) {
		t.Fatalf("expected open for detail update at start")
	}
	if r.OpenForDetailUpdate(1600) {
		t.Fatalf("expected closed for detail update once restricted window elapses")
	}
	r.NextAuctionID = 1
	if r.OpenForDetailUpdate(1000) {
		t.Fatalf("expected closed once an auction has been launched")
	}
}

func TestReadyRequiresDetailsAndUnexpiredTTL(t *testing.T) {
	r := &Rebalance{}
	r.StartRebalance(1000, 100, 50)
	if r.Ready(1000) {
		t.Fatalf("expected not ready with zero details")
	}
	r.AddRebalanceDetails(TokenDetail{Mint: AddressFromLabel("usdc")}, false)
	if r.Ready(1050) {
		t.Fatalf("expected not ready before all_rebalance_details_added is set")
	}
	r.AddRebalanceDetails(TokenDetail{Mint: AddressFromLabel("dai")}, true)
	if !r.Ready(1050) {
		t.Fatalf("expected ready within TTL once all_rebalance_details_added is set")
	}
	if r.Ready(1200) {
		t.Fatalf("expected not ready past TTL")
	}
}

func TestPermissionlessWindow(t *testing.T) {
	r := &Rebalance{}
	r.StartRebalance(1000, 3600, 600)
	if r.permissionless(1599) {
		t.Fatalf("expected restricted before AvailableAt")
	}
	if !r.permissionless(1600) {
		t.Fatalf("expected permissionless at AvailableAt")
	}
}

func TestGetTokenDetailPair(t *testing.T) {
	r := &Rebalance{}
	r.StartRebalance(0, 100, 50)
	sell := AddressFromLabel("sell")
	buy := AddressFromLabel("buy")
	r.AddRebalanceDetails(TokenDetail{Mint: sell}, false)
	_, _, ok := r.GetTokenDetailPair(sell, buy)
	if ok {
		t.Fatalf("expected missing buy-side detail to report ok=false")
	}
	r.AddRebalanceDetails(TokenDetail{Mint: buy}, true)
	_, _, ok = r.GetTokenDetailPair(sell, buy)
	if !ok {
		t.Fatalf("expected both sides present to report ok=true")
	}
}

func TestNextAuctionIncrements(t *testing.T) {
	r := &Rebalance{}
	first := r.NextAuction()
	second := r.NextAuction()
	if first != 0 || second != 1 {
		t.Fatalf("got %d, %d, want 0, 1", first, second)
	}
}
