package core

import "testing"

func mustBasket(t *testing.T, tvlFeeAnnual, mintFee string, auctionLength uint64) *Basket {
	t.Helper()
	b, err := InitBasket(AddressFromLabel("basket"), AddressFromLabel("mint"), 0,
		mustFromDecimalString(tvlFeeAnnual), mustFromDecimalString(mintFee), auctionLength, "mandate")
	if err != nil {
		t.Fatalf("InitBasket: %v", err)
	}
	return b
}

func TestInitBasketDefaults(t *testing.T) {
	b := mustBasket(t, "0.02", "0.001", MinAuctionLength)
	if b.Status != StatusInitializing {
		t.Fatalf("got status %s, want Initializing", b.Status)
	}
	if b.TVLFee.IsZero() {
		t.Fatalf("expected non-zero per-second TVL fee for a 2%% annual rate")
	}
}

func TestInitBasketRejectsOutOfRangeAuctionLength(t *testing.T) {
	_, err := InitBasket(AddressFromLabel("basket"), AddressFromLabel("mint"), 0,
		ZeroDecimal, ZeroDecimal, MinAuctionLength-1, "")
	if err != ErrInvalidAuctionLength {
		t.Fatalf("expected ErrInvalidAuctionLength, got %v", err)
	}
}

func TestInitBasketRejectsExcessiveMintFee(t *testing.T) {
	tooHigh, _ := MaxMintFee.Add(FromScaledU64(1))
	_, err := InitBasket(AddressFromLabel("basket"), AddressFromLabel("mint"), 0,
		ZeroDecimal, tooHigh, MinAuctionLength, "")
	if err != ErrInvalidMintFee {
		t.Fatalf("expected ErrInvalidMintFee, got %v", err)
	}
}

func TestLifecycleTransitions(t *testing.T) {
	b := mustBasket(t, "0", "0", MinAuctionLength)
	if err := b.FinaliseInitialisation(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Status != StatusInitialized {
		t.Fatalf("got %s, want Initialized", b.Status)
	}
	if err := b.Kill(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Status != StatusKilled {
		t.Fatalf("got %s, want Killed", b.Status)
	}
	if err := b.BeginMigration(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Status != StatusMigrating {
		t.Fatalf("got %s, want Migrating", b.Status)
	}
}

func TestKillRequiresInitialized(t *testing.T) {
	b := mustBasket(t, "0", "0", MinAuctionLength)
	if err := b.Kill(); err != ErrInvalidBasketStatus {
		t.Fatalf("expected ErrInvalidBasketStatus killing an Initializing basket, got %v", err)
	}
}

func TestSetTVLFeeZeroAnnualStaysZero(t *testing.T) {
	b := mustBasket(t, "0", "0", MinAuctionLength)
	if !b.TVLFee.IsZero() {
		t.Fatalf("expected zero per-second fee for zero annual fee")
	}
}

func TestSetTVLFeeRejectsTooHigh(t *testing.T) {
	b := mustBasket(t, "0", "0", MinAuctionLength)
	tooHigh, _ := MaxTVLFee.Add(FromScaledU64(1))
	if err := b.SetTVLFee(tooHigh); err != ErrTVLFeeTooHigh {
		t.Fatalf("expected ErrTVLFeeTooHigh, got %v", err)
	}
}

func TestValidateRoleAndStatus(t *testing.T) {
	b := mustBasket(t, "0", "0", MinAuctionLength)
	if err := b.Validate([]BasketStatus{StatusInitializing}, []Role{RoleOwner}, uint8(RoleOwner)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.Validate(nil, []Role{RoleOwner}, 0); err != ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if err := b.Validate([]BasketStatus{StatusInitialized}, nil, 0); err != ErrInvalidBasketStatus {
		t.Fatalf("expected ErrInvalidBasketStatus, got %v", err)
	}
}

func TestNextDistributionMonotonic(t *testing.T) {
	b := mustBasket(t, "0", "0", MinAuctionLength)
	first := b.NextDistribution()
	second := b.NextDistribution()
	if first != 0 || second != 1 {
		t.Fatalf("got %d, %d, want 0, 1", first, second)
	}
}
