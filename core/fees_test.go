package core

import "testing"

func daoConfig() DAOFeeConfig {
	return DAOFeeConfig{
		Numerator:   FromPlainU64(1),
		Denominator: FromPlainU64(2),
		Floor:       mustFromDecimalString("0.0001"),
	}
}

func TestPokeNoOpBeforeDayBoundary(t *testing.T) {
	b := mustBasket(t, "0.05", "0", MinAuctionLength)
	b.LastPoke = 0
	supply, _ := FromTokenAmount(1_000_000)
	if err := b.Poke(DayInSeconds-1, supply, daoConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.LastPoke != 0 {
		t.Fatalf("expected no advance before a day boundary, got %d", b.LastPoke)
	}
	if !b.DAOPendingFeeShares.IsZero() {
		t.Fatalf("expected no fee accrual before a day boundary")
	}
}

func TestPokeAccruesFeeAcrossOneDay(t *testing.T) {
	b := mustBasket(t, "0.05", "0", MinAuctionLength)
	b.LastPoke = 0
	supply, _ := FromTokenAmount(1_000_000)
	if err := b.Poke(DayInSeconds, supply, daoConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.LastPoke != DayInSeconds {
		t.Fatalf("got LastPoke=%d, want %d", b.LastPoke, DayInSeconds)
	}
	total, err := b.GetPendingFeeShares()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total.IsZero() {
		t.Fatalf("expected non-zero fee accrual over a day at 5%% annual")
	}
}

func TestPokeZeroSupplyNoAccrual(t *testing.T) {
	b := mustBasket(t, "0.05", "0", MinAuctionLength)
	if err := b.Poke(DayInSeconds, ZeroDecimal, daoConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !b.DAOPendingFeeShares.IsZero() {
		t.Fatalf("expected no accrual against zero supply")
	}
	if b.LastPoke != DayInSeconds {
		t.Fatalf("LastPoke should still advance, got %d", b.LastPoke)
	}
}

func TestCalculateFeesForMintingZeroMintFee(t *testing.T) {
	b := mustBasket(t, "0", "0", MinAuctionLength)
	shares, _ := FromTokenAmount(1000)
	total, err := b.CalculateFeesForMinting(shares, daoConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !total.IsZero() {
		t.Fatalf("expected zero total fee when mint fee is zero")
	}
}

func TestCalculateFeesForMintingSplitsDaoAndRecipients(t *testing.T) {
	b := mustBasket(t, "0", "0.01", MinAuctionLength)
	shares, _ := FromTokenAmount(1_000_000)
	total, err := b.CalculateFeesForMinting(shares, daoConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total.IsZero() {
		t.Fatalf("expected non-zero total fee for a 1%% mint fee")
	}
	if b.DAOPendingFeeShares.IsZero() {
		t.Fatalf("expected a non-zero DAO share")
	}
	if b.FeeRecipientsPendingFeeShares.IsZero() {
		t.Fatalf("expected a non-zero recipient share")
	}
	sum, err := b.DAOPendingFeeShares.Add(b.FeeRecipientsPendingFeeShares)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sum.Equal(total) {
		t.Fatalf("dao + recipient shares (%s) should equal total fee (%s)", sum.String(), total.String())
	}
}

func TestGetTotalSupplyIncludesPending(t *testing.T) {
	b := mustBasket(t, "0", "0.01", MinAuctionLength)
	shares, _ := FromTokenAmount(1_000_000)
	if _, err := b.CalculateFeesForMinting(shares, daoConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	circulating, _ := FromTokenAmount(500_000)
	total, err := b.GetTotalSupply(circulating)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !total.GreaterThan(circulating) {
		t.Fatalf("expected fully-diluted supply to exceed circulating supply")
	}
}
