package core

import (
	"context"
	"errors"
	"testing"
)

func flatAuction() *Auction {
	return &Auction{
		ID:         1,
		Start:      0,
		End:        1000,
		PriceStart: mustFromDecimalString("2"),
		PriceEnd:   mustFromDecimalString("2"),
		SellLimit:  1000,
		BuyLimit:   2000,
	}
}

func TestPlaceBidRejectsZeroSell(t *testing.T) {
	a := flatAuction()
	if _, err := a.PlaceBid(0, 0, 10_000, 0); err != ErrInsufficientBid {
		t.Fatalf("expected ErrInsufficientBid, got %v", err)
	}
}

func TestPlaceBidRejectsExceedingSellLimit(t *testing.T) {
	a := flatAuction()
	if _, err := a.PlaceBid(0, a.SellLimit+1, 10_000, 0); err != ErrExcessiveBid {
		t.Fatalf("expected ErrExcessiveBid, got %v", err)
	}
}

func TestPlaceBidRejectsSlippage(t *testing.T) {
	a := flatAuction()
	// At price 2, 100 sell -> 200 buy; require min 300.
	if _, err := a.PlaceBid(0, 100, 10_000, 300); err != ErrSlippageExceeded {
		t.Fatalf("expected ErrSlippageExceeded, got %v", err)
	}
}

func TestPlaceBidRejectsAboveMax(t *testing.T) {
	a := flatAuction()
	if _, err := a.PlaceBid(0, 100, 100, 0); err != ErrExcessiveBid {
		t.Fatalf("expected ErrExcessiveBid, got %v", err)
	}
}

func TestPlaceBidRejectsAboveBuyLimit(t *testing.T) {
	a := flatAuction()
	a.BuyLimit = 50
	if _, err := a.PlaceBid(0, 100, 10_000, 0); err != ErrExcessiveBid {
		t.Fatalf("expected ErrExcessiveBid, got %v", err)
	}
}

func TestPlaceBidSucceedsAndDecrementsLimits(t *testing.T) {
	a := flatAuction()
	bid, err := a.PlaceBid(0, 100, 10_000, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bid.SellAmount != 100 || bid.BuyAmount != 200 {
		t.Fatalf("got sell=%d buy=%d, want 100, 200", bid.SellAmount, bid.BuyAmount)
	}
	if a.SellLimit != 900 || a.BuyLimit != 1800 {
		t.Fatalf("got SellLimit=%d BuyLimit=%d after bid", a.SellLimit, a.BuyLimit)
	}
}

func TestVerifyInvariantAcceptsEndPriceSettlement(t *testing.T) {
	a := flatAuction()
	bid := &Bid{AuctionID: a.ID, SellAmount: 100, BuyAmount: 200}
	if err := bid.VerifyInvariant(a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestVerifyInvariantRejectsUnderpayment(t *testing.T) {
	a := flatAuction()
	bid := &Bid{AuctionID: a.ID, SellAmount: 100, BuyAmount: 100}
	if err := bid.VerifyInvariant(a); err != ErrBidInvariantViolated {
		t.Fatalf("expected ErrBidInvariantViolated, got %v", err)
	}
}

func TestExecuteBidHappyPath(t *testing.T) {
	a := flatAuction()
	sell := AddressFromLabel("sell")
	buy := AddressFromLabel("buy")
	a.Sell, a.Buy = sell, buy
	inv := &Inventory{}
	inv.AddMint(sell, 1000)

	transfer := func(ctx context.Context, bidder Address, auction *Auction, sellAmt, buyAmt uint64) error {
		return nil
	}
	bid, err := ExecuteBid(context.Background(), a, inv, AddressFromLabel("bidder"), 100, 10_000, 0, 0, transfer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bid.BuyAmount != 200 {
		t.Fatalf("got %d, want 200", bid.BuyAmount)
	}
	if i := inv.Find(sell); i < 0 || inv.Slots[i].AmountRaw != 900 {
		t.Fatalf("expected sell inventory decremented to 900")
	}
	if i := inv.Find(buy); i < 0 || inv.Slots[i].AmountRaw != 200 {
		t.Fatalf("expected buy inventory incremented to 200")
	}
}

func TestExecuteBidRollsBackOnTransferFailure(t *testing.T) {
	a := flatAuction()
	sell := AddressFromLabel("sell")
	buy := AddressFromLabel("buy")
	a.Sell, a.Buy = sell, buy
	inv := &Inventory{}
	inv.AddMint(sell, 1000)

	wantErr := errors.New("transfer failed")
	transfer := func(ctx context.Context, bidder Address, auction *Auction, sellAmt, buyAmt uint64) error {
		return wantErr
	}
	_, err := ExecuteBid(context.Background(), a, inv, AddressFromLabel("bidder"), 100, 10_000, 0, 0, transfer)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected transfer error to propagate, got %v", err)
	}
	if a.SellLimit != 1000 || a.BuyLimit != 2000 {
		t.Fatalf("expected limits restored after rollback, got sell=%d buy=%d", a.SellLimit, a.BuyLimit)
	}
}
