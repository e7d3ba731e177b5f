package main

import (
	"testing"

	core "synnergy-network/core"
)

func TestEngineEmitsLifecycleEvents(t *testing.T) {
	sink := &core.RecordingSink{}
	e := NewEngine(testDAOConfig(), core.AddressFromLabel("self-program"), sink)
	basketID := core.AddressFromLabel("basket")
	tokenMint := core.AddressFromLabel("basket-token")
	owner := core.AddressFromLabel("owner")

	if err := e.InitBasket(basketID, tokenMint, owner, core.ZeroDecimal, core.ZeroDecimal, core.MinAuctionLength, "mandate"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := sink.Last().Name; got != "BasketCreated" {
		t.Fatalf("got %q, want BasketCreated", got)
	}

	usdc := core.AddressFromLabel("usdc")
	if err := e.AddToBasket(basketID, owner, usdc, 1000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := sink.Last().Name; got != "BasketTokenAdded" {
		t.Fatalf("got %q, want BasketTokenAdded", got)
	}

	if err := e.KillBasket(basketID, owner); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := sink.Last().Name; got != "BasketKilled" {
		t.Fatalf("got %q, want BasketKilled", got)
	}

	if len(sink.Events) != 3 {
		t.Fatalf("got %d events, want 3", len(sink.Events))
	}
}

func TestEngineUpdateBasketAppliesChangesAndEmits(t *testing.T) {
	sink := &core.RecordingSink{}
	e := NewEngine(testDAOConfig(), core.AddressFromLabel("self-program"), sink)
	basketID := core.AddressFromLabel("basket")
	owner := core.AddressFromLabel("owner")
	stranger := core.AddressFromLabel("stranger")

	if err := e.InitBasket(basketID, core.AddressFromLabel("mint"), owner, core.ZeroDecimal, core.ZeroDecimal, core.MinAuctionLength, "old mandate"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := e.UpdateBasket(basketID, stranger, nil, nil, nil, nil, nil, core.Address{}); err != core.ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	newMandate := "new mandate"
	newLength := core.MinAuctionLength + 60
	if _, err := e.UpdateBasket(basketID, owner, &newMandate, &newLength, nil, nil, nil, core.Address{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	st, err := e.get(basketID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.basket.Mandate != newMandate {
		t.Fatalf("got mandate %q, want %q", st.basket.Mandate, newMandate)
	}
	if st.basket.AuctionLength != newLength {
		t.Fatalf("got auction length %d, want %d", st.basket.AuctionLength, newLength)
	}

	var sawMandateSet, sawAuctionLengthSet bool
	for _, ev := range sink.Events {
		switch ev.Name {
		case "MandateSet":
			sawMandateSet = true
		case "AuctionLengthSet":
			sawAuctionLengthSet = true
		}
	}
	if !sawMandateSet || !sawAuctionLengthSet {
		t.Fatalf("expected MandateSet and AuctionLengthSet events, got %+v", sink.Events)
	}
}

func TestEngineUpdateBasketRejectsInvalidMintFee(t *testing.T) {
	e := NewEngine(testDAOConfig(), core.AddressFromLabel("self-program"))
	basketID := core.AddressFromLabel("basket")
	owner := core.AddressFromLabel("owner")
	if err := e.InitBasket(basketID, core.AddressFromLabel("mint"), owner, core.ZeroDecimal, core.ZeroDecimal, core.MinAuctionLength, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tooHigh := mustParseDecimal(t, "0.5")
	if _, err := e.UpdateBasket(basketID, owner, nil, nil, nil, &tooHigh, nil, core.Address{}); err != core.ErrInvalidMintFee {
		t.Fatalf("expected ErrInvalidMintFee, got %v", err)
	}
}
