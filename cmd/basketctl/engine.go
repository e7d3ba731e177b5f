// Package main implements basketctl, a local-demo CLI over the core
// basket/rebalance/auction engine. Structure mirrors the teacher's
// cmd/cli/amm.go: a thin Controller wraps core's pure functions, cobra
// commands call the controller, zap logs command outcomes.
package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	core "synnergy-network/core"
)

// basketState is everything this process keeps in memory for one basket,
// standing in for the several on-chain accounts spec.md §3 describes
// (Basket, Inventory, per-user RoleRecord, Rebalance, Auction,
// AuctionEnds, FeeDistributionRecord) under a single local mutex.
type basketState struct {
	basket        *core.Basket
	inventory     *core.Inventory
	roles         map[core.Address]*core.RoleRecord
	rebalance     *core.Rebalance
	tracker       *core.AuctionEndTracker
	auctions      map[uint64]*core.Auction
	distributions map[uint64]*core.FeeDistributionRecord
}

// Engine is the process-wide controller: it owns every basket's state, a
// shared token ledger standing in for the out-of-scope token-ledger
// collaborator (spec.md §1), and the migration registrar.
type Engine struct {
	mu          sync.Mutex
	baskets     map[core.Address]*basketState
	ledger      *core.Ledger
	registrar   *core.ProgramRegistrar
	dao         core.DAOFeeConfig
	selfProgram core.Address
	events      core.EventSink
}

// NewEngine returns an Engine seeded with the given DAO fee policy and
// this program's own identity (used by migration's same-program check).
// Any sinks passed are combined via core.NewMultiSink and receive every
// spec.md §6 event this Engine's operations emit; with no sinks, events
// are silently dropped (matching core.emit's nil-sink no-op).
func NewEngine(dao core.DAOFeeConfig, selfProgram core.Address, sinks ...core.EventSink) *Engine {
	var sink core.EventSink
	if len(sinks) > 0 {
		sink = core.NewMultiSink(sinks...)
	}
	return &Engine{
		baskets:     make(map[core.Address]*basketState),
		ledger:      core.NewLedger(),
		registrar:   core.NewProgramRegistrar(),
		dao:         dao,
		selfProgram: selfProgram,
		events:      sink,
	}
}

// emit reports one spec.md §6 event for basketID against the engine's
// configured sink (a no-op if none was supplied to NewEngine).
func (e *Engine) emit(basketID core.Address, name string, fields map[string]any) {
	if e.events == nil {
		return
	}
	e.events.Emit(core.Event{Name: name, BasketID: basketID, Timestamp: time.Now().Unix(), Fields: fields})
}

func (e *Engine) get(basketID core.Address) (*basketState, error) {
	st, ok := e.baskets[basketID]
	if !ok {
		return nil, fmt.Errorf("basketctl: unknown basket %s", basketID)
	}
	return st, nil
}

// InitBasket creates a new basket in the Initializing status and grants
// owner the RoleOwner bit, per spec.md §4.2/§6.
func (e *Engine) InitBasket(basketID, tokenMint, owner core.Address, tvlFeeAnnual, mintFee core.Decimal, auctionLength uint64, mandate string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.baskets[basketID]; exists {
		return fmt.Errorf("basketctl: basket %s already exists", basketID)
	}
	b, err := core.InitBasket(basketID, tokenMint, 0, tvlFeeAnnual, mintFee, auctionLength, mandate)
	if err != nil {
		return err
	}
	st := &basketState{
		basket:        b,
		inventory:     &core.Inventory{},
		roles:         map[core.Address]*core.RoleRecord{owner: core.NewRoleRecord(owner, basketID, 0, core.RoleOwner)},
		rebalance:     &core.Rebalance{},
		tracker:       core.NewAuctionEndTracker(),
		auctions:      make(map[uint64]*core.Auction),
		distributions: make(map[uint64]*core.FeeDistributionRecord),
	}
	e.baskets[basketID] = st
	e.emit(basketID, "BasketCreated", map[string]any{"token_mint": tokenMint.String(), "owner": owner.String()})
	return nil
}

// AddToBasket deposits amountRaw of mint into the basket's inventory
// (spec.md §6's add_to_basket), finalising Initializing -> Initialized on
// the first deposit.
func (e *Engine) AddToBasket(basketID, owner, mint core.Address, amountRaw uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	st, err := e.get(basketID)
	if err != nil {
		return err
	}
	if err := e.requireRole(st, owner, core.RoleOwner); err != nil {
		return err
	}
	if err := st.basket.Validate([]core.BasketStatus{core.StatusInitializing, core.StatusInitialized}, nil, 0); err != nil {
		return err
	}
	if err := st.inventory.AddMint(mint, amountRaw); err != nil {
		return err
	}
	e.emit(basketID, "BasketTokenAdded", map[string]any{"mint": mint.String(), "amount": amountRaw})
	if st.basket.Status == core.StatusInitializing {
		return st.basket.FinaliseInitialisation()
	}
	return nil
}

// UpdateBasket applies owner-supplied parameter changes to basketID, per
// spec.md §6's update_basket op. Each pointer argument is applied only
// when non-nil, so a caller can change a single field (e.g. just the
// mandate) without resupplying the others; each applied change emits its
// spec.md §6 *Set event. If recipients is non-empty, a fee distribution
// is also triggered against the basket's currently pending recipient
// shares (spec.md §6: "may trigger fee distribution if recipients
// exist") once every requested change has been applied; a parameter-change
// error is returned before any distribution, with a nil record. The TVL-fee and
// mint-fee branches reject with ErrInvalidBasketStatus once the basket
// has entered Migrating, per spec.md §8 P7 ("no role change, fee update,
// mint, or redeem is accepted" once migrating).
func (e *Engine) UpdateBasket(basketID, caller core.Address, mandate *string, auctionLength *uint64, tvlFeeAnnual, mintFee *core.Decimal, recipients []core.FeeRecipient, cranker core.Address) (*core.FeeDistributionRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	st, err := e.get(basketID)
	if err != nil {
		return nil, err
	}
	if err := e.requireRole(st, caller, core.RoleOwner); err != nil {
		return nil, err
	}

	if mandate != nil {
		if err := st.basket.SetMandate(*mandate); err != nil {
			return nil, err
		}
		e.emit(basketID, "MandateSet", map[string]any{"mandate": *mandate})
	}
	if auctionLength != nil {
		if err := st.basket.SetAuctionLength(*auctionLength); err != nil {
			return nil, err
		}
		e.emit(basketID, "AuctionLengthSet", map[string]any{"auction_length": *auctionLength})
	}
	if tvlFeeAnnual != nil {
		if st.basket.Status == core.StatusMigrating {
			return nil, core.ErrInvalidBasketStatus
		}
		if err := st.basket.SetTVLFee(*tvlFeeAnnual); err != nil {
			return nil, err
		}
		e.emit(basketID, "TVLFeeSet", map[string]any{"tvl_fee_annual": tvlFeeAnnual.String()})
	}
	if mintFee != nil {
		if st.basket.Status == core.StatusMigrating {
			return nil, core.ErrInvalidBasketStatus
		}
		if err := st.basket.SetMintFee(*mintFee); err != nil {
			return nil, err
		}
		e.emit(basketID, "MintFeeSet", map[string]any{"mint_fee": mintFee.String()})
	}

	if len(recipients) == 0 {
		return nil, nil
	}
	rec, err := core.DistributeFees(st.basket, st.basket.NextDistribution(), cranker, recipients)
	if err != nil {
		return nil, err
	}
	if rec != nil {
		st.distributions[rec.Index] = rec
	}
	return rec, nil
}

func (e *Engine) requireRole(st *basketState, user core.Address, role core.Role) error {
	rec, ok := st.roles[user]
	if !ok || !rec.Has(role) {
		return core.ErrUnauthorized
	}
	return nil
}

func (e *Engine) rolesOf(st *basketState, user core.Address) uint8 {
	if rec, ok := st.roles[user]; ok {
		return rec.Roles
	}
	return 0
}

// Poke advances a basket's fee accrual clock to now, per spec.md §4.3.
// circulatingRaw is the basket token's current circulating supply in its
// own raw unit (decimals assumed 9, matching spec.md §3's token-amount
// convention).
func (e *Engine) Poke(basketID core.Address, now, circulatingRaw uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	st, err := e.get(basketID)
	if err != nil {
		return err
	}
	supply, err := core.FromTokenAmount(circulatingRaw)
	if err != nil {
		return err
	}
	return st.basket.Poke(now, supply, e.dao)
}

// SetRole grants or revokes role on user for basketID, per spec.md §6's
// set_role/remove_role. Per spec.md §8 P7, once the basket has entered
// Migrating no role change is accepted; RoleRecord.AddRole/RemoveRole
// enforce this directly against the basket's current status.
func (e *Engine) SetRole(basketID, caller, user core.Address, role core.Role, grant bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	st, err := e.get(basketID)
	if err != nil {
		return err
	}
	callerRoles := e.rolesOf(st, caller)
	rec, ok := st.roles[user]
	if !ok {
		rec = core.NewRoleRecord(user, basketID, 0, 0)
		st.roles[user] = rec
	}
	if grant {
		return rec.AddRole(callerRoles, role, st.basket.Status)
	}
	return rec.RemoveRole(callerRoles, role, st.basket.Status)
}

// KillBasket transitions an Initialized basket to Killed, per spec.md §6.
func (e *Engine) KillBasket(basketID, caller core.Address) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	st, err := e.get(basketID)
	if err != nil {
		return err
	}
	if err := e.requireRole(st, caller, core.RoleOwner); err != nil {
		return err
	}
	if err := st.basket.Kill(); err != nil {
		return err
	}
	e.emit(basketID, "BasketKilled", nil)
	return nil
}

// StartRebalance opens a new rebalance window for basketID, per spec.md
// §4.4/§6.
func (e *Engine) StartRebalance(basketID, caller core.Address, now, ttl, restrictedTTL uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	st, err := e.get(basketID)
	if err != nil {
		return err
	}
	callerRoles := e.rolesOf(st, caller)
	if !core.HasRole(callerRoles, core.RoleOwner) && !core.HasRole(callerRoles, core.RoleRebalanceManager) {
		return core.ErrUnauthorized
	}
	if err := st.basket.Validate([]core.BasketStatus{core.StatusInitialized}, nil, 0); err != nil {
		return err
	}
	if err := st.rebalance.StartRebalance(now, ttl, restrictedTTL); err != nil {
		return err
	}
	e.emit(basketID, "RebalanceStarted", map[string]any{"now": now, "ttl": ttl, "restricted_ttl": restrictedTTL, "nonce": st.rebalance.Nonce})
	return nil
}

// AddRebalanceDetail appends one token's rebalance parameters, per
// spec.md §4.4/§6. allAdded is the caller's declaration of whether this
// is the final detail of the batch (spec.md §4.4's all_added), stored as
// Rebalance.AllRebalanceDetailsAdded and required true before an auction
// can open against this rebalance.
func (e *Engine) AddRebalanceDetail(basketID, caller core.Address, detail core.TokenDetail, allAdded bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	st, err := e.get(basketID)
	if err != nil {
		return err
	}
	callerRoles := e.rolesOf(st, caller)
	if !core.HasRole(callerRoles, core.RoleOwner) && !core.HasRole(callerRoles, core.RoleRebalanceManager) {
		return core.ErrUnauthorized
	}
	return st.rebalance.AddRebalanceDetails(detail, allAdded)
}

func (e *Engine) composition(st *basketState, sell, buy core.Address) (core.Decimal, uint64, uint64, error) {
	supply := core.ZeroDecimal
	for _, slot := range st.inventory.Slots {
		if slot.Mint.IsZero() {
			continue
		}
		v, err := core.FromTokenAmount(slot.AmountRaw)
		if err != nil {
			return core.Decimal{}, 0, 0, err
		}
		supply, err = supply.Add(v)
		if err != nil {
			return core.Decimal{}, 0, 0, err
		}
	}
	var sellRaw, buyRaw uint64
	if i := st.inventory.Find(sell); i >= 0 {
		sellRaw = st.inventory.Slots[i].AmountRaw
	}
	if i := st.inventory.Find(buy); i >= 0 {
		buyRaw = st.inventory.Slots[i].AmountRaw
	}
	return supply, sellRaw, buyRaw, nil
}

// OpenAuction opens a restricted or permissionless auction for (sell,
// buy) in basketID's current rebalance, per spec.md §4.5/§6. restricted
// selects which opening path is used.
func (e *Engine) OpenAuction(basketID, caller, sell, buy core.Address, now uint64, restricted bool) (*core.Auction, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	st, err := e.get(basketID)
	if err != nil {
		return nil, err
	}
	if err := st.basket.Validate([]core.BasketStatus{core.StatusInitialized}, nil, 0); err != nil {
		return nil, err
	}
	supply, sellRaw, buyRaw, err := e.composition(st, sell, buy)
	if err != nil {
		return nil, err
	}
	comp := basketComposition(supply, sellRaw, buyRaw)

	var auction *core.Auction
	if restricted {
		callerRoles := e.rolesOf(st, caller)
		auction, err = core.OpenAuctionRestricted(st.rebalance, st.tracker, basketID, sell, buy, now, st.basket.AuctionLength, callerRoles, comp)
	} else {
		auction, err = core.OpenAuctionPermissionless(st.rebalance, st.tracker, basketID, sell, buy, now, st.basket.AuctionLength, comp)
	}
	if err != nil {
		return nil, err
	}
	st.auctions[auction.ID] = auction
	e.emit(basketID, "AuctionOpened", map[string]any{
		"auction_id": auction.ID,
		"sell":       sell.String(),
		"buy":        buy.String(),
		"start":      auction.Start,
		"end":        auction.End,
		"restricted": restricted,
	})
	return auction, nil
}

// Bid settles a trade against a running auction, per spec.md §4.5/§6.
func (e *Engine) Bid(ctx context.Context, basketID core.Address, auctionID uint64, bidder core.Address, now, sellAmountRaw, maxBuyAmountRaw, minBuyAmountRaw uint64) (*core.Bid, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	st, err := e.get(basketID)
	if err != nil {
		return nil, err
	}
	auction, ok := st.auctions[auctionID]
	if !ok {
		return nil, core.ErrNoRunningAuctionFound
	}
	transfer := func(ctx context.Context, bidder core.Address, a *core.Auction, sellAmt, buyAmt uint64) error {
		if err := e.ledger.Transfer(basketID, bidder, a.Sell, sellAmt); err != nil {
			return err
		}
		return e.ledger.Transfer(bidder, basketID, a.Buy, buyAmt)
	}
	bid, err := core.ExecuteBid(ctx, auction, st.inventory, bidder, sellAmountRaw, maxBuyAmountRaw, minBuyAmountRaw, now, transfer)
	if err != nil {
		return nil, err
	}
	e.emit(basketID, "AuctionBid", map[string]any{
		"auction_id": auctionID,
		"bidder":     bidder.String(),
		"sell":       bid.SellAmount,
		"buy":        bid.BuyAmount,
		"price":      bid.Price.String(),
	})
	return bid, nil
}

// DistributeFees snapshots basketID's pending fee-recipient shares into a
// new distribution record, per spec.md §4.3/§6.
func (e *Engine) DistributeFees(basketID, caller core.Address, recipients []core.FeeRecipient, cranker core.Address) (*core.FeeDistributionRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	st, err := e.get(basketID)
	if err != nil {
		return nil, err
	}
	if err := e.requireRole(st, caller, core.RoleOwner); err != nil {
		return nil, err
	}
	rec, err := core.DistributeFees(st.basket, st.basket.NextDistribution(), cranker, recipients)
	if err != nil {
		return nil, err
	}
	if rec != nil {
		st.distributions[rec.Index] = rec
	}
	return rec, nil
}

// DistributionRecipientCount reports how many recipient slots the named
// distribution record holds, so a caller can expand a "crank everyone"
// request into the explicit index list core.CrankFeeDistribution expects.
func (e *Engine) DistributionRecipientCount(basketID core.Address, index uint64) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	st, err := e.get(basketID)
	if err != nil {
		return 0, err
	}
	rec, ok := st.distributions[index]
	if !ok {
		return 0, fmt.Errorf("basketctl: unknown distribution index %d", index)
	}
	return len(rec.Recipients), nil
}

// CrankFeeDistribution mints out recipients named by indices for
// distribution index of basketID, per spec.md §4.3/§6.
func (e *Engine) CrankFeeDistribution(ctx context.Context, basketID core.Address, index uint64, indices []int) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	st, err := e.get(basketID)
	if err != nil {
		return false, err
	}
	rec, ok := st.distributions[index]
	if !ok {
		return false, fmt.Errorf("basketctl: unknown distribution index %d", index)
	}
	mint := func(ctx context.Context, recipient core.Address, amountRaw uint64) error {
		return e.ledger.Mint(recipient, st.basket.TokenMint, amountRaw)
	}
	closeFn := func(ctx context.Context, cranker core.Address) error {
		delete(st.distributions, index)
		return nil
	}
	closed, paid, err := core.CrankFeeDistribution(ctx, rec, st.basket, indices, mint, closeFn)
	if err != nil {
		return closed, err
	}
	for _, p := range paid {
		e.emit(basketID, "TVLFeePaid", map[string]any{"recipient": p.Recipient.String(), "amount": p.AmountRaw})
	}
	if closed {
		e.emit(basketID, "FeeDistributed", map[string]any{"index": index, "recipients_minted": len(indices)})
	}
	return closed, nil
}

// BeginMigration transitions basketID to Migrating, per spec.md §6.
func (e *Engine) BeginMigration(basketID, caller core.Address) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	st, err := e.get(basketID)
	if err != nil {
		return err
	}
	if err := e.requireRole(st, caller, core.RoleOwner); err != nil {
		return err
	}
	return st.basket.BeginMigration()
}

// RegisterMigrationTarget whitelists a program as a valid migration
// destination, per spec.md §4.6's registrar check.
func (e *Engine) RegisterMigrationTarget(program core.Address) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.registrar.Register(program)
}

// Migrate drains basketID's inventory into newBasketID on newProgram, per
// spec.md §4.6/§6.
func (e *Engine) Migrate(ctx context.Context, basketID, newBasketID, newProgram core.Address, newBasketOwnedByNewProgram, newBasketDiscriminatorValid bool, groups []core.TokenAccountGroup) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	st, err := e.get(basketID)
	if err != nil {
		return err
	}
	transfer := func(ctx context.Context, group core.TokenAccountGroup, amountRaw uint64) error {
		return e.ledger.Transfer(group.Source, group.Destination, group.Mint, amountRaw)
	}
	notify := func(ctx context.Context, newBasketID core.Address, group core.TokenAccountGroup, amountRaw uint64) error {
		return nil
	}
	return core.MigrateBasketTokens(ctx, st.basket, st.inventory, e.registrar, e.selfProgram, newProgram, newBasketID, newBasketOwnedByNewProgram, newBasketDiscriminatorValid, groups, transfer, notify)
}

// basketComposition adapts the engine's locally-computed supply/balances
// into a core.AuctionComposition.
func basketComposition(supply core.Decimal, sellRaw, buyRaw uint64) core.AuctionComposition {
	return core.NewAuctionComposition(supply, sellRaw, buyRaw)
}
