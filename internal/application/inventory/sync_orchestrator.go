package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/stockmesh/backend/internal/domain/integration"
	"github.com/stockmesh/backend/internal/domain/inventory"
	"github.com/stockmesh/backend/internal/domain/shared"
	"github.com/stockmesh/backend/internal/infrastructure/telemetry"
)

// DefaultMaxConcurrency bounds the channel calls in flight per sync
const DefaultMaxConcurrency = 8

// SyncOrchestrator fans allocation decisions out to channel adapters and
// aggregates their results. Channel failures are recorded per listing and
// never abort the other channels.
type SyncOrchestrator struct {
	listings       inventory.ListingRepository
	history        inventory.ChannelHistoryReader
	registry       integration.ChannelRegistry
	allocator      *Allocator
	logger         *zap.Logger
	metrics        *telemetry.SyncMetrics
	maxConcurrency int
	now            func() time.Time
}

// SyncOrchestratorOption configures a SyncOrchestrator
type SyncOrchestratorOption func(*SyncOrchestrator)

// WithMaxConcurrency bounds the number of concurrent channel calls
func WithMaxConcurrency(n int) SyncOrchestratorOption {
	return func(o *SyncOrchestrator) {
		if n > 0 {
			o.maxConcurrency = n
		}
	}
}

// WithSyncMetrics sets the metrics collector
func WithSyncMetrics(m *telemetry.SyncMetrics) SyncOrchestratorOption {
	return func(o *SyncOrchestrator) {
		o.metrics = m
	}
}

// WithClock overrides the time source used for write-backs
func WithClock(now func() time.Time) SyncOrchestratorOption {
	return func(o *SyncOrchestrator) {
		o.now = now
	}
}

// NewSyncOrchestrator creates a new SyncOrchestrator
func NewSyncOrchestrator(
	listings inventory.ListingRepository,
	history inventory.ChannelHistoryReader,
	registry integration.ChannelRegistry,
	allocator *Allocator,
	logger *zap.Logger,
	opts ...SyncOrchestratorOption,
) *SyncOrchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	o := &SyncOrchestrator{
		listings:       listings,
		history:        history,
		registry:       registry,
		allocator:      allocator,
		logger:         logger,
		maxConcurrency: DefaultMaxConcurrency,
		now:            func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// SyncInventory allocates totalStock across the item's active listings and
// pushes the allocation to every channel. Only invalid input, unknown
// channels and storage failures before the fan-out are returned as errors.
func (o *SyncOrchestrator) SyncInventory(ctx context.Context, itemID uuid.UUID, totalStock int) (_ *InventorySyncReport, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "inventory_sync", "sync_inventory",
		telemetry.WithAttribute(telemetry.SpanAttrItemID, itemID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrQuantity, totalStock),
	)
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	if totalStock < 0 {
		return nil, shared.InvalidInput("total stock cannot be negative")
	}

	listings, err := o.listings.FindActiveByItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("load active listings: %w", err)
	}

	report := &InventorySyncReport{
		ItemID:     itemID,
		TotalStock: totalStock,
		Outcomes:   []ListingSyncOutcome{},
		SyncedAt:   o.now(),
	}
	if len(listings) == 0 {
		report.Status = integration.SyncStatusNoActiveListings
		return report, nil
	}

	channels := distinctChannels(listings)
	for _, ch := range channels {
		if !o.registry.Has(ch) {
			return nil, fmt.Errorf("%w: %s", integration.ErrUnknownChannel, ch)
		}
	}

	history, err := o.history.ChannelHistory(ctx, channels)
	if err != nil {
		return nil, fmt.Errorf("load channel history: %w", err)
	}

	allocation := o.allocator.Allocate(ctx, totalStock, channels, history)
	report.Allocation = &allocation

	outcomes := make([]ListingSyncOutcome, len(listings))
	var g errgroup.Group
	g.SetLimit(o.maxConcurrency)
	for i := range listings {
		listing := listings[i]
		qty := allocation.Allocations[listing.Channel]
		g.Go(func() error {
			outcomes[i] = o.syncListingStock(ctx, listing, qty)
			return nil
		})
	}
	_ = g.Wait()

	for _, out := range outcomes {
		if out.Succeeded() {
			report.Succeeded++
		} else {
			report.Failed++
		}
	}
	report.Outcomes = outcomes
	report.Status = integration.AggregateSyncStatus(report.Succeeded, report.Failed)
	telemetry.SetAttributes(span,
		telemetry.SpanAttrSyncStatus, string(report.Status),
		telemetry.SpanAttrStrategy, allocation.Strategy,
	)

	o.logger.Info("Inventory synchronized",
		zap.String("item_id", itemID.String()),
		zap.Int("total_stock", totalStock),
		zap.String("status", string(report.Status)),
		zap.String("strategy", allocation.Strategy),
		zap.Bool("fallback", allocation.Fallback),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}

// syncListingStock updates or ends one listing and writes the change back
func (o *SyncOrchestrator) syncListingStock(ctx context.Context, listing inventory.Listing, qty int) (out ListingSyncOutcome) {
	out = ListingSyncOutcome{
		ListingID: listing.ID,
		Channel:   listing.Channel,
		Action:    SyncActionUpdated,
		NewStock:  qty,
	}
	if qty == 0 {
		out.Action = SyncActionDelisted
	}
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			out.Status = OutcomeError
			out.ErrorCode = ErrCodeInternal
			out.ErrorMessage = fmt.Sprintf("panic: %v", r)
		}
		o.metrics.RecordChannelOperation(ctx, listing.Channel.String(), string(out.Action), out.Status, time.Since(start))
		if out.Status == OutcomeError {
			o.logger.Warn("Listing sync failed",
				zap.String("listing_id", listing.ID.String()),
				zap.String("channel", listing.Channel.String()),
				zap.String("action", string(out.Action)),
				zap.String("error_code", out.ErrorCode),
				zap.String("error", out.ErrorMessage),
			)
		}
	}()

	adapter, err := o.registry.Get(listing.Channel)
	if err != nil {
		return failOutcome(out, err)
	}

	if qty == 0 {
		err = adapter.EndListing(ctx, listing.RemoteID())
	} else {
		err = adapter.UpdateStock(ctx, listing.RemoteID(), qty)
	}
	if err != nil {
		return failOutcome(out, err)
	}

	at := o.now()
	if qty == 0 {
		err = o.listings.MarkEnded(ctx, listing.ID, at)
	} else {
		err = o.listings.UpdateQuantity(ctx, listing.ID, qty, at)
	}
	if err != nil {
		out.Status = OutcomeError
		out.ErrorCode = ErrCodePersistenceFailed
		out.ErrorMessage = err.Error()
		return out
	}

	out.Status = OutcomeSuccess
	return out
}

// SyncListing publishes a listing on each requested channel concurrently.
// Successful publications are written back to the matching local listings.
func (o *SyncOrchestrator) SyncListing(ctx context.Context, req ListingSyncRequest) (_ *ListingSyncReport, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "inventory_sync", "sync_listing")
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	channels := dedupeChannels(req.Channels)
	if len(channels) == 0 {
		return nil, shared.InvalidInput("at least one channel is required")
	}
	for _, ch := range channels {
		if !o.registry.Has(ch) {
			return nil, fmt.Errorf("%w: %s", integration.ErrUnknownChannel, ch)
		}
	}

	targets, err := o.writeBackTargets(ctx, req)
	if err != nil {
		return nil, err
	}

	results := make([]ChannelListingResult, len(channels))
	var g errgroup.Group
	g.SetLimit(o.maxConcurrency)
	for i, ch := range channels {
		g.Go(func() error {
			results[i] = o.publish(ctx, ch, req.Listing, targets[ch])
			return nil
		})
	}
	_ = g.Wait()

	report := &ListingSyncReport{
		Status:   ListingSyncStatusCompleted,
		Results:  make(map[integration.ChannelCode]ChannelListingResult, len(channels)),
		SyncedAt: o.now(),
	}
	for i, ch := range channels {
		report.Results[ch] = results[i]
	}
	return report, nil
}

// writeBackTargets resolves the local listings, per channel, that receive
// platform data after publication
func (o *SyncOrchestrator) writeBackTargets(ctx context.Context, req ListingSyncRequest) (map[integration.ChannelCode][]uuid.UUID, error) {
	targets := make(map[integration.ChannelCode][]uuid.UUID)
	switch {
	case req.ListingID != nil:
		listing, err := o.listings.FindByID(ctx, *req.ListingID)
		if err != nil {
			return nil, fmt.Errorf("load listing: %w", err)
		}
		targets[listing.Channel] = append(targets[listing.Channel], listing.ID)
	case req.ItemID != nil:
		listings, err := o.listings.FindActiveByItem(ctx, *req.ItemID)
		if err != nil {
			return nil, fmt.Errorf("load active listings: %w", err)
		}
		for _, l := range listings {
			targets[l.Channel] = append(targets[l.Channel], l.ID)
		}
	}
	return targets, nil
}

func (o *SyncOrchestrator) publish(
	ctx context.Context,
	channel integration.ChannelCode,
	listing integration.ListingRequest,
	writeBack []uuid.UUID,
) (res ChannelListingResult) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res = ChannelListingResult{
				Status:       OutcomeError,
				ErrorCode:    ErrCodeInternal,
				ErrorMessage: fmt.Sprintf("panic: %v", r),
			}
		}
		o.metrics.RecordChannelOperation(ctx, channel.String(), "published", res.Status, time.Since(start))
	}()

	adapter, err := o.registry.Get(channel)
	if err != nil {
		return ChannelListingResult{Status: OutcomeError, ErrorCode: string(integration.KindOf(err)), ErrorMessage: err.Error()}
	}

	receipt, err := adapter.CreateListing(ctx, listing)
	if err != nil {
		o.logger.Warn("Listing publication failed",
			zap.String("channel", channel.String()),
			zap.String("item_id", listing.ItemID),
			zap.Error(err),
		)
		return ChannelListingResult{Status: OutcomeError, ErrorCode: string(integration.KindOf(err)), ErrorMessage: err.Error()}
	}

	at := o.now()
	res = ChannelListingResult{
		Status:     OutcomeSuccess,
		ExternalID: receipt.ExternalID,
		URL:        receipt.URL,
		Timestamp:  &at,
	}

	for _, id := range writeBack {
		if err := o.listings.UpdatePlatformData(ctx, id, *receipt, at); err != nil {
			res.Status = OutcomeError
			res.ErrorCode = ErrCodePersistenceFailed
			res.ErrorMessage = err.Error()
			return res
		}
	}
	return res
}

// StockLevels queries every active listing's channel for its quantity.
// A failing channel produces an error entry and never aborts the others.
// Only the oldest active listing of a channel is reported; further listings
// on the same channel are logged and skipped.
func (o *SyncOrchestrator) StockLevels(ctx context.Context, itemID uuid.UUID) (map[integration.ChannelCode]StockLevel, error) {
	listings, err := o.listings.FindActiveByItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("load active listings: %w", err)
	}

	seen := make(map[integration.ChannelCode]uuid.UUID, len(listings))
	queried := make([]inventory.Listing, 0, len(listings))
	for _, l := range listings {
		if kept, dup := seen[l.Channel]; dup {
			o.logger.Warn("Multiple active listings on one channel, reporting the oldest",
				zap.String("item_id", itemID.String()),
				zap.String("channel", l.Channel.String()),
				zap.String("listing_id", kept.String()),
				zap.String("skipped_listing_id", l.ID.String()),
			)
			continue
		}
		seen[l.Channel] = l.ID
		queried = append(queried, l)
	}

	levels := make([]StockLevel, len(queried))
	var g errgroup.Group
	g.SetLimit(o.maxConcurrency)
	for i := range queried {
		listing := queried[i]
		g.Go(func() error {
			levels[i] = o.stockLevel(ctx, listing)
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[integration.ChannelCode]StockLevel, len(queried))
	for i, l := range queried {
		out[l.Channel] = levels[i]
	}
	return out, nil
}

func (o *SyncOrchestrator) stockLevel(ctx context.Context, listing inventory.Listing) (level StockLevel) {
	level = StockLevel{ListingID: listing.ID, LocalQuantity: listing.Quantity}
	defer func() {
		if r := recover(); r != nil {
			level.Status = OutcomeError
			level.ErrorMessage = fmt.Sprintf("panic: %v", r)
		}
	}()

	adapter, err := o.registry.Get(listing.Channel)
	if err != nil {
		level.Status = OutcomeError
		level.ErrorMessage = err.Error()
		return level
	}
	qty, err := adapter.GetStockLevel(ctx, listing.RemoteID())
	if err != nil {
		level.Status = OutcomeError
		level.ErrorMessage = err.Error()
		return level
	}
	level.Status = OutcomeSuccess
	level.ChannelStock = qty
	return level
}

// PlatformStatus authenticates against a channel and reports its state
func (o *SyncOrchestrator) PlatformStatus(ctx context.Context, channel integration.ChannelCode) PlatformStatus {
	status := PlatformStatus{Channel: channel}
	adapter, err := o.registry.Get(channel)
	if err != nil {
		status.Status = PlatformUnsupported
		status.Message = fmt.Sprintf("Unsupported marketplace: %s", channel)
		return status
	}

	if err := authenticate(ctx, adapter); err != nil {
		status.Status = PlatformError
		status.Message = err.Error()
		return status
	}
	status.Status = PlatformConnected
	status.Capabilities = integration.DefaultCapabilities()
	return status
}

// AllPlatformStatuses reports the state of every registered channel in
// registration order
func (o *SyncOrchestrator) AllPlatformStatuses(ctx context.Context) []PlatformStatus {
	codes := o.registry.Codes()
	statuses := make([]PlatformStatus, len(codes))
	var g errgroup.Group
	g.SetLimit(o.maxConcurrency)
	for i, code := range codes {
		g.Go(func() error {
			statuses[i] = o.PlatformStatus(ctx, code)
			return nil
		})
	}
	_ = g.Wait()
	return statuses
}

func authenticate(ctx context.Context, adapter integration.ChannelAdapter) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return adapter.Authenticate(ctx)
}

func failOutcome(out ListingSyncOutcome, err error) ListingSyncOutcome {
	out.Status = OutcomeError
	out.ErrorCode = string(integration.KindOf(err))
	if errors.Is(err, integration.ErrUnknownChannel) {
		out.ErrorCode = "UNKNOWN_CHANNEL"
	}
	out.ErrorMessage = err.Error()
	return out
}

// distinctChannels returns the listings' channels in first-seen order
func distinctChannels(listings []inventory.Listing) []integration.ChannelCode {
	channels := make([]integration.ChannelCode, 0, len(listings))
	for _, l := range listings {
		channels = append(channels, l.Channel)
	}
	return dedupeChannels(channels)
}

func dedupeChannels(in []integration.ChannelCode) []integration.ChannelCode {
	seen := make(map[integration.ChannelCode]struct{}, len(in))
	out := make([]integration.ChannelCode, 0, len(in))
	for _, ch := range in {
		if _, ok := seen[ch]; ok {
			continue
		}
		seen[ch] = struct{}{}
		out = append(out, ch)
	}
	return out
}
