// Package integration contains the sales channel bounded context.
//
// Key concepts:
//   - ChannelAdapter: port for talking to one external sales channel
//   - ChannelRegistry: lookup of the adapters configured for this deployment
//   - MarketplaceError: structured failure of a single channel operation
//
// Adapters live in internal/infrastructure/ecommerce.
package integration
