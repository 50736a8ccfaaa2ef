package integration

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownChannel indicates a channel that is not present in the registry
	ErrUnknownChannel = errors.New("integration: unknown channel")
	// ErrInvalidChannelCode indicates a malformed channel code
	ErrInvalidChannelCode = errors.New("integration: invalid channel code")
	// ErrChannelAlreadyRegistered indicates a duplicate adapter registration
	ErrChannelAlreadyRegistered = errors.New("integration: channel already registered")
)

// Marketplace error family. Every MarketplaceError matches ErrMarketplace and
// the sentinel of its own kind under errors.Is.
var (
	ErrMarketplace    = errors.New("integration: marketplace error")
	ErrAuthentication = errors.New("integration: authentication failed")
	ErrMarketData     = errors.New("integration: market data unavailable")
	ErrParse          = errors.New("integration: unparseable channel response")
	ErrHistoricalData = errors.New("integration: historical data unavailable")
)

// ErrorKind classifies a MarketplaceError
type ErrorKind string

const (
	KindMarketplace    ErrorKind = "MARKETPLACE_ERROR"
	KindAuthentication ErrorKind = "AUTHENTICATION_ERROR"
	KindMarketData     ErrorKind = "MARKET_DATA_ERROR"
	KindParse          ErrorKind = "PARSE_ERROR"
	KindHistoricalData ErrorKind = "HISTORICAL_DATA_ERROR"
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindAuthentication:
		return ErrAuthentication
	case KindMarketData:
		return ErrMarketData
	case KindParse:
		return ErrParse
	case KindHistoricalData:
		return ErrHistoricalData
	default:
		return ErrMarketplace
	}
}

// MarketplaceError is the failure of a single channel operation
type MarketplaceError struct {
	Kind    ErrorKind
	Channel ChannelCode
	Op      string
	Err     error
}

// NewMarketplaceError creates a MarketplaceError of the given kind
func NewMarketplaceError(kind ErrorKind, channel ChannelCode, op string, err error) *MarketplaceError {
	return &MarketplaceError{Kind: kind, Channel: channel, Op: op, Err: err}
}

// Error implements the error interface
func (e *MarketplaceError) Error() string {
	msg := fmt.Sprintf("%s: %s %s", e.Channel, e.Op, e.Kind.sentinel().Error())
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause
func (e *MarketplaceError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrMarketplace or this error's kind sentinel
func (e *MarketplaceError) Is(target error) bool {
	return target == ErrMarketplace || target == e.Kind.sentinel()
}

// KindOf returns the kind of a MarketplaceError anywhere in the chain,
// or KindMarketplace for any other error
func KindOf(err error) ErrorKind {
	var mErr *MarketplaceError
	if errors.As(err, &mErr) {
		return mErr.Kind
	}
	return KindMarketplace
}

// Convenience constructors used by adapters

// AuthError wraps err as an authentication failure
func AuthError(channel ChannelCode, op string, err error) *MarketplaceError {
	return NewMarketplaceError(KindAuthentication, channel, op, err)
}

// MarketDataError wraps err as a market data failure
func MarketDataError(channel ChannelCode, op string, err error) *MarketplaceError {
	return NewMarketplaceError(KindMarketData, channel, op, err)
}

// ParseError wraps err as a response parse failure
func ParseError(channel ChannelCode, op string, err error) *MarketplaceError {
	return NewMarketplaceError(KindParse, channel, op, err)
}

// HistoricalDataError wraps err as a price history failure
func HistoricalDataError(channel ChannelCode, op string, err error) *MarketplaceError {
	return NewMarketplaceError(KindHistoricalData, channel, op, err)
}

// OperationError wraps err as a generic channel operation failure
func OperationError(channel ChannelCode, op string, err error) *MarketplaceError {
	return NewMarketplaceError(KindMarketplace, channel, op, err)
}
