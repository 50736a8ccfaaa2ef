package strategy

// Strategy is a named, pluggable algorithm selectable from configuration
type Strategy interface {
	Name() string
	Description() string
}

// BaseStrategy carries the identity every strategy reports
type BaseStrategy struct {
	name        string
	description string
}

// NewBaseStrategy creates a new BaseStrategy
func NewBaseStrategy(name, description string) BaseStrategy {
	return BaseStrategy{name: name, description: description}
}

// Name returns the registry key of the strategy
func (s BaseStrategy) Name() string { return s.name }

// Description returns a human-readable summary
func (s BaseStrategy) Description() string { return s.description }
