package access

// Strategy names a field access implementation.
type Strategy int

const (
	StrategyPortable Strategy = iota
	StrategyDirect
)

// String returns a human-readable strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyPortable:
		return "portable"
	case StrategyDirect:
		return "direct"
	default:
		return "unknown"
	}
}

// ParseStrategy is the inverse of Strategy.String.
func ParseStrategy(name string) (Strategy, bool) {
	switch name {
	case "portable":
		return StrategyPortable, true
	case "direct":
		return StrategyDirect, true
	default:
		return StrategyPortable, false
	}
}
