package enrich

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrInvalidStrategy is returned by ParseStrategy for unknown names.
var ErrInvalidStrategy = errors.New("enrich: invalid strategy")

// Strategy selects how populated collection fields are merged with
// freshly computed values.
type Strategy int

const (
	// SetIfEmpty fills a collection only when it is empty.
	SetIfEmpty Strategy = iota
	// Union merges computed values into populated collections.
	Union
)

// String returns the configuration name of the strategy.
func (s Strategy) String() string {
	switch s {
	case SetIfEmpty:
		return "set-if-empty"
	case Union:
		return "union"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ShouldUnion reports whether s is Union. It makes a Strategy usable as a
// fixed Policy.
func (s Strategy) ShouldUnion() bool {
	return s == Union
}

// ParseStrategy parses a strategy name such as "union" or "set-if-empty".
// Matching ignores case, dashes and underscores. An empty name yields
// SetIfEmpty.
func ParseStrategy(name string) (Strategy, error) {
	key := strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(name)))
	switch key {
	case "", "setifempty":
		return SetIfEmpty, nil
	case "union":
		return Union, nil
	default:
		return SetIfEmpty, fmt.Errorf("%w: %q", ErrInvalidStrategy, name)
	}
}

var (
	strategyMu sync.RWMutex
	strategy   = SetIfEmpty
)

// CurrentStrategy returns the process-wide strategy.
func CurrentStrategy() Strategy {
	strategyMu.RLock()
	defer strategyMu.RUnlock()
	return strategy
}

// SetStrategy installs s as the process-wide strategy and returns the
// previous one.
func SetStrategy(s Strategy) Strategy {
	strategyMu.Lock()
	defer strategyMu.Unlock()
	prev := strategy
	strategy = s
	return prev
}

// ShouldUnion reports whether the process-wide strategy is Union.
func ShouldUnion() bool {
	return CurrentStrategy() == Union
}

// WithStrategy installs s as the process-wide strategy while fn runs and
// restores the previous strategy when fn returns or panics. Nested calls
// restore in reverse order.
//
// The override is visible to every goroutine. Use WithPolicy on the
// managers when enrichment runs concurrently.
func WithStrategy(s Strategy, fn func()) {
	prev := SetStrategy(s)
	defer SetStrategy(prev)
	fn()
}

// Policy decides whether collection fields are merged (Union) or only
// filled when empty (SetIfEmpty). A Strategy value is a fixed Policy.
type Policy interface {
	ShouldUnion() bool
}

type globalPolicy struct{}

func (globalPolicy) ShouldUnion() bool {
	return ShouldUnion()
}

// Global is the Policy backed by the process-wide strategy. It is read on
// every decision, so WithStrategy overrides are observed.
var Global Policy = globalPolicy{}
