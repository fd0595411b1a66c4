package enrich

import (
	"slices"

	"github.com/vitalvas/introspec/apidoc"
)

// FillIfEmpty returns existing when it holds any element. Otherwise it
// returns the distinct result of compute, which may itself be empty.
// compute is not invoked for a populated collection.
func FillIfEmpty[T comparable](existing []T, compute func() []T) []T {
	if len(existing) > 0 || compute == nil {
		return existing
	}
	return distinct(compute())
}

// UnionOrFill behaves as FillIfEmpty for an empty collection. For a
// populated one it always invokes compute and returns the distinct union,
// existing elements first. existing is never modified.
func UnionOrFill[T comparable](existing []T, compute func() []T) []T {
	if len(existing) == 0 {
		return FillIfEmpty(existing, compute)
	}
	if compute == nil {
		return existing
	}
	computed := compute()
	if len(computed) == 0 {
		return existing
	}
	merged := make([]T, 0, len(existing)+len(computed))
	merged = append(merged, existing...)
	merged = append(merged, computed...)
	return apidoc.Distinct(merged)
}

// ApplyStrategy merges a collection field according to p: UnionOrFill
// when p says union, FillIfEmpty otherwise. A nil policy reads the
// process-wide strategy.
func ApplyStrategy[T comparable](p Policy, existing []T, compute func() []T) []T {
	if p == nil {
		p = Global
	}
	if p.ShouldUnion() {
		return UnionOrFill(existing, compute)
	}
	return FillIfEmpty(existing, compute)
}

// FillString returns existing when it is non-empty, otherwise the result
// of compute.
func FillString(existing string, compute func() string) string {
	if existing != "" || compute == nil {
		return existing
	}
	return compute()
}

// FillPtr returns existing when it is non-nil, otherwise the result of
// compute.
func FillPtr[T any](existing *T, compute func() *T) *T {
	if existing != nil || compute == nil {
		return existing
	}
	return compute()
}

// distinct deduplicates a copy of values so slices owned by a source are
// left untouched.
func distinct[T comparable](values []T) []T {
	if len(values) == 0 {
		return values
	}
	return apidoc.Distinct(slices.Clone(values))
}
