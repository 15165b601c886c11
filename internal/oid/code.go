package oid

import (
	"context"
	"fmt"
)

// ResolveActionCode returns the durable code for name, assigning and
// recording a fresh one on first use.
//
// A known name returns its stored code unchanged. A new name takes the
// value after the current maximum, wrapping to a scan from the range
// floor when the maximum sits at the ceiling. A fully occupied range
// fails with ErrSpaceExhausted; at that point no further distinct
// actions can ever be created without manual cleanup.
func ResolveActionCode(ctx context.Context, store Store, name string) (int, error) {
	codes, err := store.ActionCodes(ctx)
	if err != nil {
		return 0, fmt.Errorf("list action codes: %w", err)
	}
	if code, ok := codes[name]; ok {
		return code, nil
	}

	candidate, err := nextActionCode(codes)
	if err != nil {
		return 0, err
	}
	ac, err := NewActionCode(name, candidate)
	if err != nil {
		return 0, err
	}
	if err := store.InsertActionCode(ctx, ac); err != nil {
		return 0, fmt.Errorf("record action code %q=%d: %w", name, candidate, err)
	}
	return candidate, nil
}

func nextActionCode(codes map[string]int) (int, error) {
	maxCode := 0
	used := make(map[int]struct{}, len(codes))
	for _, code := range codes {
		if code < ActionCodeMin || code > ActionCodeMax {
			continue
		}
		used[code] = struct{}{}
		if code > maxCode {
			maxCode = code
		}
	}

	if maxCode == 0 {
		return ActionCodeMin, nil
	}
	if maxCode < ActionCodeMax {
		return maxCode + 1, nil
	}
	for code := ActionCodeMin; code <= ActionCodeMax; code++ {
		if _, taken := used[code]; !taken {
			return code, nil
		}
	}
	return 0, fmt.Errorf("%w: all action codes %d-%d in use", ErrSpaceExhausted, ActionCodeMin, ActionCodeMax)
}
