package store

import (
	"context"
	"sync"
)

// HybridStore serves reads and writes from the Drive store, with an optional
// local-directory fallback for development. The fallback only kicks in for
// the known "service account has no storage quota" write failure; every other
// Drive error propagates so misconfiguration stays visible.
type HybridStore[T Entity] struct {
	drive    Store[T]
	local    Store[T]
	fallback bool

	seedOnce sync.Once
}

func NewHybridStore[T Entity](drive, local Store[T], fallbackEnabled bool) *HybridStore[T] {
	return &HybridStore[T]{drive: drive, local: local, fallback: fallbackEnabled}
}

// seedLocalFromDrive copies the current Drive contents into the local store
// once, so a quota-blocked write lands on a complete local snapshot.
func (s *HybridStore[T]) seedLocalFromDrive(ctx context.Context) {
	s.seedOnce.Do(func() {
		items, err := s.drive.List(ctx)
		if err != nil {
			return
		}
		for _, item := range items {
			_, _ = s.local.Put(ctx, item)
		}
	})
}

func (s *HybridStore[T]) List(ctx context.Context) ([]T, error) {
	if !s.fallback {
		return s.drive.List(ctx)
	}

	driveItems, driveErr := s.drive.List(ctx)
	localItems, localErr := s.local.List(ctx)
	if driveErr != nil && localErr != nil {
		return nil, driveErr
	}

	byID := make(map[string]int, len(driveItems))
	merged := make([]T, 0, len(driveItems)+len(localItems))
	for _, item := range driveItems {
		byID[item.GetID()] = len(merged)
		merged = append(merged, item)
	}
	// Local records win: they hold writes Drive refused.
	for _, item := range localItems {
		if idx, ok := byID[item.GetID()]; ok {
			merged[idx] = item
			continue
		}
		byID[item.GetID()] = len(merged)
		merged = append(merged, item)
	}
	return merged, nil
}

func (s *HybridStore[T]) Get(ctx context.Context, id string) (T, bool, error) {
	if s.fallback {
		if item, ok, err := s.local.Get(ctx, id); err == nil && ok {
			return item, true, nil
		}
	}

	item, ok, err := s.drive.Get(ctx, id)
	if err != nil && s.fallback && IsNoQuotaError(err) {
		if localItem, localOK, localErr := s.local.Get(ctx, id); localErr == nil {
			return localItem, localOK, nil
		}
		var zero T
		return zero, false, nil
	}
	return item, ok, err
}

func (s *HybridStore[T]) Put(ctx context.Context, item T) (T, error) {
	stored, err := s.drive.Put(ctx, item)
	if err == nil {
		if s.fallback {
			// Drop any stale local copy now that Drive holds the latest write.
			_ = s.local.Delete(ctx, item.GetID())
		}
		return stored, nil
	}
	if s.fallback && IsNoQuotaError(err) {
		s.seedLocalFromDrive(ctx)
		return s.local.Put(ctx, item)
	}
	var zero T
	return zero, err
}

func (s *HybridStore[T]) Delete(ctx context.Context, id string) error {
	err := s.drive.Delete(ctx, id)
	if err == nil {
		if s.fallback {
			_ = s.local.Delete(ctx, id)
		}
		return nil
	}
	if s.fallback && IsNoQuotaError(err) {
		s.seedLocalFromDrive(ctx)
		return s.local.Delete(ctx, id)
	}
	return err
}
