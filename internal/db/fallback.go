package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// IsNotFound reports whether err is the driver's empty-result error.
func IsNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// FindOneFallback performs a dual-schema point read. The versioned read runs
// first; when it finds nothing and fallback is enabled, the identical read is
// repeated against the legacy collection. A missing document is returned as
// (nil, nil) so callers never need to know which generation was empty.
func FindOneFallback[T any](ctx context.Context, fallback bool, versioned, legacy func(context.Context) (*T, error)) (*T, error) {
	doc, err := versioned(ctx)
	if err != nil && !IsNotFound(err) {
		return nil, err
	}
	if doc != nil {
		return doc, nil
	}
	if !fallback {
		return nil, nil
	}

	doc, err = legacy(ctx)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return doc, nil
}

// FindManyFallback performs a dual-schema list read: the versioned query runs
// first, and an empty result repeats the query against the legacy collection
// when fallback is enabled.
func FindManyFallback[T any](ctx context.Context, fallback bool, versioned, legacy func(context.Context) ([]T, error)) ([]T, error) {
	docs, err := versioned(ctx)
	if err != nil {
		return nil, err
	}
	if len(docs) > 0 || !fallback {
		return docs, nil
	}
	return legacy(ctx)
}

// IsMissingIndexErr reports whether a query failed because the store could
// not serve an ordered query from an index. Callers switch to the capped
// full-scan degraded path on this condition.
func IsMissingIndexErr(err error) bool {
	if err == nil {
		return false
	}
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		// 292: QueryExceededMemoryLimitNoDiskUseAllowed, an unindexed sort
		// that outgrew the in-memory sort limit.
		return cmdErr.Code == 292 || cmdErr.HasErrorLabel("IndexNotFound")
	}
	return false
}
