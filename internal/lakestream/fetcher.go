package lakestream

import (
	"context"
	"errors"
)

// ErrBlockNotFound is returned by a Fetcher when no block exists (yet) at the
// requested height. Heights at the chain tip resolve once the block is
// produced; heights inside a gap never resolve.
var ErrBlockNotFound = errors.New("no block found at height")

// Fetcher retrieves the full streamer message for a single block height from
// a NEAR Lake style data store.
type Fetcher interface {
	// FetchBlock retrieves the block at the given height along with all of
	// its shards.
	//
	// It returns ErrBlockNotFound when the height has no block, and any
	// other error when fetching or decoding fails.
	FetchBlock(ctx context.Context, height uint64) (StreamerMessage, error)
}

// BlockFetchFailure describes a block height that could not be fetched even
// after the configured retry policy was exhausted.
//
// Errors preserves the full error history: the original fetch error first,
// followed by any errors produced by retry attempts. Use
// errors.Join(failure.Errors...) to collapse them for logging.
type BlockFetchFailure struct {
	Height uint64  // Block height that failed to be fetched
	Errors []error // All errors encountered while fetching this height
}
