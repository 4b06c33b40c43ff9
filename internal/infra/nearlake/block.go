package nearlake

import (
	"context"
	"errors"
	"fmt"

	"github.com/openlake/socialnotify/internal/lakestream"
)

// blockKey returns the store key of the block header object for a height.
// Heights are zero-padded to 12 digits, matching the lake layout.
func blockKey(height uint64) string {
	return fmt.Sprintf("%012d/block.json", height)
}

// shardKey returns the store key of one shard object for a height.
func shardKey(height uint64, shard uint64) string {
	return fmt.Sprintf("%012d/shard_%d.json", height, shard)
}

// FetchBlock implements the lakestream.Fetcher interface.
//
// It fetches the height's block header followed by every shard the header
// declares, and assembles them into a single streamer message. A 404 on the
// block object maps to lakestream.ErrBlockNotFound; a 404 on a shard object
// is an inconsistency in the store and surfaces as an error.
func (c *client) FetchBlock(ctx context.Context, height uint64) (lakestream.StreamerMessage, error) {
	var block lakestream.Block
	if err := c.fetchJSON(ctx, blockKey(height), &block); err != nil {
		if errors.Is(err, errNotFound) {
			err = fmt.Errorf("%w: %d", lakestream.ErrBlockNotFound, height)
		}

		return lakestream.StreamerMessage{}, err
	}

	shards := make([]lakestream.Shard, 0, block.Header.ChunksIncluded)
	for i := uint64(0); i < block.Header.ChunksIncluded; i++ {
		var shard lakestream.Shard
		if err := c.fetchJSON(ctx, shardKey(height, i), &shard); err != nil {
			return lakestream.StreamerMessage{}, fmt.Errorf("fetching shard %d of block %d: %w", i, height, err)
		}

		shards = append(shards, shard)
	}

	return lakestream.StreamerMessage{
		Block:  block,
		Shards: shards,
	}, nil
}

// Compile-time assertion that the client satisfies lakestream.Fetcher.
var _ lakestream.Fetcher = (*client)(nil)
