// SPDX-License-Identifier: EPL-2.0

package bestaudio

import "container/list"

const (
	// blockFrames is the decode and cache granularity.
	blockFrames = 4096

	// DefaultMaxCacheSize bounds the decoded block cache of a new source.
	DefaultMaxCacheSize = 100 << 20
)

// block holds decoded packed frames [index*blockFrames, index*blockFrames+frames).
type block struct {
	index  int64
	frames int
	data   []byte
	elem   *list.Element
}

// blockCache is a byte-bounded LRU of decoded blocks.
type blockCache struct {
	max    int64
	size   int64
	lru    *list.List
	blocks map[int64]*block
}

func newBlockCache(max int64) *blockCache {
	return &blockCache{
		max:    max,
		lru:    list.New(),
		blocks: make(map[int64]*block),
	}
}

func (c *blockCache) get(index int64) (*block, bool) {
	b, ok := c.blocks[index]
	if ok {
		c.lru.MoveToFront(b.elem)
	}
	return b, ok
}

// put inserts b and evicts older blocks above the bound. b itself stays
// even when it alone exceeds the bound, until the next trim.
func (c *blockCache) put(b *block) {
	if old, ok := c.blocks[b.index]; ok {
		c.remove(old)
	}
	b.elem = c.lru.PushFront(b)
	c.blocks[b.index] = b
	c.size += int64(len(b.data))

	for c.size > c.max {
		oldest := c.lru.Back().Value.(*block)
		if oldest == b {
			break
		}
		c.remove(oldest)
	}
}

// trim evicts until the cache is within its bound.
func (c *blockCache) trim() {
	for c.size > c.max && c.lru.Len() > 0 {
		c.remove(c.lru.Back().Value.(*block))
	}
}

func (c *blockCache) setMax(max int64) {
	c.max = max
	c.trim()
}

func (c *blockCache) reset() {
	c.lru.Init()
	c.blocks = make(map[int64]*block)
	c.size = 0
}

func (c *blockCache) remove(b *block) {
	c.lru.Remove(b.elem)
	delete(c.blocks, b.index)
	c.size -= int64(len(b.data))
}
