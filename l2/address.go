// Package l2 implements the state engine of a single L2 cache operating
// in a multi-processor MESI coherence domain: address decomposition,
// set-associative line storage, tree-pseudo-LRU replacement, a bus and
// message sink, and the eight trace-driven operation handlers.
package l2

const (
	// NumSets is the number of addressable cache sets (14-bit index).
	NumSets = 16384
	// Ways is the associativity of each set (4-bit way selector).
	Ways = 16
	// ByteOffsetBits is the width of the byte-offset field.
	ByteOffsetBits = 6
	// IndexBits is the width of the set-index field.
	IndexBits = 14
	// TagBits is the width of the tag field (address width minus offset and index).
	TagBits = 12

	byteOffsetMask = 1<<ByteOffsetBits - 1
	indexMask      = 1<<IndexBits - 1
	tagMask        = 1<<TagBits - 1
)

// Address is the decomposition of a 32-bit reference address into the
// fields the cache uses to locate a line: byte_offset[5:0], index[19:6],
// tag[31:20].
type Address struct {
	ByteOffset uint32
	Index      uint32
	Tag        uint32
}

// Decompose splits a 32-bit address into its byte offset, set index, and
// tag fields.
func Decompose(addr uint32) Address {
	return Address{
		ByteOffset: addr & byteOffsetMask,
		Index:      (addr >> ByteOffsetBits) & indexMask,
		Tag:        (addr >> (ByteOffsetBits + IndexBits)) & tagMask,
	}
}

// Aligned reconstructs the cache-aligned address for a tag/index pair,
// with the byte offset zeroed. Every bus operation and message emitted by
// a handler carries this address, never the raw reference address.
func Aligned(tag, index uint32) uint32 {
	return (tag << (ByteOffsetBits + IndexBits)) | (index << ByteOffsetBits)
}
