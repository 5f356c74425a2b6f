package lexer

// Anchor slots. Anchors are offsets into tokenBuffer.data, or unset.
const (
	anchorTokenStart = iota
	anchorTokenEnd
	anchorRowStart
	anchorSepMark
	numAnchors
)

const unset = -1

// tokenBuffer holds the unconsumed tail of the input plus the anchors that
// point into it.
//
// Offsets are relative to data[0]. Growing copies the live bytes to the same
// offsets in a larger array, so anchors survive a reallocation unchanged;
// compaction shifts the kept bytes to offset 0 and rebiases every anchor by the
// discarded length.
type tokenBuffer struct {
	data      []byte // len(data) is the allocated size
	have      int    // number of valid bytes in data
	base      int64  // input offset of data[0]
	increment int
	limit     int
	eof       bool
	borrowed  bool // data belongs to the caller; never written or pooled
	anchors   [numAnchors]int
	onGrow    func(from, to int)
}

func newTokenBuffer(increment, limit int, onGrow func(from, to int)) tokenBuffer {
	b := tokenBuffer{increment: increment, limit: limit, onGrow: onGrow}
	b.clearAnchors()
	return b
}

func (b *tokenBuffer) clearAnchors() {
	for i := range b.anchors {
		b.anchors[i] = unset
	}
}

// free returns the space left after the valid bytes.
func (b *tokenBuffer) free() int {
	return len(b.data) - b.have
}

// adopt makes an in-memory payload the whole buffer. The input is complete,
// so no fill or compaction ever happens afterwards.
func (b *tokenBuffer) adopt(payload []byte) {
	b.release()
	b.data = payload
	b.have = len(payload)
	b.borrowed = true
	b.eof = true
}

// grow extends the buffer by one increment, bounded by limit.
func (b *tokenBuffer) grow() error {
	from := len(b.data)
	if from == 0 {
		b.data = getBuffer(b.increment)
		return nil
	}
	to := from + b.increment
	if b.limit > 0 && to > b.limit {
		if from >= b.limit {
			return ErrTokenTooLarge
		}
		to = b.limit
	}
	next := make([]byte, to)
	copy(next, b.data[:b.have])
	putBuffer(b.data)
	b.data = next
	if b.onGrow != nil {
		b.onGrow(from, to)
	}
	return nil
}

// fill pulls as many bytes as fit into the free space. A short read marks the
// source exhausted; from then on the window ends with the sentinel position.
func (b *tokenBuffer) fill(src Source) (int, error) {
	if b.eof {
		return 0, nil
	}
	if b.free() == 0 {
		if err := b.grow(); err != nil {
			return 0, err
		}
	}
	want := b.free()
	n, err := src.Fill(b.data[b.have:])
	b.have += n
	if err != nil {
		return n, err
	}
	if n < want {
		b.eof = true
	}
	return n, nil
}

// compact discards the consumed prefix and returns its length.
//
// The kept region starts at the token start, or at the row start too when
// pinRow is set. With no such anchor the whole window is consumed.
func (b *tokenBuffer) compact(pinRow bool) int {
	if b.borrowed {
		return 0
	}
	keep := b.have
	if ts := b.anchors[anchorTokenStart]; ts != unset {
		keep = ts
	}
	if pinRow {
		if rs := b.anchors[anchorRowStart]; rs != unset && rs < keep {
			keep = rs
		}
	}
	if keep == 0 {
		return 0
	}
	copy(b.data, b.data[keep:b.have])
	b.have -= keep
	b.base += int64(keep)
	b.rebias(-keep, keep)
	return keep
}

// rebias moves every live anchor at or after floor by delta and unsets the
// ones before it, which now point at discarded bytes.
func (b *tokenBuffer) rebias(delta, floor int) {
	for i, a := range b.anchors {
		switch {
		case a == unset:
		case a < floor:
			b.anchors[i] = unset
		default:
			b.anchors[i] = a + delta
		}
	}
}

// offset converts a buffer position into an input offset.
func (b *tokenBuffer) offset(pos int) int64 {
	return b.base + int64(pos)
}

// release gives an owned buffer back to the pool.
func (b *tokenBuffer) release() {
	if !b.borrowed && b.data != nil {
		putBuffer(b.data)
	}
	b.data = nil
	b.have = 0
	b.borrowed = false
}

// reset prepares the buffer for a new input, keeping an owned allocation.
func (b *tokenBuffer) reset() {
	if b.borrowed {
		b.data = nil
		b.borrowed = false
	}
	b.have = 0
	b.base = 0
	b.eof = false
	b.clearAnchors()
}
