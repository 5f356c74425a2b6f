package lexer

import "sync"

// bufferPool recycles token buffers of DefaultBufferSize bytes, which is what
// almost every session allocates. Buffers of other sizes are left to the GC.
var bufferPool = sync.Pool{
	New: func() interface{} {
		b := make([]byte, DefaultBufferSize)
		return &b
	},
}

// getBuffer returns a buffer of exactly size bytes.
func getBuffer(size int) []byte {
	if size != DefaultBufferSize {
		return make([]byte, size)
	}
	p := bufferPool.Get().(*[]byte)
	return (*p)[:size]
}

// putBuffer returns buf to the pool if it has the pooled capacity.
// Rows never alias the token buffer, so recycling it is safe once a session ends.
func putBuffer(buf []byte) {
	if cap(buf) != DefaultBufferSize {
		return
	}
	buf = buf[:cap(buf)]
	bufferPool.Put(&buf)
}
