package render

import "bytes"

// IsBinary reports whether a buffer looks like binary content.
// A NUL byte anywhere is taken as binary, same heuristic git uses.
func IsBinary(buf []byte) bool {
	return bytes.IndexByte(buf, 0x00) != -1
}
