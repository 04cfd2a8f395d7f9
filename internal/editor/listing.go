package editor

import (
	"fmt"
	"strings"
)

// FormatWord renders one listing line, e.g.
//
//	Addr 00: 00000000000000000000000000000001  (0x00000001)
//
// followed by a newline. Addresses wider than two digits are not truncated.
func FormatWord(addr int, word uint32) string {
	return fmt.Sprintf("Addr %02d: %032b  (0x%08X)\n", addr, word, word)
}

// FormatListing renders one line per word in order.
func FormatListing(words []uint32) string {
	var b strings.Builder
	b.Grow(len(words) * 58)
	for i, w := range words {
		b.WriteString(FormatWord(i, w))
	}
	return b.String()
}
