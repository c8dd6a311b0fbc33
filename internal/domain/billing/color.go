package billing

import (
	"fmt"
	"unicode/utf16"
)

const (
	colorChannelMin   = 50
	colorChannelRange = 155
)

// CategoryColor derives a stable hex color for a category name. Each channel
// falls in [50, 204].
func CategoryColor(name string) string {
	var hash int32
	for _, unit := range utf16.Encode([]rune(name)) {
		hash = int32(unit) + (hash << 5) - hash
	}

	h := uint32(hash)
	r := int((h&0xFF0000)>>16)%colorChannelRange + colorChannelMin
	g := int((h&0x00FF00)>>8)%colorChannelRange + colorChannelMin
	b := int(h&0x0000FF)%colorChannelRange + colorChannelMin

	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}
