package walk

import (
	"fmt"
	"strconv"
)

// MaxPosition is the largest value a register of the given width can hold.
func MaxPosition(bits int) int {
	if bits <= 0 {
		return 0
	}
	return 1<<bits - 1
}

// FormatBits renders v as a zero-padded binary string of the given width.
func FormatBits(v, bits int) string {
	return fmt.Sprintf("%0*b", bits, v)
}

func ParseBits(s string) (int, error) {
	v, err := strconv.ParseUint(s, 2, 31)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}
