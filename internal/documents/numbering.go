package documents

import (
	"fmt"
	"strconv"
	"strings"
)

// NextNumber derives the next sequential document number for a prefix from
// the numbers already present: the maximum parsed suffix plus one, zero-padded
// to three digits. It is a pure function of the existing documents, not a
// persisted counter, so deleting the highest-numbered document releases its
// number for reuse.
func NextNumber(docs []Document, prefix string) string {
	max := 0
	lead := prefix + "-"
	for _, d := range docs {
		if !strings.HasPrefix(d.Number, lead) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(d.Number, lead))
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s-%03d", prefix, max+1)
}
