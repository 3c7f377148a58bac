package usecase

import (
	"fmt"
	"unicode"

	"github.com/uragrafica/printflow/internal/domain/model"
)

// NextNumber computes the advisory next order number: the numeric digits of
// every order number are parsed (other characters ignored, unparseable
// values discarded) and the maximum plus one is formatted zero-padded to at
// least three digits. An empty record set yields "001".
//
// The suggestion reserves nothing; two clients creating at the same time can
// race to the same number.
func NextNumber(orders []model.Order) string {
	max := 0
	for _, o := range orders {
		if n, ok := parseDigits(o.Number); ok && n > max {
			max = n
		}
	}
	return fmt.Sprintf("%03d", max+1)
}

func parseDigits(s string) (int, bool) {
	n := 0
	seen := false
	for _, r := range s {
		if !unicode.IsDigit(r) {
			continue
		}
		seen = true
		n = n*10 + int(r-'0')
	}
	return n, seen
}
