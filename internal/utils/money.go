package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatAmount renders an integer rupee amount exactly as it is submitted
// to the payment gateway: plain digits, no separators, no decimals.
func FormatAmount(amount int64) string {
	return strconv.FormatInt(amount, 10)
}

// FormatNPR renders an amount for tickets and emails, e.g. "NRs 1,500".
func FormatNPR(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%sNRs %s", sign, formatThousand(amount))
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return out.String()
}
