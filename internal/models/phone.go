package models

import (
	"fmt"
	"strings"
	"unicode"
)

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

// NormalizePhoneNumber converts user input to E.164. Ten-digit numbers are
// treated as North American.
func NormalizePhoneNumber(phone string) string {
	cleaned := digitsOnly(phone)
	if cleaned == "" {
		return ""
	}

	if len(cleaned) == 10 && !strings.HasPrefix(strings.TrimSpace(phone), "+") {
		return "+1" + cleaned
	}
	return "+" + cleaned
}

func IsValidPhoneNumber(phone string) bool {
	cleaned := digitsOnly(phone)

	if len(cleaned) < 10 || len(cleaned) > 15 {
		return false
	}

	badNumbers := map[string]bool{
		"0000000000": true,
		"1111111111": true,
		"1234567890": true,
		"9999999999": true,
		"0123456789": true,
	}
	if badNumbers[cleaned] || badNumbers[strings.TrimPrefix(cleaned, "1")] {
		return false
	}

	trimmed := strings.TrimSpace(phone)
	return strings.HasPrefix(trimmed, "+") || unicode.IsDigit(rune(trimmed[0])) || trimmed[0] == '('
}

// FormatPhoneNumber renders North American numbers as +1 (XXX) XXX-XXXX.
func FormatPhoneNumber(phone string) string {
	if strings.HasPrefix(phone, "+1") && len(phone) == 12 {
		return fmt.Sprintf("+1 (%s) %s-%s", phone[2:5], phone[5:8], phone[8:12])
	}
	return phone
}
