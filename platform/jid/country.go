package jid

const (
	countryMexico    = "52"
	countryArgentina = "54"
	countryBrazil    = "55"
)

// FormatMXAR drops the redundant mobile digit that follows the country code
// of 13-digit Mexican and Argentinian numbers. Any other input, including
// 12, 14 or 15 digit MX/AR numbers and strings with non-digits, is returned
// unchanged.
func FormatMXAR(digits string) string {
	if len(digits) != 13 || !allDigits(digits) {
		return digits
	}

	cc := digits[:2]
	if cc != countryMexico && cc != countryArgentina {
		return digits
	}

	return cc + digits[3:]
}

// FormatBR folds Brazilian numbers towards the 13-digit form used by
// WhatsApp. Layout is CC(2) DDD(2) followed by the subscriber part.
//
//   - 14 digits: CC DDD P1P2 REST(8) becomes CC DDD P2 REST, whether or not
//     the prefix is a duplicated "99".
//   - 13 digits: returned unchanged, both for low area codes or non-mobile
//     leading digits and for the remaining ninth-digit geographies.
//   - 12 digits and anything else: returned unchanged.
func FormatBR(digits string) string {
	if len(digits) < 2 || digits[:2] != countryBrazil || !allDigits(digits) {
		return digits
	}

	if len(digits) == 14 {
		return digits[:4] + digits[5:]
	}
	return digits
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(rune(s[i])) {
			return false
		}
	}
	return true
}
