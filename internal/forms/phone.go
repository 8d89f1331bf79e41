package forms

import "strings"

// FocusSeed is the value an empty phone field receives on focus, so the user
// types only the area code onward.
const FocusSeed = "+1 "

// PhoneMaxLength caps the rendered input: "+1 (123) 456-7890" is 17 runes.
const PhoneMaxLength = 17

// FormatPhoneNumber reformats whatever the user has typed into the +1 (xxx)
// xxx-xxxx pattern, progressively as digits accumulate. Non-digits are
// stripped first, so pasted values with punctuation come out clean. The
// leading digit is the country code and stays folded into the "+1 " prefix.
func FormatPhoneNumber(raw string) string {
	digits := stripNonDigits(raw)
	switch d := len(digits); {
	case d <= 1:
		return FocusSeed
	case d <= 4:
		return "+1 (" + digits[1:]
	case d <= 7:
		return "+1 (" + digits[1:4] + ") " + digits[4:]
	default:
		return "+1 (" + digits[1:4] + ") " + digits[4:7] + "-" + digits[7:]
	}
}

// AdjustCaret shifts a caret position by the length delta introduced by
// formatting, clamped to the formatted string, so the caret doesn't jump
// when punctuation is inserted ahead of it.
func AdjustCaret(pos, rawLen, formattedLen int) int {
	adjusted := pos + (formattedLen - rawLen)
	if adjusted < 0 {
		return 0
	}
	if adjusted > formattedLen {
		return formattedLen
	}
	return adjusted
}

func stripNonDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
