package domain

const maskFill = "****"

// Mask derives the display form stored in check history: first rune, a
// fixed fill, last rune. A one-rune password repeats that rune on both
// sides, so "a" becomes "a****a".
func Mask(password string) string {
	r := []rune(password)
	if len(r) == 0 {
		return maskFill
	}
	return string(r[0]) + maskFill + string(r[len(r)-1])
}
