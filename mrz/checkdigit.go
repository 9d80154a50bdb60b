package mrz

type charClass int

const (
	classOther charClass = iota
	classDigit
	classLetter
)

var checkDigitWeights = [3]int{7, 3, 1}

// classify maps any byte to its class and MRZ value. Filler and every
// byte that is neither a digit nor an uppercase letter count as zero.
func classify(c byte) (charClass, int) {
	switch {
	case c >= '0' && c <= '9':
		return classDigit, int(c - '0')
	case c >= 'A' && c <= 'Z':
		return classLetter, int(c-'A') + 10
	default:
		return classOther, 0
	}
}

// CheckDigit computes the ICAO 9303 check digit of s. The input is taken
// as-is; padding to a field width is the caller's job.
func CheckDigit(s string) int {
	sum := 0
	for i := 0; i < len(s); i++ {
		_, value := classify(s[i])
		sum += value * checkDigitWeights[i%3]
	}
	return sum % 10
}

func checkDigitChar(s string) byte {
	return byte('0' + CheckDigit(s))
}

// isMRZChar reports whether c is allowed in an emitted line.
func isMRZChar(c byte) bool {
	class, _ := classify(c)
	return class != classOther || c == Filler
}
