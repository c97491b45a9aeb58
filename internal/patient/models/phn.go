package models

var phnWeights = [8]int{2, 4, 8, 5, 10, 9, 7, 3}

// IsValidPhn reports whether phn is a well formed BC personal health number:
// ten digits, a leading 9, and a mod-11 check digit in the last position.
func IsValidPhn(phn string) bool {
	if len(phn) != 10 || phn[0] != '9' {
		return false
	}
	sum := 0
	for i := range 10 {
		if phn[i] < '0' || phn[i] > '9' {
			return false
		}
		if i >= 1 && i <= 8 {
			sum += (int(phn[i]-'0') * phnWeights[i-1]) % 11
		}
	}
	check := 11 - sum%11
	if check >= 10 {
		return false
	}
	return int(phn[9]-'0') == check
}
