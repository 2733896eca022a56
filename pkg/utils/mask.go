package utils

// MaskToken redacts a bearer token for logging, keeping a short prefix so
// different tokens remain distinguishable in the logs.
func MaskToken(token string) string {
	const keep = 4
	if len(token) <= keep {
		return "***"
	}
	return token[:keep] + "***"
}
