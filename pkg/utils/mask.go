package utils

// MaskKey hides all but the last four characters of a credential so it can be
// logged for troubleshooting without leaking the secret.
func MaskKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
