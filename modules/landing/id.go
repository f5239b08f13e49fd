package landing

import "math/rand"

const (
	idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 8
)

// NewID - 8-character lowercase alphanumeric landing id. With 36^8 possible
// ids collisions are not checked for.
func NewID() string {
	id := make([]byte, idLength)
	for i := range id {
		id[i] = idAlphabet[rand.Intn(len(idAlphabet))]
	}
	return string(id)
}

// isValidID - guards file paths against ids that did not come from NewID.
func isValidID(id string) bool {
	if len(id) != idLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
