package refnum

import (
	"crypto/rand"
	"math/big"
)

// Prefix for every generated reference.
const Prefix = "REF"

var space = big.NewInt(900_000)

// New returns a short human-readable reference like "REF483920": the REF
// prefix plus six digits, first digit never zero. Uniqueness is best-effort
// (900k combinations); callers persisting references behind a unique index
// should regenerate on collision.
func New() string {
	n, err := rand.Int(rand.Reader, space)
	if err != nil {
		// crypto/rand only fails if the OS entropy source is broken;
		// nothing sensible to return in that case.
		panic(err)
	}
	digits := n.Add(n, big.NewInt(100_000)) // shift into [100000, 999999]
	return Prefix + digits.String()
}
