// Package signature provides helper functions for handling the blockchain
// hashing needs.
package signature

import (
	"crypto"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"math"
	"strconv"
	"strings"
)

// ZeroHash is the previous hash value carried by the genesis block.
const ZeroHash string = "0"

// ErrHashUnavailable is returned when the SHA-256 primitive is not linked
// into the running binary. Nothing in the chain can be built without it.
var ErrHashUnavailable = errors.New("sha256 hash primitive unavailable")

// =============================================================================

// Available reports whether the hash primitive required by the chain can
// be used.
func Available() error {
	if !crypto.SHA256.Available() {
		return ErrHashUnavailable
	}

	return nil
}

// Hash returns the SHA-256 digest of the data as 64 lowercase hex characters.
func Hash(data string) string {
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}

// FormatAmount renders an amount the way it is fed into a block hash. The
// shortest decimal that round trips is used. Values in [1e-3, 1e7) are
// written in plain notation and always carry a fractional part, anything
// else uses scientific notation with a capital E and no exponent sign for
// positive exponents. Changing this function changes every block hash.
func FormatAmount(amount float64) string {
	switch {
	case math.IsNaN(amount):
		return "NaN"
	case math.IsInf(amount, 1):
		return "Infinity"
	case math.IsInf(amount, -1):
		return "-Infinity"
	}

	abs := math.Abs(amount)
	if abs == 0 || (abs >= 1e-3 && abs < 1e7) {
		s := strconv.FormatFloat(amount, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}

	// Go renders 1e+07 as "1e+07", the chain format is "1.0E7".
	s := strconv.FormatFloat(amount, 'E', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "E")
	if !strings.Contains(mantissa, ".") {
		mantissa += ".0"
	}

	neg := strings.HasPrefix(exp, "-")
	exp = strings.TrimLeft(exp, "+-")
	exp = strings.TrimLeft(exp, "0")
	if exp == "" {
		exp = "0"
	}
	if neg {
		exp = "-" + exp
	}

	return mantissa + "E" + exp
}
