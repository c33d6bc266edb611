// Package idgen generates the caller-facing identifiers of the bank:
// account numbers, transaction references and loan numbers. All randomness
// comes from crypto/rand.
package idgen

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const (
	// bankCode prefixes every account number.
	bankCode = "1000"

	// MaxGenerationAttempts bounds uniqueness retries before the caller
	// fails with apperrors.ErrGenerationExhausted.
	MaxGenerationAttempts = 10

	// LoanNumberPrefix distinguishes loan numbers from loan IDs.
	LoanNumberPrefix = "LN"
)

// randomDigits returns n uniformly random decimal digits, zero padded.
func randomDigits(n int) (string, error) {
	bound := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
	v, err := rand.Int(rand.Reader, bound)
	if err != nil {
		return "", fmt.Errorf("failed to read random digits: %w", err)
	}
	return fmt.Sprintf("%0*d", n, v), nil
}

// NewAccountNumber generates a candidate 12-digit account number:
// bank code (4) + branch code (4) + random (4). Uniqueness against the
// account store is the caller's responsibility; collisions are expected and
// retried up to MaxGenerationAttempts.
func NewAccountNumber() (string, error) {
	branch, err := randomDigits(4)
	if err != nil {
		return "", err
	}
	random, err := randomDigits(4)
	if err != nil {
		return "", err
	}
	return bankCode + branch + random, nil
}

// NewTransactionReference generates a transaction reference of the form
// TXN<yyyymmddhhmmss><12 random digits>. The 12-digit random tail makes
// collisions within the same second vanishingly unlikely, so references are
// unique without a store round trip.
func NewTransactionReference() (string, error) {
	tail, err := randomDigits(12)
	if err != nil {
		return "", err
	}
	return "TXN" + time.Now().UTC().Format("20060102150405") + tail, nil
}

// NewLoanNumber generates a candidate loan number of the form
// LN<yyyymmdd><6 random digits>. Like account numbers, uniqueness is
// re-checked against the loan store with bounded retries.
func NewLoanNumber() (string, error) {
	tail, err := randomDigits(6)
	if err != nil {
		return "", err
	}
	return LoanNumberPrefix + time.Now().UTC().Format("20060102") + tail, nil
}
