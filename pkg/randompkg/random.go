// Package randompkg provides functionality for generating random wallet test fixtures.
package randompkg

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	alphabet = "abcdefghijklmnopqrstuvwxyz"
	upper    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Intn is a shortcut for generating a random integer between 0 and max using crypto/rand.
func Intn(max int) int64 {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic(err)
	}

	return nBig.Int64()
}

// IntBetween generates a random integer in [min, max].
func IntBetween(min, max int) int64 {
	return int64(min) + Intn(max-min+1)
}

func fromAlphabet(a string, n int) string {
	var sb strings.Builder

	k := len(a)

	for i := 0; i < n; i++ {
		_ = sb.WriteByte(a[Intn(k)]) // The returned err is always nil.
	}

	return sb.String()
}

// String generates a random lowercase string of length n.
func String(n int) string {
	return fromAlphabet(alphabet, n)
}

// Name generates a random capitalised first or last name.
func Name() string {
	return fromAlphabet(upper, 1) + String(7)
}

// Email generates a random email.
func Email() string {
	return fmt.Sprintf("%s@email.com", String(10))
}

// Password generates a random password that passes registration rules.
func Password() string {
	return String(12)
}

// ServiceCode generates a random upper case service code.
func ServiceCode() string {
	return fromAlphabet(upper, 6)
}

// Amount generates a random positive amount with at most two decimal places in [min, max].
func Amount(min, max int) decimal.Decimal {
	cents := IntBetween(min*100, max*100)
	return decimal.New(cents, -2)
}
