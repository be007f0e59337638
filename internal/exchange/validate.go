package exchange

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/acksonp2c/pscbot/internal/orders"
)

var (
	legacyLTCRe = regexp.MustCompile(`^[LM3][a-km-zA-HJ-NP-Z1-9]{26,33}$`)
	bech32LTCRe = regexp.MustCompile(`^ltc1[02-9ac-hj-np-z]{39,59}$`)
)

// Validators gate draft transitions. A nil field uses the default check.
type Validators struct {
	Address func(string) error
	Code    func(string) error
	Proof   func(MediaMessage) error
}

// DefaultValidators returns the stock checks. strictAddress enables the
// Litecoin address format check instead of a non-empty check.
func DefaultValidators(strictAddress bool) Validators {
	v := Validators{
		Address: NonEmpty("address"),
		Code:    NonEmpty("code"),
		Proof:   ImageProof,
	}
	if strictAddress {
		v.Address = LitecoinAddress
	}
	return v
}

func (v Validators) withDefaults() Validators {
	d := DefaultValidators(false)
	if v.Address == nil {
		v.Address = d.Address
	}
	if v.Code == nil {
		v.Code = d.Code
	}
	if v.Proof == nil {
		v.Proof = d.Proof
	}
	return v
}

// WithMaxLength limits the address and the code to n runes on top of the
// existing checks. n <= 0 returns v unchanged.
func (v Validators) WithMaxLength(n int) Validators {
	if n <= 0 {
		return v
	}
	v = v.withDefaults()
	v.Address = maxLength("address", n, v.Address)
	v.Code = maxLength("code", n, v.Code)
	return v
}

// NonEmpty accepts any non-blank value.
func NonEmpty(field string) func(string) error {
	op := "validate_" + field
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return validationError(op, field+" is empty")
		}
		return nil
	}
}

func maxLength(field string, n int, next func(string) error) func(string) error {
	op := "validate_" + field
	return func(s string) error {
		if utf8.RuneCountInString(s) > n {
			return validationError(op, fmt.Sprintf("%s is longer than %d characters", field, n))
		}
		return next(s)
	}
}

// LitecoinAddress accepts legacy (L, M, 3) and bech32 (ltc1) addresses.
func LitecoinAddress(s string) error {
	s = strings.TrimSpace(s)
	if legacyLTCRe.MatchString(s) || bech32LTCRe.MatchString(strings.ToLower(s)) {
		return nil
	}
	return validationError("validate_address", "not a litecoin address")
}

// ImageProof accepts photos and documents with an image MIME type.
func ImageProof(m MediaMessage) error {
	if strings.TrimSpace(m.Ref) == "" {
		return validationError("validate_proof", "missing file reference")
	}
	switch m.Kind {
	case orders.ProofPhoto:
		return nil
	case orders.ProofDocument:
		if strings.HasPrefix(strings.ToLower(m.MIME), "image/") {
			return nil
		}
		return validationError("validate_proof", "document is not an image")
	}
	return validationError("validate_proof", "unsupported media kind")
}
