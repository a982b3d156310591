package cipher

import "fmt"

// AffineKeyCause identifies the validation rule an affine key broke.
type AffineKeyCause int

const (
	AffineMultiplyingBelowZero AffineKeyCause = iota
	AffineMultiplyingZero
	AffineAddingBelowZero
	AffineAddingTooLong
	AffineKeysNotRelativelyPrime
)

func (c AffineKeyCause) String() string {
	switch c {
	case AffineMultiplyingBelowZero:
		return "multiplying key must not be negative"
	case AffineMultiplyingZero:
		return "multiplying key must not be zero"
	case AffineAddingBelowZero:
		return "adding key must not be negative"
	case AffineAddingTooLong:
		return "adding key must be smaller than the charset length"
	case AffineKeysNotRelativelyPrime:
		return "multiplying key and charset length must be relatively prime"
	default:
		return "unknown cause"
	}
}

// InvalidAffineKeyError reports an affine key that cannot cipher over the
// charset it was validated against, and which rule it broke.
type InvalidAffineKeyError struct {
	Key         int
	Multiplying int
	Adding      int
	Cause       AffineKeyCause
}

func (e *InvalidAffineKeyError) Error() string {
	return fmt.Sprintf("affine key %d (multiplying %d, adding %d): %s",
		e.Key, e.Multiplying, e.Adding, e.Cause)
}

func (e *InvalidAffineKeyError) Unwrap() error { return ErrInvalidKey }

// AffineKeyParts splits an affine key into its multiplying and adding
// components. The key encodes both as multiplying*charsetLength + adding.
func AffineKeyParts(key, charsetLength int) (multiplying, adding int) {
	multiplying = floorDiv(key, charsetLength)
	adding = key - multiplying*charsetLength
	return multiplying, adding
}

// ValidateAffineKey checks that key ciphers reversibly over a charset of
// charsetLength symbols. It returns an *InvalidAffineKeyError naming the
// broken rule, or nil.
func ValidateAffineKey(key, charsetLength int) error {
	multiplying, adding := AffineKeyParts(key, charsetLength)
	var cause AffineKeyCause
	switch {
	case multiplying < 0:
		cause = AffineMultiplyingBelowZero
	case multiplying == 0:
		cause = AffineMultiplyingZero
	case adding < 0:
		cause = AffineAddingBelowZero
	case adding > charsetLength-1:
		cause = AffineAddingTooLong
	case GCD(multiplying, charsetLength) != 1:
		cause = AffineKeysNotRelativelyPrime
	default:
		return nil
	}
	return &InvalidAffineKeyError{
		Key:         key,
		Multiplying: multiplying,
		Adding:      adding,
		Cause:       cause,
	}
}

// Affine ciphers text mapping every charset position p to
// p*multiplying + adding, with both components packed into key.
func Affine(text string, key int, charset string) (string, error) {
	n := len([]rune(charset))
	if err := ValidateAffineKey(key, n); err != nil {
		return "", err
	}
	multiplying, adding := AffineKeyParts(key, n)
	return offsetText(text, charset, func(position int) int {
		return position*multiplying + adding
	}), nil
}

// DecipherAffine reverses Affine for the same key and charset.
func DecipherAffine(text string, key int, charset string) (string, error) {
	n := len([]rune(charset))
	if err := ValidateAffineKey(key, n); err != nil {
		return "", err
	}
	multiplying, adding := AffineKeyParts(key, n)
	// Validation already guaranteed the inverse exists.
	inverse, _ := ModInverse(multiplying, n)
	return offsetText(text, charset, func(position int) int {
		return (position - adding) * inverse
	}), nil
}
