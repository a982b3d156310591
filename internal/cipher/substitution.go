package cipher

import "fmt"

// SubstitutionKeyCause identifies the validation rule a substitution key
// broke.
type SubstitutionKeyCause int

const (
	SubstitutionWrongLength SubstitutionKeyCause = iota
	SubstitutionRepeatedCharacters
)

func (c SubstitutionKeyCause) String() string {
	switch c {
	case SubstitutionWrongLength:
		return "key length and charset length must be the same"
	case SubstitutionRepeatedCharacters:
		return "key must not have repeated characters"
	default:
		return "unknown cause"
	}
}

// InvalidSubstitutionKeyError reports a substitution key that is not a
// usable permutation of its charset.
type InvalidSubstitutionKeyError struct {
	Key     string
	Charset string
	Cause   SubstitutionKeyCause
}

func (e *InvalidSubstitutionKeyError) Error() string {
	return fmt.Sprintf("substitution key %q: %s", e.Key, e.Cause)
}

func (e *InvalidSubstitutionKeyError) Unwrap() error { return ErrInvalidKey }

// ValidateSubstitutionKey checks that key has exactly one substitute for
// every charset character.
func ValidateSubstitutionKey(key, charset string) error {
	keyRunes := []rune(key)
	if len(keyRunes) != len([]rune(charset)) {
		return &InvalidSubstitutionKeyError{Key: key, Charset: charset, Cause: SubstitutionWrongLength}
	}
	seen := make(map[rune]bool, len(keyRunes))
	for _, r := range keyRunes {
		if seen[r] {
			return &InvalidSubstitutionKeyError{Key: key, Charset: charset, Cause: SubstitutionRepeatedCharacters}
		}
		seen[r] = true
	}
	return nil
}

// Substitution ciphers text replacing every charset character by the key
// character at the same position, preserving case.
func Substitution(text, key, charset string) (string, error) {
	if err := ValidateSubstitutionKey(key, charset); err != nil {
		return "", err
	}
	return substituteText(text, charset, key), nil
}

// DecipherSubstitution reverses Substitution for the same key and
// charset.
func DecipherSubstitution(text, key, charset string) (string, error) {
	if err := ValidateSubstitutionKey(key, charset); err != nil {
		return "", err
	}
	return substituteText(text, key, charset), nil
}
