package attack

import (
	"context"
	"errors"

	"github.com/dante-signal31/cifra/internal/cipher"
	"github.com/dante-signal31/cifra/internal/dictionary"
)

func assessAffine(ciphered string, corpus *dictionary.Corpus, charset string) AssessFunc[int] {
	return func(_ context.Context, key int) (Result[int], error) {
		deciphered, err := cipher.DecipherAffine(ciphered, key, charset)
		if err != nil {
			if errors.Is(err, cipher.ErrInvalidKey) {
				// Not every integer of the range is a usable key.
				return Result[int]{Key: key}, nil
			}
			return Result[int]{}, err
		}
		return Result[int]{Key: key, Identified: corpus.IdentifyText(deciphered)}, nil
	}
}

// BruteForceAffine tries every packed key of the charset's key space,
// scoring the invalid ones zero.
func BruteForceAffine(ctx context.Context, ciphered string, corpus *dictionary.Corpus, charset string, progress func(done int)) (Result[int], error) {
	n := len([]rune(charset))
	keys := IntegerKeys(1, n*n)
	return BruteForce(ctx, keys, assessAffine(ciphered, corpus, charset), progress)
}

// BruteForceAffineParallel is BruteForceAffine on a worker pool.
func BruteForceAffineParallel(ctx context.Context, ciphered string, corpus *dictionary.Corpus, charset string, workers int, progress func(done int)) (Result[int], error) {
	n := len([]rune(charset))
	keys := IntegerKeys(1, n*n)
	return BruteForceParallel(ctx, keys, assessAffine(ciphered, corpus, charset), workers, progress)
}
