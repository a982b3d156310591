package attack

import (
	"context"
	"errors"

	"github.com/dante-signal31/cifra/internal/cipher"
	"github.com/dante-signal31/cifra/internal/dictionary"
)

func assessTransposition(ciphered string, corpus *dictionary.Corpus) AssessFunc[int] {
	return func(_ context.Context, key int) (Result[int], error) {
		deciphered, err := cipher.DecipherTransposition(ciphered, key)
		if err != nil {
			if errors.Is(err, cipher.ErrInvalidKey) {
				return Result[int]{Key: key}, nil
			}
			return Result[int]{}, err
		}
		return Result[int]{Key: key, Identified: corpus.IdentifyText(deciphered)}, nil
	}
}

// BruteForceTransposition tries every column count below the text length.
func BruteForceTransposition(ctx context.Context, ciphered string, corpus *dictionary.Corpus, progress func(done int)) (Result[int], error) {
	keys := IntegerKeys(1, len([]rune(ciphered)))
	return BruteForce(ctx, keys, assessTransposition(ciphered, corpus), progress)
}

// BruteForceTranspositionParallel is BruteForceTransposition on a worker
// pool.
func BruteForceTranspositionParallel(ctx context.Context, ciphered string, corpus *dictionary.Corpus, workers int, progress func(done int)) (Result[int], error) {
	keys := IntegerKeys(1, len([]rune(ciphered)))
	return BruteForceParallel(ctx, keys, assessTransposition(ciphered, corpus), workers, progress)
}
