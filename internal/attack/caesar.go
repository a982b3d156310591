package attack

import (
	"context"

	"github.com/dante-signal31/cifra/internal/cipher"
	"github.com/dante-signal31/cifra/internal/dictionary"
)

func assessCaesar(ciphered string, corpus *dictionary.Corpus, charset string) AssessFunc[int] {
	return func(_ context.Context, key int) (Result[int], error) {
		deciphered := cipher.DecipherCaesar(ciphered, key, charset)
		return Result[int]{Key: key, Identified: corpus.IdentifyText(deciphered)}, nil
	}
}

// BruteForceCaesar tries every non-trivial shift of the charset.
func BruteForceCaesar(ctx context.Context, ciphered string, corpus *dictionary.Corpus, charset string, progress func(done int)) (Result[int], error) {
	keys := IntegerKeys(1, len([]rune(charset)))
	return BruteForce(ctx, keys, assessCaesar(ciphered, corpus, charset), progress)
}

// BruteForceCaesarParallel is BruteForceCaesar on a worker pool.
func BruteForceCaesarParallel(ctx context.Context, ciphered string, corpus *dictionary.Corpus, charset string, workers int, progress func(done int)) (Result[int], error) {
	keys := IntegerKeys(1, len([]rune(charset)))
	return BruteForceParallel(ctx, keys, assessCaesar(ciphered, corpus, charset), workers, progress)
}
