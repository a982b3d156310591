// Package main provides the CLI entrypoint for cifra.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dante-signal31/cifra/internal/attack"
	"github.com/dante-signal31/cifra/internal/cipher"
	"github.com/dante-signal31/cifra/internal/config"
	"github.com/dante-signal31/cifra/internal/dictionary"
	"github.com/dante-signal31/cifra/internal/frequency"
	"github.com/dante-signal31/cifra/internal/keygen"
	"github.com/dante-signal31/cifra/internal/logging"
	"github.com/dante-signal31/cifra/internal/model"
	"github.com/dante-signal31/cifra/internal/progressui"
	"github.com/dante-signal31/cifra/internal/report"
	"github.com/dante-signal31/cifra/internal/store"
	"github.com/dante-signal31/cifra/internal/wordfreq"
)

const (
	algoCaesar        = "caesar"
	algoSubstitution  = "substitution"
	algoTransposition = "transposition"
	algoAffine        = "affine"
	algoVigenere      = "vigenere"
)

const (
	defaultVerbosity        = "info"
	defaultFetchListType    = "large"
	defaultFetchLimit       = 10000
	defaultSequenceLength   = 3
	defaultKeygenWords      = 3
	defaultKeygenTextLength = 50
)

var cliAlgorithms = []string{algoCaesar, algoSubstitution, algoTransposition, algoAffine, algoVigenere}

var (
	rootVerbosity string

	createWordsFile string

	fetchListType string
	fetchLimit    int

	cipherCharset string
	cipherOutFile string

	decipherCharset string
	decipherOutFile string

	attackCharset      string
	attackOutFile      string
	attackWorkers      int
	attackStatistical  bool
	attackMaxKeyLength int
	attackNoProgress   bool

	analyzeCharset        string
	analyzeSequenceLength int
	analyzeMaxKeyLength   int

	keygenCharset    string
	keygenLanguage   string
	keygenWords      int
	keygenTextLength int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cifra",
		Short:         "Classical cipher library and cracking tool",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(*cobra.Command, []string) {
			logging.SetLevel(rootVerbosity)
		},
	}
	rootCmd.PersistentFlags().StringVar(&rootVerbosity, "verbosity", defaultVerbosity, "log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(newDictionaryCmd())
	rootCmd.AddCommand(newCipherCmd())
	rootCmd.AddCommand(newDecipherCmd())
	rootCmd.AddCommand(newAttackCmd())
	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newKeygenCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func newDictionaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dictionary",
		Short: "Manage language dictionaries",
	}
	cmd.AddCommand(newDictionaryCreateCmd())
	cmd.AddCommand(newDictionaryDeleteCmd())
	cmd.AddCommand(newDictionaryUpdateCmd())
	cmd.AddCommand(newDictionaryListCmd())
	cmd.AddCommand(newDictionaryFetchCmd())
	return cmd
}

func newDictionaryCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a language dictionary",
		Args:  cobra.ExactArgs(1),
		RunE:  runDictionaryCreateCmd,
	}
	cmd.Flags().StringVar(&createWordsFile, "initial-words-file", "", "populate the new dictionary from a text file")
	return cmd
}

func runDictionaryCreateCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, nil, nil)
	if err != nil {
		return err
	}
	st, err := store.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	d, err := dictionary.OpenDictionary(ctx, st, args[0], true)
	if err != nil {
		return fmt.Errorf("failed to create dictionary: %w", err)
	}
	if createWordsFile == "" {
		return nil
	}
	added, err := d.Populate(ctx, createWordsFile)
	if err != nil {
		return fmt.Errorf("failed to populate dictionary: %w", err)
	}
	logErrf("Added %d words to dictionary %q\n", added, args[0])
	return nil
}

func newDictionaryDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a language dictionary and its words",
		Args:  cobra.ExactArgs(1),
		RunE:  runDictionaryDeleteCmd,
	}
}

func runDictionaryDeleteCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, nil, nil)
	if err != nil {
		return err
	}
	st, err := store.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if err := st.DeleteLanguage(context.Background(), args[0]); err != nil {
		return fmt.Errorf("failed to delete dictionary: %w", err)
	}
	logErrf("Deleted dictionary %q\n", args[0])
	return nil
}

func newDictionaryUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update NAME WORDS_FILE",
		Short: "Add the words of a text file to a dictionary",
		Args:  cobra.ExactArgs(2),
		RunE:  runDictionaryUpdateCmd,
	}
}

func runDictionaryUpdateCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, nil, nil)
	if err != nil {
		return err
	}
	st, err := store.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	d, err := dictionary.OpenDictionary(ctx, st, args[0], false)
	if err != nil {
		return fmt.Errorf("failed to open dictionary: %w", err)
	}
	added, err := d.Populate(ctx, args[1])
	if err != nil {
		return fmt.Errorf("failed to populate dictionary: %w", err)
	}
	logErrf("Added %d words to dictionary %q\n", added, args[0])
	return nil
}

func newDictionaryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered dictionaries",
		Args:  cobra.NoArgs,
		RunE:  runDictionaryListCmd,
	}
}

func runDictionaryListCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, nil, nil)
	if err != nil {
		return err
	}
	st, err := store.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	languages, err := st.Languages(ctx)
	if err != nil {
		return fmt.Errorf("failed to list dictionaries: %w", err)
	}
	if len(languages) == 0 {
		logErrf("No dictionaries found. Create with: cifra dictionary create <name>\n")
		return fmt.Errorf("no dictionaries found")
	}
	rows := make([][]string, 0, len(languages))
	for _, language := range languages {
		count, err := st.WordCount(ctx, language)
		if err != nil {
			return fmt.Errorf("failed to count words: %w", err)
		}
		rows = append(rows, []string{language, strconv.Itoa(count)})
	}
	for _, line := range report.FormatTable([]string{"Language", "Words"}, rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newDictionaryFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch LANG",
		Short: "Build a dictionary from the wordfreq dataset",
		Args:  cobra.ExactArgs(1),
		RunE:  runDictionaryFetchCmd,
	}
	cmd.Flags().StringVar(&fetchListType, "list-type", defaultFetchListType, "word list size to prefer (large or small)")
	cmd.Flags().IntVar(&fetchLimit, "limit", defaultFetchLimit, "number of words")
	return cmd
}

func runDictionaryFetchCmd(cmd *cobra.Command, args []string) error {
	lang := strings.TrimSpace(strings.ToLower(args[0]))
	if lang == "" {
		return fmt.Errorf("language must not be empty")
	}
	if fetchListType != "large" && fetchListType != "small" {
		return fmt.Errorf("--list-type must be large or small")
	}
	if fetchLimit <= 0 {
		return fmt.Errorf("--limit must be greater than 0")
	}
	cfg, err := resolveConfig(cmd, nil, nil)
	if err != nil {
		return err
	}

	logErrln("Fetching wordfreq metadata...")
	wheel, err := wordfreq.DownloadLatestWheel(context.Background(), config.DefaultWordfreqCacheDir())
	if err != nil {
		return fmt.Errorf("failed to download wordfreq wheel: %w", err)
	}
	if wheel.Cached {
		logErrf("Using cached wheel %s\n", wheel.Filename)
	} else {
		logErrf("Downloaded wheel %s\n", wheel.Filename)
	}
	languages, err := wordfreq.ListLanguages(wheel.Path)
	if err != nil {
		return fmt.Errorf("failed to list languages: %w", err)
	}
	types, ok := languages[lang]
	if !ok {
		return fmt.Errorf("unknown language %q (available: %s)", lang, strings.Join(wordfreq.Languages(languages), ", "))
	}
	listType, ok := selectListType(types, fetchListType)
	if !ok {
		return fmt.Errorf("no %s word list available for %s", fetchListType, lang)
	}
	if listType != fetchListType {
		logErrf("Using %s for %s (no %s word list)\n", listType, lang, fetchListType)
	}
	logErrf("Extracting %s word list...\n", lang)
	words, err := wordfreq.ExtractWords(wheel.Path, lang, listType, fetchLimit)
	if err != nil {
		return fmt.Errorf("failed to extract %s word list: %w", lang, err)
	}

	st, err := store.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	d, err := dictionary.OpenDictionary(ctx, st, lang, true)
	if err != nil {
		return fmt.Errorf("failed to open dictionary: %w", err)
	}
	if err := d.AddWords(ctx, words); err != nil {
		return fmt.Errorf("failed to store words: %w", err)
	}
	logErrf("Added %d words to dictionary %q\n", len(words), lang)
	logErrln("Word frequencies from the wordfreq dataset (CC BY-SA 4.0).")
	return nil
}

func selectListType(available []string, desired string) (string, bool) {
	has := make(map[string]bool, len(available))
	for _, listType := range available {
		has[listType] = true
	}
	switch desired {
	case "large":
		if has["large"] {
			return "large", true
		}
		if has["small"] {
			return "small", true
		}
	case "small":
		if has["small"] {
			return "small", true
		}
	}
	return "", false
}

func newCipherCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cipher ALGORITHM KEY FILE",
		Short: "Cipher a text file",
		Args:  cobra.ExactArgs(3),
		RunE:  runCipherCmd,
	}
	cmd.Flags().StringVarP(&cipherOutFile, "ciphered-file", "o", "", "write the ciphered text to a file instead of stdout")
	cmd.Flags().StringVar(&cipherCharset, "charset", cipher.DefaultCharset, "charset for the cipher")
	return cmd
}

func runCipherCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, &cipherCharset, nil)
	if err != nil {
		return err
	}
	text, err := readTextFile(args[2])
	if err != nil {
		return err
	}
	ciphered, err := cipherText(args[0], args[1], text, cfg.Charset)
	if err != nil {
		return err
	}
	return writeTextOutput(cmd, cipherOutFile, ciphered)
}

func newDecipherCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decipher ALGORITHM KEY FILE",
		Short: "Decipher a text file",
		Args:  cobra.ExactArgs(3),
		RunE:  runDecipherCmd,
	}
	cmd.Flags().StringVarP(&decipherOutFile, "deciphered-file", "o", "", "write the deciphered text to a file instead of stdout")
	cmd.Flags().StringVar(&decipherCharset, "charset", cipher.DefaultCharset, "charset for the cipher")
	return cmd
}

func runDecipherCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, &decipherCharset, nil)
	if err != nil {
		return err
	}
	text, err := readTextFile(args[2])
	if err != nil {
		return err
	}
	deciphered, err := decipherText(args[0], args[1], text, cfg.Charset)
	if err != nil {
		return err
	}
	return writeTextOutput(cmd, decipherOutFile, deciphered)
}

func newAttackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attack ALGORITHM FILE",
		Short: "Recover the key of a ciphered file",
		Args:  cobra.ExactArgs(2),
		RunE:  runAttackCmd,
	}
	cmd.Flags().StringVarP(&attackOutFile, "deciphered-file", "o", "", "write the deciphered text to a file")
	cmd.Flags().StringVar(&attackCharset, "charset", cipher.DefaultCharset, "charset for the cipher")
	cmd.Flags().IntVar(&attackWorkers, "workers", 0, "worker pool size (0 = all CPUs, 1 = sequential)")
	cmd.Flags().BoolVar(&attackStatistical, "statistical", false, "use the kasiski examination instead of dictionary words (vigenere only)")
	cmd.Flags().IntVar(&attackMaxKeyLength, "max-key-length", attack.DefaultMaxKeyLength, "longest key length the statistical attack considers")
	cmd.Flags().BoolVar(&attackNoProgress, "no-progress", false, "disable the live progress view")
	return cmd
}

func runAttackCmd(cmd *cobra.Command, args []string) error {
	algorithm := args[0]
	if !knownAlgorithm(algorithm) {
		return fmt.Errorf("unknown algorithm %q (choose from %s)", algorithm, strings.Join(cliAlgorithms, ", "))
	}
	if attackStatistical && algorithm != algoVigenere {
		return fmt.Errorf("--statistical only applies to vigenere")
	}
	cfg, err := resolveConfig(cmd, &attackCharset, &attackWorkers)
	if err != nil {
		return err
	}
	ciphered, err := readTextFile(args[1])
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	corpus, err := dictionary.LoadCorpus(ctx, st)
	if err != nil {
		return fmt.Errorf("failed to load dictionaries: %w", err)
	}

	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	if attackStatistical {
		workers = 1
	}

	tracker := progressui.NewTracker(keySpaceSize(algorithm, cfg.Charset, ciphered, corpus, attackStatistical))
	started := time.Now()
	var key string
	var identified dictionary.IdentifiedLanguage
	crack := func(ctx context.Context) error {
		var err error
		key, identified, err = executeAttack(ctx, algorithm, ciphered, corpus, cfg, attackStatistical, attackMaxKeyLength, tracker.Step)
		return err
	}
	if attackNoProgress {
		err = crack(ctx)
	} else {
		err = progressui.Run(ctx, fmt.Sprintf("Cracking %s key space", algorithm), tracker, crack)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("attack cancelled")
		}
		return fmt.Errorf("attack failed: %w", err)
	}

	deciphered, err := decipherText(algorithm, key, ciphered, cfg.Charset)
	if err != nil {
		return fmt.Errorf("failed to decipher with recovered key %q: %w", key, err)
	}

	outcome := model.AttackOutcome{
		Algorithm:   algorithm,
		Key:         key,
		Language:    identified.Winner,
		Probability: identified.WinnerProbability,
		Candidates:  identified.Candidates,
		Deciphered:  deciphered,
		KeysTried:   tracker.Snapshot().Done,
		Workers:     workers,
		Elapsed:     time.Since(started),
	}
	logging.Info().
		Str("algorithm", algorithm).
		Int("keys", outcome.KeysTried).
		Int("workers", outcome.Workers).
		Dur("elapsed", outcome.Elapsed).
		Msg("attack finished")

	if attackOutFile != "" {
		if err := os.WriteFile(attackOutFile, []byte(deciphered), 0o644); err != nil {
			return fmt.Errorf("failed to write deciphered text: %w", err)
		}
		logErrf("Wrote %s\n", attackOutFile)
		outcome.Deciphered = ""
	}
	return report.RenderAttack(cmd.OutOrStdout(), outcome)
}

func executeAttack(ctx context.Context, algorithm, ciphered string, corpus *dictionary.Corpus, cfg config.Config, statistical bool, maxKeyLength int, step func(done int)) (string, dictionary.IdentifiedLanguage, error) {
	sequential := cfg.Workers == 1
	switch algorithm {
	case algoCaesar:
		var res attack.Result[int]
		var err error
		if sequential {
			res, err = attack.BruteForceCaesar(ctx, ciphered, corpus, cfg.Charset, step)
		} else {
			res, err = attack.BruteForceCaesarParallel(ctx, ciphered, corpus, cfg.Charset, cfg.Workers, step)
		}
		if err != nil {
			return "", dictionary.IdentifiedLanguage{}, err
		}
		return strconv.Itoa(res.Key), res.Identified, nil
	case algoAffine:
		var res attack.Result[int]
		var err error
		if sequential {
			res, err = attack.BruteForceAffine(ctx, ciphered, corpus, cfg.Charset, step)
		} else {
			res, err = attack.BruteForceAffineParallel(ctx, ciphered, corpus, cfg.Charset, cfg.Workers, step)
		}
		if err != nil {
			return "", dictionary.IdentifiedLanguage{}, err
		}
		return strconv.Itoa(res.Key), res.Identified, nil
	case algoTransposition:
		var res attack.Result[int]
		var err error
		if sequential {
			res, err = attack.BruteForceTransposition(ctx, ciphered, corpus, step)
		} else {
			res, err = attack.BruteForceTranspositionParallel(ctx, ciphered, corpus, cfg.Workers, step)
		}
		if err != nil {
			return "", dictionary.IdentifiedLanguage{}, err
		}
		return strconv.Itoa(res.Key), res.Identified, nil
	case algoSubstitution:
		var res attack.Result[string]
		var err error
		if sequential {
			res, err = attack.HackSubstitution(ctx, ciphered, corpus, cfg.Charset, step)
		} else {
			res, err = attack.HackSubstitutionParallel(ctx, ciphered, corpus, cfg.Charset, cfg.Workers, step)
		}
		if err != nil {
			return "", dictionary.IdentifiedLanguage{}, err
		}
		return res.Key, res.Identified, nil
	case algoVigenere:
		var res attack.Result[string]
		var err error
		switch {
		case statistical:
			res, err = attack.StatisticalVigenere(ctx, ciphered, corpus, cfg.Charset, maxKeyLength, attack.DefaultSubkeysPerPosition, step)
		case sequential:
			res, err = attack.BruteForceVigenere(ctx, ciphered, corpus, cfg.Charset, step)
		default:
			res, err = attack.BruteForceVigenereParallel(ctx, ciphered, corpus, cfg.Charset, cfg.Workers, step)
		}
		if err != nil {
			return "", dictionary.IdentifiedLanguage{}, err
		}
		return res.Key, res.Identified, nil
	default:
		return "", dictionary.IdentifiedLanguage{}, fmt.Errorf("unknown algorithm %q (choose from %s)", algorithm, strings.Join(cliAlgorithms, ", "))
	}
}

// keySpaceSize reports how many keys an attack will try, or zero when
// the size is unknown up front.
func keySpaceSize(algorithm, charset, ciphered string, corpus *dictionary.Corpus, statistical bool) int {
	switch algorithm {
	case algoCaesar:
		return len([]rune(charset)) - 1
	case algoAffine:
		n := len([]rune(charset))
		return n*n - 1
	case algoTransposition:
		if n := len([]rune(ciphered)); n > 1 {
			return n - 1
		}
		return 0
	case algoVigenere:
		if statistical {
			return 0
		}
		total := 0
		for range attack.CorpusWordKeys(corpus) {
			total++
		}
		return total
	default:
		return 0
	}
}

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze FILE",
		Short: "Analyze letter frequencies and repeated sequences",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalyzeCmd,
	}
	cmd.Flags().StringVar(&analyzeCharset, "charset", cipher.DefaultCharset, "charset for the analysis")
	cmd.Flags().IntVar(&analyzeSequenceLength, "sequence-length", defaultSequenceLength, "length of the repeated sequences to look for")
	cmd.Flags().IntVar(&analyzeMaxKeyLength, "max-key-length", attack.DefaultMaxKeyLength, "longest key length to consider")
	return cmd
}

func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, &analyzeCharset, nil)
	if err != nil {
		return err
	}
	text, err := readTextFile(args[0])
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	histogram := frequency.NewLetterHistogram(text, cfg.Charset, 0)
	if _, err := fmt.Fprintln(w, "Letter frequencies:"); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := report.FrequencyChart(w, histogram, 0); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	sequences := frequency.FindRepeatedSequences(text, cfg.Charset, analyzeSequenceLength)
	if len(sequences) == 0 {
		if _, err := fmt.Fprintln(w, "No repeated sequences found."); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	names := make([]string, 0, len(sequences))
	for name := range sequences {
		names = append(names, name)
	}
	sort.Strings(names)
	rows := make([][]string, 0, len(names))
	separations := make([]int, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name, joinInts(sequences[name])})
		separations = append(separations, sequences[name]...)
	}
	if _, err := fmt.Fprintln(w, "Repeated sequences:"); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	for _, line := range report.FormatTable([]string{"Sequence", "Separations"}, rows, nil) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	lengths := frequency.LikelyKeyLengths(separations, analyzeMaxKeyLength)
	if len(lengths) == 0 {
		if _, err := fmt.Fprintln(w, "Likely key lengths: none"); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	if _, err := fmt.Fprintf(w, "Likely key lengths: %s\n", joinInts(lengths)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newKeygenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen ALGORITHM",
		Short: "Generate a random key for an algorithm",
		Args:  cobra.ExactArgs(1),
		RunE:  runKeygenCmd,
	}
	cmd.Flags().StringVar(&keygenCharset, "charset", cipher.DefaultCharset, "charset for the key")
	cmd.Flags().StringVar(&keygenLanguage, "language", "", "dictionary to draw vigenere key words from")
	cmd.Flags().IntVar(&keygenWords, "words", defaultKeygenWords, "dictionary words per vigenere key")
	cmd.Flags().IntVar(&keygenTextLength, "text-length", defaultKeygenTextLength, "intended message length (transposition keys stay below it)")
	return cmd
}

func runKeygenCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, &keygenCharset, nil)
	if err != nil {
		return err
	}
	gen := keygen.New()
	switch args[0] {
	case algoCaesar:
		key, err := gen.Caesar(cfg.Charset)
		if err != nil {
			return fmt.Errorf("failed to generate key: %w", err)
		}
		return printKey(cmd, strconv.Itoa(key))
	case algoAffine:
		key, err := gen.Affine(cfg.Charset)
		if err != nil {
			return fmt.Errorf("failed to generate key: %w", err)
		}
		return printKey(cmd, strconv.Itoa(key))
	case algoSubstitution:
		key, err := gen.Substitution(cfg.Charset)
		if err != nil {
			return fmt.Errorf("failed to generate key: %w", err)
		}
		return printKey(cmd, key)
	case algoTransposition:
		key, err := gen.Transposition(keygenTextLength)
		if err != nil {
			return fmt.Errorf("failed to generate key: %w", err)
		}
		return printKey(cmd, strconv.Itoa(key))
	case algoVigenere:
		if keygenLanguage == "" {
			return fmt.Errorf("--language is required for vigenere keys")
		}
		st, err := store.Open(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
		corpus, err := dictionary.LoadCorpus(context.Background(), st)
		if err != nil {
			return fmt.Errorf("failed to load dictionaries: %w", err)
		}
		key, err := gen.Vigenere(corpus, keygenLanguage, cfg.Charset, keygenWords)
		if err != nil {
			return fmt.Errorf("failed to generate key: %w", err)
		}
		return printKey(cmd, key)
	default:
		return fmt.Errorf("unknown algorithm %q (choose from %s)", args[0], strings.Join(cliAlgorithms, ", "))
	}
}

func printKey(cmd *cobra.Command, key string) error {
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), key); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func cipherText(algorithm, key, text, charset string) (string, error) {
	switch algorithm {
	case algoCaesar:
		k, err := parseIntKey(key)
		if err != nil {
			return "", err
		}
		return cipher.Caesar(text, k, charset), nil
	case algoAffine:
		k, err := parseIntKey(key)
		if err != nil {
			return "", err
		}
		return cipher.Affine(text, k, charset)
	case algoSubstitution:
		return cipher.Substitution(text, key, charset)
	case algoTransposition:
		k, err := parseIntKey(key)
		if err != nil {
			return "", err
		}
		return cipher.Transposition(text, k)
	case algoVigenere:
		return cipher.Vigenere(text, key, charset)
	default:
		return "", fmt.Errorf("unknown algorithm %q (choose from %s)", algorithm, strings.Join(cliAlgorithms, ", "))
	}
}

func decipherText(algorithm, key, text, charset string) (string, error) {
	switch algorithm {
	case algoCaesar:
		k, err := parseIntKey(key)
		if err != nil {
			return "", err
		}
		return cipher.DecipherCaesar(text, k, charset), nil
	case algoAffine:
		k, err := parseIntKey(key)
		if err != nil {
			return "", err
		}
		return cipher.DecipherAffine(text, k, charset)
	case algoSubstitution:
		return cipher.DecipherSubstitution(text, key, charset)
	case algoTransposition:
		k, err := parseIntKey(key)
		if err != nil {
			return "", err
		}
		return cipher.DecipherTransposition(text, k)
	case algoVigenere:
		return cipher.DecipherVigenere(text, key, charset)
	default:
		return "", fmt.Errorf("unknown algorithm %q (choose from %s)", algorithm, strings.Join(cliAlgorithms, ", "))
	}
}

func parseIntKey(key string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(key))
	if err != nil {
		return 0, fmt.Errorf("key %q is not a number", key)
	}
	return value, nil
}

func knownAlgorithm(name string) bool {
	for _, algo := range cliAlgorithms {
		if algo == name {
			return true
		}
	}
	return false
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, value := range values {
		parts[i] = strconv.Itoa(value)
	}
	return strings.Join(parts, ", ")
}

func readTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

func writeTextOutput(cmd *cobra.Command, path, text string) error {
	if path == "" {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), text); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logErrf("Wrote %s\n", path)
	return nil
}

func resolveConfig(cmd *cobra.Command, charset *string, workers *int) (config.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if charset != nil {
		applyStringConfig(cmd, "charset", charset, fileCfg.Cifra.Charset)
	}
	if workers != nil {
		applyIntConfig(cmd, "workers", workers, fileCfg.Cifra.Workers)
	}

	cfg := config.Default()
	if fileCfg.Cifra.Database != nil {
		cfg.Database = *fileCfg.Cifra.Database
	}
	if charset != nil {
		cfg.Charset = *charset
	}
	if workers != nil {
		cfg.Workers = *workers
	}
	if cfg.Charset == "" {
		return config.Config{}, fmt.Errorf("--charset must not be empty")
	}
	if cfg.Workers < 0 {
		return config.Config{}, fmt.Errorf("--workers must be >= 0")
	}
	return cfg, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# cifra configuration
# Uncomment a value to enable it. CLI flags override config values.

[cifra]
# charset = %q    # Charset for ciphers and attacks
# database = %q   # Dictionary database path
# workers = 0     # Attack worker pool size (0 = all CPUs, 1 = sequential)
`,
		cipher.DefaultCharset,
		config.DefaultDBPath(),
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
