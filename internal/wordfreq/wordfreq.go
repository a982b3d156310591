// Package wordfreq downloads the wordfreq dataset wheel and extracts
// word lists from it to populate language dictionaries.
package wordfreq

import (
	"archive/zip"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/vmihailenco/msgpack/v5"
)

const pypiEndpoint = "https://pypi.org/pypi/wordfreq/json"

// dataPrefix is where wordfreq wheels keep their frequency tables.
const dataPrefix = "wordfreq/data/"

// Wheel describes a cached wordfreq wheel.
type Wheel struct {
	Version  string
	Path     string
	Filename string
	Cached   bool
}

type pypiResponse struct {
	Info struct {
		Version string `json:"version"`
	} `json:"info"`
	URLs []struct {
		URL         string `json:"url"`
		Filename    string `json:"filename"`
		Packagetype string `json:"packagetype"`
	} `json:"urls"`
}

// DownloadLatestWheel fetches the latest wordfreq wheel into cacheDir,
// reusing an already cached copy of the same release.
func DownloadLatestWheel(ctx context.Context, cacheDir string) (Wheel, error) {
	if cacheDir == "" {
		return Wheel{}, fmt.Errorf("cache directory is required")
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return Wheel{}, fmt.Errorf("failed to create cache dir: %w", err)
	}

	resp, err := httpRequest(ctx, pypiEndpoint)
	if err != nil {
		return Wheel{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return Wheel{}, fmt.Errorf("unexpected pypi status: %s", resp.Status)
	}

	var payload pypiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Wheel{}, fmt.Errorf("failed to decode pypi response: %w", err)
	}
	if payload.Info.Version == "" {
		return Wheel{}, fmt.Errorf("missing version in pypi response")
	}

	url, filename := pickWheelURL(payload.URLs)
	if url == "" {
		return Wheel{}, fmt.Errorf("no suitable wordfreq wheel found")
	}

	destPath := filepath.Join(cacheDir, filename)
	if _, err := os.Stat(destPath); err == nil {
		return Wheel{Version: payload.Info.Version, Path: destPath, Filename: filename, Cached: true}, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return Wheel{}, fmt.Errorf("failed to stat cached wheel: %w", err)
	}

	tmpFile, err := os.CreateTemp(cacheDir, "wordfreq-*.whl")
	if err != nil {
		return Wheel{}, fmt.Errorf("failed to create temp wheel: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	wheelResp, err := httpRequest(ctx, url)
	if err != nil {
		return Wheel{}, err
	}
	defer func() {
		_ = wheelResp.Body.Close()
	}()
	if wheelResp.StatusCode != http.StatusOK {
		return Wheel{}, fmt.Errorf("unexpected wheel status: %s", wheelResp.Status)
	}

	if _, err := io.Copy(tmpFile, wheelResp.Body); err != nil {
		return Wheel{}, fmt.Errorf("failed to download wheel: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return Wheel{}, fmt.Errorf("failed to close temp wheel: %w", err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return Wheel{}, fmt.Errorf("failed to move wheel into cache: %w", err)
	}

	return Wheel{Version: payload.Info.Version, Path: destPath, Filename: filename, Cached: false}, nil
}

func httpRequest(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

func pickWheelURL(urls []struct {
	URL         string `json:"url"`
	Filename    string `json:"filename"`
	Packagetype string `json:"packagetype"`
}) (string, string) {
	for _, u := range urls {
		if u.Packagetype != "bdist_wheel" {
			continue
		}
		if strings.HasSuffix(u.Filename, "py3-none-any.whl") {
			return u.URL, u.Filename
		}
	}
	for _, u := range urls {
		if u.Packagetype == "bdist_wheel" {
			return u.URL, u.Filename
		}
	}
	return "", ""
}

// ListLanguages returns the language codes of the wheel's frequency
// tables mapped to their available list types, each sorted.
func ListLanguages(wheelPath string) (map[string][]string, error) {
	if wheelPath == "" {
		return nil, fmt.Errorf("wheel path is required")
	}
	reader, err := zip.OpenReader(wheelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	languages := make(map[string][]string)
	for _, file := range reader.File {
		lang, listType := parseLanguageAndType(file.Name)
		if lang == "" {
			continue
		}
		languages[lang] = append(languages[lang], listType)
	}
	if len(languages) == 0 {
		return nil, fmt.Errorf("no languages found in wordfreq wheel")
	}
	for _, listTypes := range languages {
		sort.Strings(listTypes)
	}
	return languages, nil
}

// Languages returns the sorted language codes of a ListLanguages
// result.
func Languages(languages map[string][]string) []string {
	codes := make([]string, 0, len(languages))
	for code := range languages {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// parseLanguageAndType decodes a wheel member name like
// wordfreq/data/large_en.msgpack.gz into its language code and list
// type.
func parseLanguageAndType(name string) (string, string) {
	name = strings.ToLower(name)
	if !strings.HasPrefix(name, dataPrefix) {
		return "", ""
	}
	base := strings.TrimPrefix(name, dataPrefix)
	if !strings.HasSuffix(base, ".msgpack.gz") {
		return "", ""
	}
	base = strings.TrimSuffix(base, ".msgpack.gz")
	listType, lang, found := strings.Cut(base, "_")
	if !found || lang == "" {
		return "", ""
	}
	if listType != "large" && listType != "small" {
		return "", ""
	}
	return lang, listType
}

// ExtractWords reads a language's frequency table from the wheel and
// returns up to limit words in descending frequency order, filtered to
// letter-only words of two to twenty runes, deduplicated.
func ExtractWords(wheelPath, lang, listType string, limit int) ([]string, error) {
	if wheelPath == "" {
		return nil, fmt.Errorf("wheel path is required")
	}
	lang = strings.ToLower(lang)
	if lang == "" {
		return nil, fmt.Errorf("language is required")
	}
	if listType == "" {
		return nil, fmt.Errorf("word list type is required")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than 0")
	}

	buckets, err := readBuckets(wheelPath, lang, listType)
	if err != nil {
		return nil, err
	}

	words := make([]string, 0, limit)
	seen := make(map[string]bool)
	for _, bucket := range buckets {
		for _, word := range bucket {
			if seen[word] {
				continue
			}
			if !isAlpha(word) {
				continue
			}
			length := utf8.RuneCountInString(word)
			if length < 2 || length > 20 {
				continue
			}
			seen[word] = true
			words = append(words, word)
			if len(words) >= limit {
				return words, nil
			}
		}
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("no words found for %s/%s", lang, listType)
	}
	return words, nil
}

// readBuckets gunzips a language's frequency table and msgpack-decodes
// it. The payload is a list whose head is a header map and whose
// remaining elements are word buckets in descending frequency order.
func readBuckets(wheelPath, lang, listType string) ([][]string, error) {
	reader, err := zip.OpenReader(wheelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	member := dataPrefix + strings.ToLower(listType) + "_" + lang + ".msgpack.gz"
	var dataFile *zip.File
	for _, file := range reader.File {
		if strings.ToLower(file.Name) == member {
			dataFile = file
			break
		}
	}
	if dataFile == nil {
		return nil, fmt.Errorf("no data file found for %s/%s", lang, listType)
	}

	rc, err := dataFile.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer func() {
		_ = rc.Close()
	}()

	gz, err := gzip.NewReader(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to gunzip data file: %w", err)
	}
	defer func() {
		_ = gz.Close()
	}()

	var payload []interface{}
	if err := msgpack.NewDecoder(gz).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode frequency table: %w", err)
	}
	if len(payload) < 2 {
		return nil, fmt.Errorf("frequency table carries no word buckets")
	}
	if _, ok := payload[0].(map[string]interface{}); !ok {
		return nil, fmt.Errorf("unexpected frequency table header %T", payload[0])
	}

	buckets := make([][]string, 0, len(payload)-1)
	for _, raw := range payload[1:] {
		items, ok := raw.([]interface{})
		if !ok {
			return nil, fmt.Errorf("unexpected word bucket type %T", raw)
		}
		bucket := make([]string, 0, len(items))
		for _, item := range items {
			word, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected word type %T", item)
			}
			bucket = append(bucket, word)
		}
		buckets = append(buckets, bucket)
	}
	return buckets, nil
}

func isAlpha(word string) bool {
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return word != ""
}
