// Package corpus loads the verse and surah data the rest of the engine
// works over. Sources are JSON files (with transparent .xz decompression
// and a minified fallback), or a QUL-style SQLite export. A loaded corpus
// is validated before it is returned; a corrupt corpus is never served.
package corpus

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/tartil-labs/sanad/core/errors"
	"github.com/tartil-labs/sanad/core/quran"
)

// Conventional file names inside a corpus directory.
const (
	VersesFile = "quran-verses.json"
	SurahsFile = "quran-surahs.json"
)

// LoadDir loads a corpus from a directory laid out with the conventional
// file names. For each file, the loader tries the exact name, then a
// ".min.json" minified variant, then an ".xz" compressed variant of either.
func LoadDir(dir string) (*quran.Corpus, error) {
	return LoadFiles(filepath.Join(dir, VersesFile), filepath.Join(dir, SurahsFile))
}

// LoadFiles loads a corpus from explicit verses and surahs files.
func LoadFiles(versesPath, surahsPath string) (*quran.Corpus, error) {
	var verses []*quran.Verse
	if err := readJSON(versesPath, &verses); err != nil {
		return nil, errors.Wrapf(err, "load verses from %s", versesPath)
	}
	var surahs []*quran.Surah
	if err := readJSON(surahsPath, &surahs); err != nil {
		return nil, errors.Wrapf(err, "load surahs from %s", surahsPath)
	}

	c := &quran.Corpus{Verses: verses, Surahs: surahs}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// readJSON decodes one corpus file into v, resolving the path through the
// fallback chain first.
func readJSON(path string, v interface{}) error {
	data, err := readFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.NewParse("json", path, err.Error())
	}
	return nil
}

// readFile returns the contents of path, trying in order: the path itself,
// its ".min.json" variant, and ".xz" compressed forms of both. A path that
// already ends in ".xz" is decompressed transparently.
func readFile(path string) ([]byte, error) {
	for _, p := range candidates(path) {
		data, err := os.ReadFile(p)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if strings.HasSuffix(p, ".xz") {
			return decompress(p, data)
		}
		return data, nil
	}
	return nil, errors.Wrapf(errors.ErrNotFound, "corpus file %s (or any fallback)", path)
}

func candidates(path string) []string {
	if strings.HasSuffix(path, ".xz") {
		return []string{path}
	}
	out := []string{path}
	if strings.HasSuffix(path, ".json") && !strings.HasSuffix(path, ".min.json") {
		out = append(out, strings.TrimSuffix(path, ".json")+".min.json")
	}
	for _, p := range out[:len(out):len(out)] {
		out = append(out, p+".xz")
	}
	return out
}

func decompress(path string, data []byte) ([]byte, error) {
	r, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "open xz stream %s", path)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "decompress %s", path)
	}
	return out, nil
}
