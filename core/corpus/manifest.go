package corpus

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/zeebo/blake3"

	"github.com/tartil-labs/sanad/core/errors"
	"github.com/tartil-labs/sanad/core/quran"
)

// ManifestFile is the conventional manifest name inside a corpus directory.
const ManifestFile = "manifest.json"

// Manifest records a BLAKE3 digest per corpus file, written when the data
// set is published and checked before it is loaded.
type Manifest struct {
	Files map[string]string `json:"files"` // file name -> hex BLAKE3 digest
}

// HashBytes returns the hex BLAKE3 digest of data.
func HashBytes(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// WriteManifest hashes the named files under dir and writes the manifest
// beside them.
func WriteManifest(dir string, names []string) (*Manifest, error) {
	m := &Manifest{Files: make(map[string]string, len(names))}
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, errors.Wrapf(err, "hash %s", name)
		}
		m.Files[name] = HashBytes(data)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), data, 0o644); err != nil {
		return nil, errors.Wrapf(err, "write manifest")
	}
	return m, nil
}

// LoadManifest reads the manifest from dir.
func LoadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read manifest %s", path)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.NewParse("json", path, err.Error())
	}
	return &m, nil
}

// Verify recomputes the digest of every file the manifest names and fails
// on the first mismatch. A mismatch means the data set was modified after
// publication and must not be served.
func (m *Manifest) Verify(dir string) error {
	names := make([]string, 0, len(m.Files))
	for name := range m.Files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return errors.Wrapf(errors.ErrCorruptCorpus, "manifest names missing file %s", name)
		}
		if got := HashBytes(data); got != m.Files[name] {
			return errors.Wrapf(errors.ErrCorruptCorpus, "digest mismatch for %s", name)
		}
	}
	return nil
}

// LoadDirVerified verifies dir against its manifest, then loads the corpus.
func LoadDirVerified(dir string) (*quran.Corpus, error) {
	m, err := LoadManifest(dir)
	if err != nil {
		return nil, err
	}
	if err := m.Verify(dir); err != nil {
		return nil, err
	}
	return LoadDir(dir)
}
