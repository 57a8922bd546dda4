// Package lockfile provides read/write/verify for hssql.lock files.
// The lock file records SHA-256 checksums of exported .sql scripts so that
// hand edits to generated DDL are caught before the scripts are used.
package lockfile

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/devinci-it/hssql/internal/alerr"
)

// ScriptExt is the extension of files tracked by the lock file.
const ScriptExt = ".sql"

// Entry represents a single file entry in the lock file.
type Entry struct {
	Filename string
	Checksum string
}

// LockFile represents the parsed contents of an hssql.lock file.
//
// Layout:
//
//	<aggregate>
//	<checksum> <filename>
//	...
type LockFile struct {
	Aggregate string  // SHA-256 of all individual checksums combined
	Entries   []Entry // Individual file checksums, sorted by filename
}

// DefaultPath returns the default lock file name. It lives next to the
// exported scripts.
func DefaultPath() string {
	return "hssql.lock"
}

// Read reads and parses a lock file from the given path.
// Returns nil if the file does not exist.
func Read(path string) (*LockFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, alerr.Wrap(alerr.ErrScriptWrite, err, "failed to read lock file").WithFile(path)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, alerr.New(alerr.ErrScriptMismatch, "lock file is empty").WithFile(path)
	}
	lines := strings.Split(text, "\n")

	lf := &LockFile{
		Aggregate: strings.TrimSpace(lines[0]),
	}

	for _, line := range lines[1:] {
		checksum, filename, ok := strings.Cut(strings.TrimSpace(line), " ")
		if !ok {
			continue
		}
		lf.Entries = append(lf.Entries, Entry{
			Filename: strings.TrimSpace(filename),
			Checksum: strings.TrimSpace(checksum),
		})
	}

	return lf, nil
}

// Write computes checksums for every .sql file in scriptsDir and writes the lock file.
func Write(scriptsDir, lockPath string) error {
	entries, err := computeEntries(scriptsDir)
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString(computeAggregate(entries) + "\n")
	for _, e := range entries {
		fmt.Fprintf(&sb, "%s %s\n", e.Checksum, e.Filename)
	}

	if err := os.MkdirAll(filepath.Dir(lockPath), 0755); err != nil {
		return alerr.Wrap(alerr.ErrScriptWrite, err, "failed to create lock file directory").WithFile(lockPath)
	}
	if err := os.WriteFile(lockPath, []byte(sb.String()), 0644); err != nil {
		return alerr.Wrap(alerr.ErrScriptWrite, err, "failed to write lock file").WithFile(lockPath)
	}
	return nil
}

// Verify checks whether the lock file matches the scripts on disk.
// Returns nil if everything matches, or an ErrScriptMismatch error naming
// the first problem.
func Verify(scriptsDir, lockPath string) error {
	result, err := VerifyDetailed(scriptsDir, lockPath)
	if err != nil {
		return err
	}

	mismatch := func(msg, file string) error {
		return alerr.New(alerr.ErrScriptMismatch, msg).
			WithFile(file).
			WithHelp("re-export the scripts with 'hssql generate --write'")
	}

	switch {
	case !result.LockFileExists:
		return mismatch("lock file not found", lockPath)
	case len(result.ModifiedFiles) > 0:
		return mismatch("script checksum mismatch", result.ModifiedFiles[0])
	case len(result.NewFiles) > 0:
		return mismatch("script not in lock file", result.NewFiles[0])
	case len(result.RemovedFiles) > 0:
		return mismatch("script in lock file but not on disk", result.RemovedFiles[0])
	case !result.AggregateMatch:
		return mismatch("lock file aggregate mismatch", lockPath)
	}
	return nil
}

// VerificationResult holds detailed results of lock file verification.
type VerificationResult struct {
	Valid          bool     // Overall validity
	LockFileExists bool     // Whether lock file exists
	AggregateMatch bool     // Whether aggregate checksum matches
	NewFiles       []string // Files on disk but not in lock
	RemovedFiles   []string // Files in lock but not on disk
	ModifiedFiles  []string // Files with checksum mismatches
	VerifiedFiles  []string // Files that passed verification
}

// VerifyDetailed checks the lock file and returns detailed verification results.
// Unlike Verify which returns an error, this returns structured results for UI display.
func VerifyDetailed(scriptsDir, lockPath string) (*VerificationResult, error) {
	result := &VerificationResult{
		Valid:          true,
		LockFileExists: true,
		AggregateMatch: true,
	}

	lf, err := Read(lockPath)
	if err != nil {
		return nil, err
	}
	if lf == nil {
		result.LockFileExists = false
		result.Valid = false
		return result, nil
	}

	entries, err := computeEntries(scriptsDir)
	if err != nil {
		return nil, err
	}

	if computeAggregate(entries) != lf.Aggregate {
		result.AggregateMatch = false
		result.Valid = false
	}

	lockMap := make(map[string]string, len(lf.Entries))
	for _, e := range lf.Entries {
		lockMap[e.Filename] = e.Checksum
	}

	fileMap := make(map[string]bool, len(entries))
	for _, e := range entries {
		fileMap[e.Filename] = true

		expected, ok := lockMap[e.Filename]
		switch {
		case !ok:
			result.NewFiles = append(result.NewFiles, e.Filename)
			result.Valid = false
		case expected != e.Checksum:
			result.ModifiedFiles = append(result.ModifiedFiles, e.Filename)
			result.Valid = false
		default:
			result.VerifiedFiles = append(result.VerifiedFiles, e.Filename)
		}
	}

	for _, e := range lf.Entries {
		if !fileMap[e.Filename] {
			result.RemovedFiles = append(result.RemovedFiles, e.Filename)
			result.Valid = false
		}
	}

	return result, nil
}

// Checksum returns the hex SHA-256 of data, as recorded in the lock file.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// computeEntries reads all .sql files in the scripts dir and computes their checksums.
func computeEntries(scriptsDir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(scriptsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, alerr.Wrap(alerr.ErrScriptWrite, err, "failed to read scripts directory").WithFile(scriptsDir)
	}

	var entries []Entry
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ScriptExt) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(scriptsDir, de.Name()))
		if err != nil {
			return nil, alerr.Wrap(alerr.ErrScriptWrite, err, "failed to read script").WithFile(de.Name())
		}
		entries = append(entries, Entry{
			Filename: de.Name(),
			Checksum: Checksum(data),
		})
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Filename, b.Filename)
	})

	return entries, nil
}

// computeAggregate computes the aggregate SHA-256 from all individual checksums.
func computeAggregate(entries []Entry) string {
	h := sha256.New()
	for _, e := range entries {
		h.Write([]byte(e.Checksum))
	}
	return hex.EncodeToString(h.Sum(nil))
}
