package drift

import (
	"github.com/devinci-it/hssql/internal/alerr"
	"github.com/devinci-it/hssql/pkg/ddl"
)

// Result represents the complete drift detection result.
type Result struct {
	// HasDrift is true if any differences were found
	HasDrift bool

	// ExpectedHash is the merkle root of the expected database
	ExpectedHash string

	// ActualHash is the merkle root of the actual database
	ActualHash string

	// Comparison contains detailed comparison results
	Comparison *HashComparison

	// Expected is the reference database
	Expected *ddl.Database

	// Actual is the database compared against it
	Actual *ddl.Database
}

// Detect compares two versions of a database, typically a stored session
// against a schema document on disk.
func Detect(expected, actual *ddl.Database) (*Result, error) {
	expectedHash, err := ComputeSchemaHash(expected)
	if err != nil {
		return nil, alerr.Wrap(alerr.EInternalError, err, "failed to compute expected schema hash")
	}

	actualHash, err := ComputeSchemaHash(actual)
	if err != nil {
		return nil, alerr.Wrap(alerr.EInternalError, err, "failed to compute actual schema hash")
	}

	comparison := CompareHashes(expectedHash, actualHash)

	return &Result{
		HasDrift:     !comparison.Match,
		ExpectedHash: expectedHash.Root,
		ActualHash:   actualHash.Root,
		Comparison:   comparison,
		Expected:     expected,
		Actual:       actual,
	}, nil
}

// Fingerprint returns the merkle root of a database.
func Fingerprint(db *ddl.Database) (string, error) {
	h, err := ComputeSchemaHash(db)
	if err != nil {
		return "", err
	}
	return h.Root, nil
}

// DriftSummary provides a human-readable summary of drift detection results.
type DriftSummary struct {
	// Tables is the total number of tables in the expected database
	Tables int

	// MissingTables is the count of tables absent from the actual database
	MissingTables int

	// ExtraTables is the count of tables only in the actual database
	ExtraTables int

	// ModifiedTables is the count of tables with differences
	ModifiedTables int

	// SettingsChanged is true when schema, charset or collation differ
	SettingsChanged bool

	// Details contains per-table drift information
	Details []TableDriftSummary
}

// TableDriftSummary summarizes drift for a single table.
type TableDriftSummary struct {
	Name        string
	Status      string // "missing", "extra", "modified"
	Columns     DriftCounts
	Constraints DriftCounts
}

// DriftCounts tracks missing/extra/modified counts.
type DriftCounts struct {
	Missing  int
	Extra    int
	Modified int
}

// Summarize creates a human-readable summary from drift detection result.
func Summarize(result *Result) *DriftSummary {
	if result == nil || result.Comparison == nil {
		return &DriftSummary{}
	}

	summary := &DriftSummary{
		MissingTables:   len(result.Comparison.MissingTables),
		ExtraTables:     len(result.Comparison.ExtraTables),
		ModifiedTables:  len(result.Comparison.TableDiffs),
		SettingsChanged: result.Comparison.SettingsChanged,
		Details:         []TableDriftSummary{},
	}
	if result.Expected != nil {
		summary.Tables = len(result.Expected.Tables())
	}

	for _, name := range result.Comparison.MissingTables {
		summary.Details = append(summary.Details, TableDriftSummary{Name: name, Status: "missing"})
	}

	for _, name := range result.Comparison.ExtraTables {
		summary.Details = append(summary.Details, TableDriftSummary{Name: name, Status: "extra"})
	}

	for _, name := range result.Comparison.ModifiedTables() {
		diff := result.Comparison.TableDiffs[name]
		summary.Details = append(summary.Details, TableDriftSummary{
			Name:   name,
			Status: "modified",
			Columns: DriftCounts{
				Missing:  len(diff.MissingColumns),
				Extra:    len(diff.ExtraColumns),
				Modified: len(diff.ModifiedColumns),
			},
			Constraints: DriftCounts{
				Missing: len(diff.MissingConstraints),
				Extra:   len(diff.ExtraConstraints),
			},
		})
	}

	return summary
}
