// Package drift fingerprints schema databases with merkle trees and reports
// table-level differences between two versions of a database.
package drift

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/cbergoon/merkletree"

	"github.com/devinci-it/hssql/internal/alerr"
	"github.com/devinci-it/hssql/pkg/ddl"
)

// SchemaHash represents the merkle root hash of a database.
type SchemaHash struct {
	Root     string                // Root hash of tables and settings
	Settings string                // Hash of schema, charset and collation
	Tables   map[string]*TableHash // Individual table hashes for drill-down
}

// TableHash represents the hash of a single table.
type TableHash struct {
	Name        string            // Table key (name, suffixed "#n" for repeated names)
	Hash        string            // Hash of entire table structure
	Columns     map[string]string // Column key -> hash
	Constraints map[string]string // Constraint text -> hash
}

// tableContent implements merkletree.Content for table-level hashing.
type tableContent struct {
	name string
	hash string
}

func (t tableContent) CalculateHash() ([]byte, error) {
	h := sha256.Sum256([]byte(t.name + ":" + t.hash))
	return h[:], nil
}

func (t tableContent) Equals(other merkletree.Content) (bool, error) {
	o, ok := other.(tableContent)
	if !ok {
		return false, nil
	}
	return t.name == o.name && t.hash == o.hash, nil
}

// ComputeSchemaHash computes the merkle tree hash for a database.
// The hash is hierarchical: database -> tables -> columns/constraints.
// The database name and the script log do not contribute.
func ComputeSchemaHash(db *ddl.Database) (*SchemaHash, error) {
	result := &SchemaHash{
		Tables: make(map[string]*TableHash),
	}
	if db == nil {
		result.Root = emptyHash()
		result.Settings = emptyHash()
		return result, nil
	}

	result.Settings = hashString(fmt.Sprintf("schema:%s|charset:%s|collation:%s",
		db.Schema(), db.Charset(), db.Collation()))

	contents := []merkletree.Content{
		tableContent{name: "@settings", hash: result.Settings},
	}

	tables := db.Tables()
	keys := uniqueKeys(db.TableNames())
	for i, t := range tables {
		th := computeTableHash(keys[i], t)
		result.Tables[th.Name] = th
	}

	// Sorted for determinism.
	names := make([]string, 0, len(result.Tables))
	for name := range result.Tables {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		contents = append(contents, tableContent{name: name, hash: result.Tables[name].Hash})
	}

	tree, err := merkletree.NewTree(contents)
	if err != nil {
		return nil, alerr.Wrap(alerr.EInternalError, err, "failed to build merkle tree").
			WithDatabase(db.Name())
	}

	result.Root = hex.EncodeToString(tree.MerkleRoot())
	return result, nil
}

// computeTableHash computes the hash for a single table.
func computeTableHash(key string, table *ddl.Table) *TableHash {
	result := &TableHash{
		Name:        key,
		Columns:     make(map[string]string),
		Constraints: make(map[string]string),
	}

	cols := table.Columns()
	colNames := make([]string, len(cols))
	for i, c := range cols {
		colNames[i] = c.Name()
	}
	colKeys := uniqueKeys(colNames)

	// Column order is part of the table definition, so hashes are joined in order.
	columnHashes := make([]string, len(cols))
	for i, c := range cols {
		h := computeColumnHash(c)
		result.Columns[colKeys[i]] = h
		columnHashes[i] = colKeys[i] + ":" + h
	}

	cons := table.Constraints()
	conHashes := make([]string, len(cons))
	for i, con := range cons {
		h := hashString(con)
		result.Constraints[con] = h
		conHashes[i] = h
	}

	result.Hash = hashString(fmt.Sprintf("table:%s|columns:[%s]|constraints:[%s]",
		table.Name(),
		strings.Join(columnHashes, ","),
		strings.Join(conHashes, ","),
	))

	return result
}

// computeColumnHash computes a deterministic hash for a column.
// Types and constraints compare case-insensitively, matching how they validate.
func computeColumnHash(col *ddl.Column) string {
	cons := col.Constraints()
	for i, c := range cons {
		cons[i] = strings.ToUpper(c)
	}
	data := fmt.Sprintf("name:%s|type:%s|constraints:[%s]",
		col.Name(),
		strings.ToUpper(col.DataType()),
		strings.Join(cons, ","),
	)
	return hashString(data)
}

// uniqueKeys suffixes repeated names with "#n" so every entry gets its own key.
func uniqueKeys(names []string) []string {
	seen := make(map[string]int, len(names))
	keys := make([]string, len(names))
	for i, n := range names {
		seen[n]++
		if seen[n] == 1 {
			keys[i] = n
		} else {
			keys[i] = fmt.Sprintf("%s#%d", n, seen[n])
		}
	}
	return keys
}

// hashString computes SHA256 hash of a string and returns hex encoding.
func hashString(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

// emptyHash returns a consistent hash for a missing database.
func emptyHash() string {
	return hashString("empty_schema")
}

// CompareHashes compares two schema hashes and returns differences.
func CompareHashes(expected, actual *SchemaHash) *HashComparison {
	result := &HashComparison{
		Match:           expected.Root == actual.Root,
		ExpectedRoot:    expected.Root,
		ActualRoot:      actual.Root,
		SettingsChanged: expected.Settings != actual.Settings,
		TableDiffs:      make(map[string]*TableDiff),
		MissingTables:   []string{},
		ExtraTables:     []string{},
	}

	if result.Match {
		return result
	}

	for name := range expected.Tables {
		if _, exists := actual.Tables[name]; !exists {
			result.MissingTables = append(result.MissingTables, name)
		}
	}
	sort.Strings(result.MissingTables)

	for name := range actual.Tables {
		if _, exists := expected.Tables[name]; !exists {
			result.ExtraTables = append(result.ExtraTables, name)
		}
	}
	sort.Strings(result.ExtraTables)

	for name, expectedTable := range expected.Tables {
		actualTable, exists := actual.Tables[name]
		if !exists {
			continue
		}
		if expectedTable.Hash != actualTable.Hash {
			result.TableDiffs[name] = compareTableHashes(expectedTable, actualTable)
		}
	}

	return result
}

// HashComparison represents the result of comparing two schema hashes.
type HashComparison struct {
	Match           bool                  // True if databases are identical
	ExpectedRoot    string                // Expected root hash
	ActualRoot      string                // Actual root hash
	SettingsChanged bool                  // Schema, charset or collation differ
	TableDiffs      map[string]*TableDiff // Tables with differences
	MissingTables   []string              // Tables missing from actual
	ExtraTables     []string              // Extra tables in actual
}

// ModifiedTables returns the names of modified tables in sorted order.
func (c *HashComparison) ModifiedTables() []string {
	names := make([]string, 0, len(c.TableDiffs))
	for name := range c.TableDiffs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TableDiff represents differences within a table.
type TableDiff struct {
	Name               string   // Table key
	MissingColumns     []string // Columns missing from actual
	ExtraColumns       []string // Extra columns in actual
	ModifiedColumns    []string // Columns with different definitions
	MissingConstraints []string // Table constraints missing from actual
	ExtraConstraints   []string // Extra table constraints in actual
	Reordered          bool     // Same members, different order or repetition
}

// HasDifferences returns true if the table has any differences.
func (d *TableDiff) HasDifferences() bool {
	return len(d.MissingColumns) > 0 ||
		len(d.ExtraColumns) > 0 ||
		len(d.ModifiedColumns) > 0 ||
		len(d.MissingConstraints) > 0 ||
		len(d.ExtraConstraints) > 0 ||
		d.Reordered
}

// compareTableHashes compares two table hashes and returns differences.
func compareTableHashes(expected, actual *TableHash) *TableDiff {
	diff := &TableDiff{Name: expected.Name}

	for name, hash := range expected.Columns {
		actualHash, exists := actual.Columns[name]
		if !exists {
			diff.MissingColumns = append(diff.MissingColumns, name)
		} else if hash != actualHash {
			diff.ModifiedColumns = append(diff.ModifiedColumns, name)
		}
	}
	for name := range actual.Columns {
		if _, exists := expected.Columns[name]; !exists {
			diff.ExtraColumns = append(diff.ExtraColumns, name)
		}
	}

	for con := range expected.Constraints {
		if _, exists := actual.Constraints[con]; !exists {
			diff.MissingConstraints = append(diff.MissingConstraints, con)
		}
	}
	for con := range actual.Constraints {
		if _, exists := expected.Constraints[con]; !exists {
			diff.ExtraConstraints = append(diff.ExtraConstraints, con)
		}
	}

	sort.Strings(diff.MissingColumns)
	sort.Strings(diff.ExtraColumns)
	sort.Strings(diff.ModifiedColumns)
	sort.Strings(diff.MissingConstraints)
	sort.Strings(diff.ExtraConstraints)

	// Hashes differ but no member does: only the order changed.
	diff.Reordered = !diff.HasDifferences()

	return diff
}
