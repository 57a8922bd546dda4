package drift

import (
	"fmt"
	"strings"
)

// FormatResult formats a drift detection result for CLI output.
func FormatResult(result *Result) string {
	if result == nil {
		return "No drift detection result available."
	}

	if !result.HasDrift {
		return FormatNoDrift(result)
	}

	return FormatDrift(result)
}

// FormatNoDrift formats a successful (no drift) result.
func FormatNoDrift(result *Result) string {
	var b strings.Builder

	tables := 0
	if result.Expected != nil {
		tables = len(result.Expected.Tables())
	}

	b.WriteString("Schema check passed\n\n")
	fmt.Fprintf(&b, "  Tables:       %d\n", tables)
	fmt.Fprintf(&b, "  Schema hash:  %s\n", truncateHash(result.ExpectedHash))
	b.WriteString("\n  Both versions define the same tables.\n")

	return b.String()
}

// FormatDrift formats a drift detection result with differences.
func FormatDrift(result *Result) string {
	var b strings.Builder

	b.WriteString("Schema drift detected\n\n")

	fmt.Fprintf(&b, "  Expected hash: %s\n", truncateHash(result.ExpectedHash))
	fmt.Fprintf(&b, "  Actual hash:   %s\n", truncateHash(result.ActualHash))
	b.WriteString("\n")

	comp := result.Comparison

	if comp.SettingsChanged {
		b.WriteString("  Database settings differ (schema, charset or collation).\n\n")
	}

	if len(comp.MissingTables) > 0 {
		b.WriteString("  Missing tables (in session but not in document):\n")
		for _, name := range comp.MissingTables {
			fmt.Fprintf(&b, "    - %s\n", name)
		}
		b.WriteString("\n")
	}

	if len(comp.ExtraTables) > 0 {
		b.WriteString("  Extra tables (in document but not in session):\n")
		for _, name := range comp.ExtraTables {
			fmt.Fprintf(&b, "    + %s\n", name)
		}
		b.WriteString("\n")
	}

	if len(comp.TableDiffs) > 0 {
		b.WriteString("  Modified tables:\n")
		for _, name := range comp.ModifiedTables() {
			fmt.Fprintf(&b, "\n    %s:\n", name)
			formatTableDiff(&b, comp.TableDiffs[name], "      ")
		}
	}

	b.WriteString("\nFix:\n")
	b.WriteString("  Import the document to replace the session:\n")
	b.WriteString("    hssql session import <file>\n")

	return b.String()
}

// formatTableDiff formats differences for a single table.
func formatTableDiff(b *strings.Builder, diff *TableDiff, indent string) {
	writeList(b, indent, "Columns missing from document:", "-", diff.MissingColumns)
	writeList(b, indent, "Columns only in document:", "+", diff.ExtraColumns)
	writeList(b, indent, "Columns with different definitions:", "~", diff.ModifiedColumns)
	writeList(b, indent, "Constraints missing from document:", "-", diff.MissingConstraints)
	writeList(b, indent, "Constraints only in document:", "+", diff.ExtraConstraints)
	if diff.Reordered {
		fmt.Fprintf(b, "%sColumn or constraint order differs\n", indent)
	}
}

func writeList(b *strings.Builder, indent, title, marker string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "%s%s\n", indent, title)
	for _, item := range items {
		fmt.Fprintf(b, "%s  %s %s\n", indent, marker, item)
	}
}

// FormatSummary formats a drift summary for brief output.
func FormatSummary(summary *DriftSummary) string {
	if summary == nil {
		return "No summary available."
	}

	total := summary.MissingTables + summary.ExtraTables + summary.ModifiedTables
	if total == 0 && !summary.SettingsChanged {
		return fmt.Sprintf("No drift detected. %d tables in sync.", summary.Tables)
	}

	var parts []string
	if summary.MissingTables > 0 {
		parts = append(parts, fmt.Sprintf("%d missing", summary.MissingTables))
	}
	if summary.ExtraTables > 0 {
		parts = append(parts, fmt.Sprintf("%d extra", summary.ExtraTables))
	}
	if summary.ModifiedTables > 0 {
		parts = append(parts, fmt.Sprintf("%d modified", summary.ModifiedTables))
	}
	if summary.SettingsChanged {
		parts = append(parts, "settings changed")
	}

	return fmt.Sprintf("Drift detected: %s", strings.Join(parts, ", "))
}

// FormatQuickStatus formats a quick status line for drift detection.
func FormatQuickStatus(hasDrift bool, expectedHash, actualHash string) string {
	if !hasDrift {
		return fmt.Sprintf("OK  %s", truncateHash(expectedHash))
	}
	return fmt.Sprintf("DRIFT  expected: %s  actual: %s",
		truncateHash(expectedHash), truncateHash(actualHash))
}

// truncateHash returns the first 12 characters of a hash for display.
func truncateHash(hash string) string {
	if len(hash) <= 12 {
		return hash
	}
	return hash[:12]
}
