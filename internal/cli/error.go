package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/devinci-it/hssql/internal/alerr"
)

// shownKeys are context keys rendered on their own lines rather than as details.
var shownKeys = map[string]bool{
	"file": true, "notes": true, "helps": true,
}

// FormatError formats an error for CLI display in rustc style:
//
//	error[E2005]: unknown data type
//	   |
//	   | column: id
//	   | type: INTEGR
//	help: did you mean 'INTEGER'?
//
// Errors joined with errors.Join are rendered one after another.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var b strings.Builder
		for _, e := range joined.Unwrap() {
			b.WriteString(FormatError(e))
		}
		return b.String()
	}

	var ae *alerr.Error
	if errors.As(err, &ae) {
		return formatCodedError(ae)
	}
	return formatGenericError(err)
}

// formatCodedError formats an *alerr.Error.
func formatCodedError(err *alerr.Error) string {
	var b strings.Builder
	ctx := err.GetContext()

	b.WriteString(Error("error"))
	b.WriteString("[")
	b.WriteString(Code(string(err.GetCode())))
	b.WriteString("]: ")
	b.WriteString(err.GetMessage())
	b.WriteString("\n")

	if file, _ := ctx["file"].(string); file != "" {
		b.WriteString("  ")
		b.WriteString(Arrow())
		b.WriteString(" ")
		b.WriteString(FilePath(file))
		b.WriteString("\n")
	}

	// Sorted for deterministic output
	keys := make([]string, 0, len(ctx))
	for k := range ctx {
		if !shownKeys[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	if len(keys) > 0 {
		writeGutter(&b, "")
		for _, k := range keys {
			writeGutter(&b, fmt.Sprintf("%s: %v", k, ctx[k]))
		}
	}

	for _, note := range err.Notes() {
		writeGutter(&b, "")
		b.WriteString(Note("note"))
		b.WriteString(": ")
		b.WriteString(note)
		b.WriteString("\n")
	}

	for _, help := range err.Helps() {
		b.WriteString(Help("help"))
		b.WriteString(": ")
		b.WriteString(help)
		b.WriteString("\n")
	}

	if cause := err.GetCause(); cause != nil {
		writeGutter(&b, "")
		b.WriteString(Note("cause"))
		b.WriteString(": ")
		b.WriteString(firstLine(cause.Error()))
		b.WriteString("\n")
	}

	return b.String()
}

// writeGutter writes "   | text".
func writeGutter(b *strings.Builder, text string) {
	b.WriteString("   ")
	b.WriteString(Pipe())
	if text != "" {
		b.WriteString(" ")
		b.WriteString(text)
	}
	b.WriteString("\n")
}

// firstLine keeps the headline of a nested alerr message; its context is
// already summarized by the outer error.
func firstLine(msg string) string {
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		return msg[:i]
	}
	return msg
}

// formatGenericError formats a non-alerr error.
func formatGenericError(err error) string {
	return Error("error") + ": " + err.Error() + "\n"
}

// FormatWarning formats a warning message with optional help lines.
func FormatWarning(msg string, helps ...string) string {
	var b strings.Builder
	b.WriteString(Warning("warning"))
	b.WriteString(": ")
	b.WriteString(msg)
	b.WriteString("\n")
	for _, h := range helps {
		b.WriteString(FormatHelp(h))
	}
	return b.String()
}

// FormatNote formats a note message.
func FormatNote(msg string) string {
	return Note("note") + ": " + msg + "\n"
}

// FormatHelp formats a help message.
func FormatHelp(msg string) string {
	return Help("help") + ": " + msg + "\n"
}

// FormatSuccess formats a success message.
func FormatSuccess(msg string) string {
	return Success("success") + ": " + msg + "\n"
}
