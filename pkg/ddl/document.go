package ddl

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/devinci-it/hssql/internal/alerr"
)

// Format is a schema document encoding.
type Format string

// Supported document formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat parses a format name. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", alerr.New(alerr.ErrMalformedInput, "unknown document format").
		With("format", s).
		WithAllowed([]string{string(FormatYAML), string(FormatJSON)})
}

// FormatForPath picks a format from a file extension, defaulting to YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Documents mirror the map form with a fixed key order for readable output.
type columnDoc struct {
	Name        string   `yaml:"name" json:"name"`
	DataType    string   `yaml:"data_type" json:"data_type"`
	Constraints []string `yaml:"constraints" json:"constraints"`
}

type tableDoc struct {
	Name        string      `yaml:"name" json:"name"`
	Columns     []columnDoc `yaml:"columns" json:"columns"`
	Constraints []string    `yaml:"constraints" json:"constraints"`
}

type databaseDoc struct {
	DatabaseName string         `yaml:"database_name" json:"database_name"`
	Tables       []tableDoc     `yaml:"tables" json:"tables"`
	Schema       string         `yaml:"schema" json:"schema"`
	Charset      string         `yaml:"charset" json:"charset"`
	Collation    string         `yaml:"collation" json:"collation"`
	Options      map[string]any `yaml:"options" json:"options"`
}

func newDatabaseDoc(d *Database) databaseDoc {
	doc := databaseDoc{
		DatabaseName: d.name,
		Tables:       make([]tableDoc, len(d.tables)),
		Schema:       d.schema,
		Charset:      d.charset,
		Collation:    d.collation,
		Options:      d.Options(),
	}
	if doc.Options == nil {
		doc.Options = map[string]any{}
	}
	for i, t := range d.tables {
		td := tableDoc{
			Name:        t.name,
			Columns:     make([]columnDoc, len(t.columns)),
			Constraints: t.Constraints(),
		}
		for j, c := range t.columns {
			td.Columns[j] = columnDoc{Name: c.name, DataType: c.dataType, Constraints: c.Constraints()}
		}
		doc.Tables[i] = td
	}
	return doc
}

// MarshalDocument encodes the database map form as YAML or JSON.
func MarshalDocument(d *Database, format Format) ([]byte, error) {
	doc := newDatabaseDoc(d)

	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, alerr.Wrap(alerr.EInternalError, err, "failed to encode JSON document").
				WithDatabase(d.name)
		}
		return append(data, '\n'), nil
	case FormatYAML, "":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, alerr.Wrap(alerr.EInternalError, err, "failed to encode YAML document").
				WithDatabase(d.name)
		}
		if err := enc.Close(); err != nil {
			return nil, alerr.Wrap(alerr.EInternalError, err, "failed to encode YAML document").
				WithDatabase(d.name)
		}
		return buf.Bytes(), nil
	}
	return nil, alerr.New(alerr.ErrMalformedInput, "unknown document format").
		With("format", string(format))
}

// UnmarshalDocument decodes a YAML or JSON document into a Database.
// JSON is valid YAML, so a single decoder serves both.
func UnmarshalDocument(data []byte) (*Database, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, alerr.Wrap(alerr.ErrMalformedInput, err, "failed to parse schema document")
	}
	if m == nil {
		return nil, alerr.New(alerr.ErrMalformedInput, "schema document is empty")
	}
	return DatabaseFromMap(m)
}
