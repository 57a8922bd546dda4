package session

import (
	"github.com/devinci-it/hssql/internal/alerr"
	"github.com/devinci-it/hssql/pkg/ddl"
)

// Stored documents use the JSON document form, which keeps key order stable
// across saves so identical schemas produce identical rows.

func encodeDocument(db *ddl.Database) (string, error) {
	data, err := ddl.MarshalDocument(db, ddl.FormatJSON)
	if err != nil {
		return "", alerr.Wrap(alerr.ErrCacheWrite, err, "failed to encode session document").
			WithDatabase(db.Name())
	}
	return string(data), nil
}

func decodeDocument(name, doc string) (*ddl.Database, error) {
	db, err := ddl.UnmarshalDocument([]byte(doc))
	if err != nil {
		return nil, alerr.Wrap(alerr.ErrCacheCorrupt, err, "stored session document cannot be decoded").
			WithDatabase(name).
			WithHelp("delete the session with 'hssql session delete " + name + "' and import it again")
	}
	return db, nil
}
