// Package testutil provides test helpers for hssql.
//
// This package includes:
//   - SQL assertion helpers for comparing generated DDL
//   - Error assertion helpers for checking error codes
//   - Golden file testing support
//   - Schema document fixtures and throwaway store paths
//
// # Golden Files
//
// Golden files are stored in the testdata/ directory of the package under
// test. Update them with:
//
//	go test ./... -update-golden
//
// # Example Usage
//
//	func TestCreateTable(t *testing.T) {
//	    tbl := ddl.NewTable("users")
//	    tbl.AddColumn(testutil.MustValue(ddl.NewColumn("id", "INT"))(t))
//
//	    testutil.AssertSQL(t, tbl.GenerateCreateTable(), "CREATE TABLE users ( id INT );")
//	}
package testutil
