// Package ddl models a relational schema as in-memory objects and renders it
// to MySQL-flavoured DDL.
//
// A Database owns Tables, which own Columns. Columns validate their data type
// and constraints on every mutation; tables and databases render CREATE, ALTER,
// DROP and SHOW statements; all three convert to and from a plain map form for
// storage and transport.
//
// Example:
//
//	db := ddl.NewDatabase("shop")
//
//	users := ddl.NewTable("users")
//	id, _ := ddl.NewColumn("id", "INT")
//	_ = id.AddConstraint("PRIMARY KEY")
//	users.AddColumn(id)
//	db.AddTable(users)
//
//	fmt.Println(db.GenerateCreateDatabase())
//	fmt.Println(users.GenerateCreateTable())
package ddl
