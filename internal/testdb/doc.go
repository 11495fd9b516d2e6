//go:build integration

// Package testdb connects integration tests to a real Postgres database.
//
// Tests are skipped unless WORKTRACKER_TEST_DATABASE_URL is set. The schema
// is brought up to date with the embedded goose migrations once per process,
// and each test runs inside a transaction that is rolled back afterwards:
//
//	func TestSomething(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        users := postgres.NewPostgresUserStore(tx, nil)
//	        ...
//	    })
//	}
package testdb
