package porm_test

import (
	"testing"

	"github.com/pauldmccarthy/porm"
	"github.com/pauldmccarthy/porm/internal/memdb"
)

// seedCompany builds an in-memory database with a three-level foreign
// key chain: people -> department -> company. Person 7 carries a
// dangling department reference on purpose.
func seedCompany(t *testing.T) *memdb.DB {
	t.Helper()

	db := memdb.New()

	fixture := []byte(`{
		"company": [
			{"id": 1, "name": "Initech"}
		],
		"department": [
			{"id": 1, "name": "Eng", "company_id": 1},
			{"id": 2, "name": "Ops", "company_id": 1}
		],
		"people": [
			{"id": 5, "name": "Ann", "age": 34, "score": 7.25, "department_id": 1},
			{"id": 6, "name": "Bob", "age": 25, "score": 5.5, "department_id": 2},
			{"id": 7, "name": "Cal", "age": 41, "score": 6.0, "department_id": 9}
		]
	}`)

	if err := db.LoadJSON(fixture); err != nil {
		t.Fatal(err)
	}

	return db
}

func seedCompanyDB(t *testing.T) (*porm.DB, *memdb.DB) {
	t.Helper()

	store := seedCompany(t)
	return porm.New(store, nil), store
}
