package porm_test

import (
	"testing"

	"github.com/pauldmccarthy/porm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSave_InsertsNewRecords(t *testing.T) {
	t.Run("record without an id field", func(t *testing.T) {
		db, store := seedCompanyDB(t)

		rec := porm.NewRecord().
			Set("name", porm.TextValue("Dee")).
			Set("age", porm.IntValue(29)).
			Set("department_id", porm.IntValue(2))

		require.NoError(t, db.Save("people", rec))

		n, err := store.Count("people")
		require.NoError(t, err)
		assert.Equal(t, 4, n)

		saved, err := db.Query("people", "name = 'Dee'")
		require.NoError(t, err)
		require.Len(t, saved, 1)

		// the engine assigned the next id
		assert.Equal(t, int64(8), saved[0].ID())

		dept, err := saved[0].Ref("department_id")
		require.NoError(t, err)
		assert.Equal(t, "Ops", dept.StringOrDefault("name", ""))
	})

	t.Run("record with an explicit zero id", func(t *testing.T) {
		db, store := seedCompanyDB(t)

		rec := porm.NewRecord().
			SetID(0).
			Set("name", porm.TextValue("Eve")).
			Set("age", porm.IntValue(51))

		require.NoError(t, db.Save("people", rec))

		n, err := store.Count("people")
		require.NoError(t, err)
		assert.Equal(t, 4, n)

		saved, err := db.Query("people", "name = 'Eve'")
		require.NoError(t, err)
		require.Len(t, saved, 1)
		assert.True(t, saved[0].ID() > 0)
	})

	t.Run("nonzero id with no matching row still inserts", func(t *testing.T) {
		db, store := seedCompanyDB(t)

		rec := porm.NewRecord().
			SetID(42).
			Set("name", porm.TextValue("Zed")).
			Set("age", porm.IntValue(19))

		require.NoError(t, db.Save("people", rec))

		n, err := store.Count("people")
		require.NoError(t, err)
		assert.Equal(t, 4, n)

		saved, err := db.Query("people", "id = 42")
		require.NoError(t, err)
		require.Len(t, saved, 1)
		assert.Equal(t, "Zed", saved[0].StringOrDefault("name", ""))
	})
}

func TestSave_UpdatesExistingRecords(t *testing.T) {
	db, store := seedCompanyDB(t)

	recs, err := db.Query("people", "id = 6")
	require.NoError(t, err)
	require.Len(t, recs, 1)

	bob := recs[0]
	bob.Set("age", porm.IntValue(26))

	require.NoError(t, db.Save("people", bob))

	// updated in place, not inserted
	n, err := store.Count("people")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	saved, err := db.Query("people", "id = 6")
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, int64(26), saved[0].IntOrDefault("age", 0))
	assert.Equal(t, "Bob", saved[0].StringOrDefault("name", ""))
}

func TestSave_FlattensResolvedReferences(t *testing.T) {
	db, _ := seedCompanyDB(t)

	depts, err := db.Query("department", "id = 2")
	require.NoError(t, err)
	require.Len(t, depts, 1)

	rec := porm.NewRecord().
		Set("name", porm.TextValue("Fay")).
		Set("age", porm.IntValue(33)).
		Set("department_id", porm.RecordValue(depts[0]))

	require.NoError(t, db.Save("people", rec))

	saved, err := db.Query("people", "name = 'Fay'")
	require.NoError(t, err)
	require.Len(t, saved, 1)

	dept, err := saved[0].Ref("department_id")
	require.NoError(t, err)
	assert.Equal(t, int64(2), dept.ID())
	assert.Equal(t, "Ops", dept.StringOrDefault("name", ""))
}

func TestSave_RoundTripLeavesRowUnchanged(t *testing.T) {
	t.Run("resolved reference and fractional float", func(t *testing.T) {
		db, store := seedCompanyDB(t)

		before := store.Checksum()

		recs, err := db.Query("people", "id = 5")
		require.NoError(t, err)
		require.Len(t, recs, 1)

		require.NoError(t, db.Save("people", recs[0]))

		assert.Equal(t, before, store.Checksum())
	})

	t.Run("whole-valued float keeps its type", func(t *testing.T) {
		store := seedCompany(t)
		require.NoError(t, store.LoadJSON([]byte(`{
			"ratings": [
				{"id": 1, "name": "Cal", "score": 6.0}
			]
		}`)))

		db := porm.New(store, nil)
		before := store.Checksum()

		recs, err := db.Query("ratings", "id = 1")
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, 6.0, recs[0].FloatOrDefault("score", 0))

		require.NoError(t, db.Save("ratings", recs[0]))

		assert.Equal(t, before, store.Checksum())

		saved, err := db.Query("ratings", "id = 1")
		require.NoError(t, err)
		require.Len(t, saved, 1)

		score, err := saved[0].Float("score")
		require.NoError(t, err)
		assert.Equal(t, 6.0, score)
	})
}

func TestSave_CommitsOncePerCall(t *testing.T) {
	db, store := seedCompanyDB(t)

	require.Equal(t, 0, store.Commits())

	rec := porm.NewRecord().
		Set("name", porm.TextValue("Gil")).
		Set("age", porm.IntValue(44))

	require.NoError(t, db.Save("people", rec))
	assert.Equal(t, 1, store.Commits())

	saved, err := db.Query("people", "name = 'Gil'")
	require.NoError(t, err)
	require.Len(t, saved, 1)

	// queries never commit
	assert.Equal(t, 1, store.Commits())

	require.NoError(t, db.Save("people", saved[0]))
	assert.Equal(t, 2, store.Commits())
}
