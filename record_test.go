package porm_test

import (
	"errors"
	"testing"

	"github.com/pauldmccarthy/porm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_FieldsKeepAssignmentOrder(t *testing.T) {
	rec := porm.NewRecord().
		Set("id", porm.IntValue(1)).
		Set("name", porm.TextValue("x")).
		Set("age", porm.IntValue(2))

	assert.Equal(t, []string{"id", "name", "age"}, rec.Fields())

	// reassignment keeps the original position
	rec.Set("name", porm.TextValue("y"))
	assert.Equal(t, []string{"id", "name", "age"}, rec.Fields())
	assert.Equal(t, "y", rec.StringOrDefault("name", ""))
}

func TestRecord_ID(t *testing.T) {
	t.Run("absent id means not persisted", func(t *testing.T) {
		assert.Equal(t, int64(0), porm.NewRecord().ID())
	})

	t.Run("explicit id", func(t *testing.T) {
		assert.Equal(t, int64(7), porm.NewRecord().SetID(7).ID())
	})

	t.Run("non-integer id reads as zero", func(t *testing.T) {
		rec := porm.NewRecord().Set("id", porm.TextValue("7"))
		assert.Equal(t, int64(0), rec.ID())
	})
}

func TestRecord_TypedAccessors(t *testing.T) {
	rec := porm.NewRecord().
		Set("name", porm.TextValue("Ann")).
		Set("age", porm.IntValue(34)).
		Set("score", porm.FloatValue(7.25)).
		Set("note", porm.NullValue())

	name, err := rec.String("name")
	require.NoError(t, err)
	assert.Equal(t, "Ann", name)

	age, err := rec.Int("age")
	require.NoError(t, err)
	assert.Equal(t, int64(34), age)

	score, err := rec.Float("score")
	require.NoError(t, err)
	assert.Equal(t, 7.25, score)

	assert.True(t, rec.IsNull("note"))
	assert.False(t, rec.IsNull("name"))
	assert.False(t, rec.IsNull("missing"))

	t.Run("missing field", func(t *testing.T) {
		_, err := rec.String("missing")
		require.Error(t, err)
		assert.True(t, errors.Is(err, porm.ErrNoSuchField))
		assert.Equal(t, "fallback", rec.StringOrDefault("missing", "fallback"))
	})

	t.Run("wrong type", func(t *testing.T) {
		_, err := rec.Int("name")
		require.Error(t, err)
		assert.True(t, errors.Is(err, porm.ErrWrongFieldType))
		assert.Equal(t, int64(-1), rec.IntOrDefault("name", -1))
		assert.Equal(t, 0.5, rec.FloatOrDefault("name", 0.5))
	})

	t.Run("null reference is not a record", func(t *testing.T) {
		_, err := rec.Ref("note")
		require.Error(t, err)
		assert.True(t, errors.Is(err, porm.ErrWrongFieldType))
	})
}

func TestRecord_CloneIsIndependent(t *testing.T) {
	dept := porm.NewRecord().
		SetID(1).
		Set("name", porm.TextValue("Eng"))

	rec := porm.NewRecord().
		SetID(5).
		Set("name", porm.TextValue("Ann")).
		Set("department_id", porm.RecordValue(dept))

	cp := rec.Clone()
	assert.Equal(t, rec.Fields(), cp.Fields())

	cpDept, err := cp.Ref("department_id")
	require.NoError(t, err)
	assert.Equal(t, "Eng", cpDept.StringOrDefault("name", ""))

	// mutating the copy, nested record included, leaves the original alone
	cp.Set("name", porm.TextValue("Amy"))
	cpDept.Set("name", porm.TextValue("Sales"))

	assert.Equal(t, "Ann", rec.StringOrDefault("name", ""))
	orig, err := rec.Ref("department_id")
	require.NoError(t, err)
	assert.Equal(t, "Eng", orig.StringOrDefault("name", ""))
}
