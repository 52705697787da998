package classes

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func oldRow() Values {
	return Values{
		"id":           "k1",
		"vacancies":    float64(30),
		"room":         "101",
		"shift":        "Manhã",
		"time":         "8:0",
		"instructor":   "Ana Lima",
		"instructorId": "u1",
		"courseId":     "c1",
	}
}

func edited(changes Values) Values {
	row := oldRow()
	for k, v := range changes {
		row[k] = v
	}
	return row
}

func TestDiffOnlyRoom(t *testing.T) {
	patch, err := Diff(edited(Values{"room": "202"}), oldRow(), time.UTC)

	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"room": "202", "id": "k1"}, patch)
}

func TestDiffCoercesVacancies(t *testing.T) {
	patch, err := Diff(edited(Values{"vacancies": "10"}), oldRow(), time.UTC)

	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"vacancies": 10, "id": "k1"}, patch)
}

func TestDiffFormatsTime(t *testing.T) {
	brt := time.FixedZone("BRT", -3*60*60)
	patch, err := Diff(edited(Values{"time": "2020-01-01T12:05:00.000Z"}), oldRow(), brt)

	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"time": "9:5", "id": "k1"}, patch)
}

func TestDiffNoChanges(t *testing.T) {
	patch, err := Diff(oldRow(), oldRow(), time.UTC)

	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"id": "k1"}, patch)
}

func TestDiffIgnoresReadOnlyFields(t *testing.T) {
	patch, err := Diff(edited(Values{"instructor": "Outro Nome", "tableData": map[string]interface{}{"id": 0}}), oldRow(), time.UTC)

	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"id": "k1"}, patch)
}

func TestDiffRejectsBadVacancies(t *testing.T) {
	_, err := Diff(edited(Values{"vacancies": "muitas"}), oldRow(), time.UTC)
	assert.ErrorIs(t, err, ErrInvalidField)

	_, err = Diff(edited(Values{"vacancies": "-1"}), oldRow(), time.UTC)
	assert.ErrorIs(t, err, ErrInvalidField)
}

func TestDiffRequiresID(t *testing.T) {
	newData := edited(Values{"room": "202"})
	delete(newData, "id")

	patch, err := Diff(newData, oldRow(), time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "k1", patch["id"])

	old := oldRow()
	delete(old, "id")
	_, err = Diff(newData, old, time.UTC)
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestVacancies(t *testing.T) {
	cases := []struct {
		in   interface{}
		want int
	}{
		{"10", 10},
		{" 7 ", 7},
		{"12.9", 12},
		{"1e3", 1},
		{"30 vagas", 30},
		{"+4", 4},
		{float64(15), 15},
		{15.7, 15},
		{3, 3},
	}
	for _, c := range cases {
		got, err := Vacancies(c.in)
		assert.NoError(t, err)
		assert.Equal(t, c.want, got)
	}

	_, err := Vacancies(nil)
	assert.ErrorIs(t, err, ErrMissingField)
	_, err = Vacancies(true)
	assert.ErrorIs(t, err, ErrInvalidField)

	for _, bad := range []interface{}{"abc", "-", ".5", "99999999999999999999", 1e300, math.Inf(1), math.NaN(), float64(-3)} {
		_, err = Vacancies(bad)
		assert.ErrorIs(t, err, ErrInvalidField, "%v", bad)
	}
}

func TestClock(t *testing.T) {
	got, err := Clock("08:05", time.UTC)
	assert.NoError(t, err)
	assert.Equal(t, "8:5", got)

	got, err = Clock("19:30:00", time.UTC)
	assert.NoError(t, err)
	assert.Equal(t, "19:30", got)

	got, err = Clock(time.Date(2020, 1, 1, 14, 0, 0, 0, time.UTC), time.UTC)
	assert.NoError(t, err)
	assert.Equal(t, "14:0", got)

	_, err = Clock("25:00", time.UTC)
	assert.ErrorIs(t, err, ErrInvalidField)
	_, err = Clock("", time.UTC)
	assert.ErrorIs(t, err, ErrMissingField)
}
