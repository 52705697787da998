package classes

import (
	"context"
	"errors"
	"testing"
	"time"

	"course-admin-go/internal/notifications"
	"course-admin-go/internal/remote"
	"course-admin-go/internal/remote/remotetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ok(data interface{}) remotetest.Handler {
	return func(map[string]interface{}) (interface{}, error) {
		return data, nil
	}
}

func fail(msg string) remotetest.Handler {
	return func(map[string]interface{}) (interface{}, error) {
		return nil, errors.New(msg)
	}
}

func messages(c *notifications.Collector) []string {
	var out []string
	for _, n := range c.Notifications() {
		out = append(out, string(n.Variant)+": "+n.Message)
	}
	return out
}

func newRow() Values {
	return Values{"vacancies": "10", "room": "101", "shift": "Manhã", "time": "2020-01-01T11:00:00.000Z"}
}

func TestAddRowCreatesAndEnrolls(t *testing.T) {
	fake := remotetest.NewFake().
		On(remote.CreateClass, ok(map[string]interface{}{"createClass": map[string]interface{}{"id": "k9"}})).
		On(remote.CreateClassUser, ok(map[string]interface{}{}))
	collector := notifications.NewCollector()

	id, created := NewEditor(fake, collector, time.UTC).AddRow(context.Background(), "u1", "c1", newRow())

	assert.True(t, created)
	assert.Equal(t, "k9", id)

	create := fake.CallsTo(remote.CreateClass)
	require.Len(t, create, 1)
	assert.Equal(t, map[string]interface{}{
		"vacancies":  10,
		"room":       "101",
		"shift":      "Manhã",
		"time":       "11:0",
		"instructor": "u1",
		"courseId":   "c1",
	}, create[0].Variables["params"])

	link := fake.CallsTo(remote.CreateClassUser)
	require.Len(t, link, 1)
	assert.Equal(t, "k9", link[0].Variables["classId"])
	assert.Equal(t, "u1", link[0].Variables["userId"])

	assert.Equal(t, []string{"success: Turma criada", "success: Turma associada com aluno"}, messages(collector))
}

func TestAddRowEnrollFailureIsIndependent(t *testing.T) {
	fake := remotetest.NewFake().
		On(remote.CreateClass, ok(map[string]interface{}{"createClass": map[string]interface{}{"id": "k9"}})).
		On(remote.CreateClassUser, fail("link failed"))
	collector := notifications.NewCollector()

	id, created := NewEditor(fake, collector, time.UTC).AddRow(context.Background(), "u1", "c1", newRow())

	assert.True(t, created)
	assert.Equal(t, "k9", id)
	assert.Empty(t, fake.CallsTo(remote.RemoveClass))
	assert.Equal(t, []string{"success: Turma criada", "error: Erro ao associar turma ao aluno"}, messages(collector))
}

func TestAddRowCreateFailure(t *testing.T) {
	fake := remotetest.NewFake().On(remote.CreateClass, fail("invalid"))
	collector := notifications.NewCollector()

	_, created := NewEditor(fake, collector, time.UTC).AddRow(context.Background(), "u1", "c1", newRow())

	assert.False(t, created)
	assert.Empty(t, fake.CallsTo(remote.CreateClassUser))
	assert.Equal(t, []string{"error: Erro ao criar turma, verifique se todos os campos estão preenchidos"}, messages(collector))
}

func TestAddRowWithoutIDIsFailure(t *testing.T) {
	for _, payload := range []interface{}{nil, map[string]interface{}{"createClass": nil}, map[string]interface{}{"createClass": map[string]interface{}{"id": ""}}} {
		fake := remotetest.NewFake().
			On(remote.CreateClass, ok(payload)).
			On(remote.CreateClassUser, ok(nil))
		collector := notifications.NewCollector()

		classID, created := NewEditor(fake, collector, time.UTC).AddRow(context.Background(), "u1", "c1", newRow())

		assert.False(t, created)
		assert.Empty(t, classID)
		assert.Empty(t, fake.CallsTo(remote.CreateClassUser))
		assert.Equal(t, []string{"error: Erro ao criar turma, verifique se todos os campos estão preenchidos"}, messages(collector))
	}
}

func TestAddRowMissingTime(t *testing.T) {
	fake := remotetest.NewFake()
	collector := notifications.NewCollector()
	row := newRow()
	delete(row, "time")

	_, created := NewEditor(fake, collector, time.UTC).AddRow(context.Background(), "u1", "c1", row)

	assert.False(t, created)
	assert.Empty(t, fake.Calls())
	assert.Len(t, collector.Notifications(), 1)
}

func TestUpdateRowSendsPatch(t *testing.T) {
	fake := remotetest.NewFake().On(remote.UpdateClass, ok(map[string]interface{}{}))
	collector := notifications.NewCollector()

	updated := NewEditor(fake, collector, time.UTC).UpdateRow(context.Background(), edited(Values{"room": "202"}), oldRow())

	assert.True(t, updated)
	assert.Equal(t, map[string]interface{}{"room": "202", "id": "k1"}, fake.CallsTo(remote.UpdateClass)[0].Variables["params"])
	assert.Equal(t, []string{"success: Turma atualizada"}, messages(collector))
}

func TestUpdateRowFailures(t *testing.T) {
	fake := remotetest.NewFake().On(remote.UpdateClass, fail("conflict"))
	collector := notifications.NewCollector()
	e := NewEditor(fake, collector, time.UTC)

	assert.False(t, e.UpdateRow(context.Background(), edited(Values{"room": "202"}), oldRow()))
	assert.False(t, e.UpdateRow(context.Background(), edited(Values{"vacancies": "x"}), oldRow()))

	assert.Len(t, fake.CallsTo(remote.UpdateClass), 1)
	assert.Equal(t, []string{"error: Erro ao atualizar turma", "error: Erro ao atualizar turma"}, messages(collector))
}

func TestDeleteRow(t *testing.T) {
	fake := remotetest.NewFake().On(remote.RemoveClass, ok(map[string]interface{}{"removeClass": true}))
	collector := notifications.NewCollector()

	assert.True(t, NewEditor(fake, collector, nil).DeleteRow(context.Background(), oldRow()))
	assert.Equal(t, "k1", fake.CallsTo(remote.RemoveClass)[0].Variables["id"])
	assert.Equal(t, []string{"success: Turma excluída"}, messages(collector))
}

func TestDeleteRowFailure(t *testing.T) {
	fake := remotetest.NewFake().On(remote.RemoveClass, fail("gone"))
	collector := notifications.NewCollector()

	assert.False(t, NewEditor(fake, collector, nil).DeleteRow(context.Background(), oldRow()))
	assert.Equal(t, []string{"error: Erro ao excluir turma"}, messages(collector))
}
