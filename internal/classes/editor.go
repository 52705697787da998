package classes

import (
	"context"
	"time"

	"course-admin-go/internal/notifications"
	"course-admin-go/internal/remote"
	log "github.com/sirupsen/logrus"
)

// Editor handles the add, update and delete gestures of the class table.
// Every call settles: outcomes are reported through the notifier only.
type Editor struct {
	client   remote.Requester
	notifier notifications.Notifier
	location *time.Location
}

func NewEditor(client remote.Requester, notifier notifications.Notifier, location *time.Location) *Editor {
	if location == nil {
		location = time.Local
	}

	return &Editor{
		client:   client,
		notifier: notifier,
		location: location,
	}
}

// AddRow creates a class taught by actorID and then enrolls the actor in it.
// The enrollment reports its own outcome and never undoes the class.
func (e *Editor) AddRow(ctx context.Context, actorID, courseID string, newData Values) (string, bool) {
	logger := log.WithFields(log.Fields{"op": "createClass", "course_id": courseID})

	params, err := e.createParams(newData)
	if err != nil {
		logger.Errorf("preparing class: %v", err)
		e.notifier.Notify(notifications.NewError("Erro ao criar turma, verifique se todos os campos estão preenchidos"))
		return "", false
	}
	params["instructor"] = actorID
	params["courseId"] = courseID

	var resp struct {
		CreateClass struct {
			ID string `json:"id"`
		} `json:"createClass"`
	}
	err = e.client.Request(ctx, remote.CreateClass, map[string]interface{}{"params": params}, &resp)
	if err == nil && resp.CreateClass.ID == "" {
		err = remote.ErrNoID
	}
	if err != nil {
		logger.Errorf("creating class: %v", err)
		e.notifier.Notify(notifications.NewError("Erro ao criar turma, verifique se todos os campos estão preenchidos"))
		return "", false
	}
	e.notifier.Notify(notifications.NewSuccess("Turma criada"))

	classID := resp.CreateClass.ID
	err = e.client.Request(ctx, remote.CreateClassUser, map[string]interface{}{
		"classId": classID,
		"userId":  actorID,
	}, nil)
	if err != nil {
		log.WithFields(log.Fields{"op": "createClassUser", "class_id": classID}).Errorf("linking class to user: %v", err)
		e.notifier.Notify(notifications.NewError("Erro ao associar turma ao aluno"))
		return classID, true
	}
	e.notifier.Notify(notifications.NewSuccess("Turma associada com aluno"))

	return classID, true
}

func (e *Editor) createParams(newData Values) (map[string]interface{}, error) {
	params := make(map[string]interface{})
	for field, value := range newData {
		if editableFields[field] {
			params[field] = value
		}
	}

	vacancies, err := Vacancies(newData["vacancies"])
	if err != nil {
		return nil, err
	}
	params["vacancies"] = vacancies

	clock, err := Clock(newData["time"], e.location)
	if err != nil {
		return nil, err
	}
	params["time"] = clock

	return params, nil
}

// UpdateRow sends only the fields that differ between the edited row and the
// row as it was before editing.
func (e *Editor) UpdateRow(ctx context.Context, newData, oldData Values) bool {
	patch, err := Diff(newData, oldData, e.location)
	if err != nil {
		log.WithField("op", "updateClass").Errorf("computing class changes: %v", err)
		e.notifier.Notify(notifications.NewError("Erro ao atualizar turma"))
		return false
	}

	err = e.client.Request(ctx, remote.UpdateClass, map[string]interface{}{"params": patch}, nil)
	if err != nil {
		log.WithFields(log.Fields{"op": "updateClass", "class_id": patch["id"]}).Errorf("updating class: %v", err)
		e.notifier.Notify(notifications.NewError("Erro ao atualizar turma"))
		return false
	}
	e.notifier.Notify(notifications.NewSuccess("Turma atualizada"))

	return true
}

func (e *Editor) DeleteRow(ctx context.Context, oldData Values) bool {
	id := rowID(oldData)

	err := e.client.Request(ctx, remote.RemoveClass, map[string]interface{}{"id": id}, nil)
	if err != nil {
		log.WithFields(log.Fields{"op": "removeClass", "class_id": id}).Errorf("removing class: %v", err)
		e.notifier.Notify(notifications.NewError("Erro ao excluir turma"))
		return false
	}
	e.notifier.Notify(notifications.NewSuccess("Turma excluída"))

	return true
}
