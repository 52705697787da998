package courses

import (
	"context"
	"time"

	"course-admin-go/internal/model"
	"course-admin-go/internal/notifications"
	"course-admin-go/internal/remote"
	log "github.com/sirupsen/logrus"
)

const isoLayout = "2006-01-02T15:04:05.000Z07:00"

type Input struct {
	Title       string
	Description string
	Start       time.Time
	End         time.Time
	Private     bool
}

func (in Input) params() map[string]interface{} {
	return map[string]interface{}{
		"title":       in.Title,
		"description": in.Description,
		"start":       in.Start.UTC().Format(isoLayout),
		"end":         in.End.UTC().Format(isoLayout),
		"private":     in.Private,
	}
}

// Editor runs course mutations. Outcomes are reported as notifications only;
// none of its methods return an error.
type Editor struct {
	client   remote.Requester
	notifier notifications.Notifier
}

func NewEditor(client remote.Requester, notifier notifications.Notifier) *Editor {
	return &Editor{
		client:   client,
		notifier: notifier,
	}
}

// Create registers the course on behalf of actorID and then links the actor to
// it. A failed link does not undo the course.
func (e *Editor) Create(ctx context.Context, actorID string, in Input) (model.Course, bool) {
	params := in.params()
	params["creator"] = actorID

	var resp struct {
		CreateCourse model.Course `json:"createCourse"`
	}
	err := e.client.Request(ctx, remote.CreateCourse, map[string]interface{}{"params": params}, &resp)
	if err == nil && resp.CreateCourse.ID == "" {
		err = remote.ErrNoID
	}
	if err != nil {
		log.WithField("op", "createCourse").Errorf("creating course: %v", err)
		e.notifier.Notify(notifications.NewError("Erro ao cadastrar curso"))
		return model.Course{}, false
	}
	e.notifier.Notify(notifications.NewSuccess("Curso cadastrado"))

	course := resp.CreateCourse
	err = e.client.Request(ctx, remote.UserCourse, map[string]interface{}{
		"courseId": course.ID,
		"userId":   actorID,
	}, nil)
	if err != nil {
		log.WithFields(log.Fields{"op": "userCourse", "course_id": course.ID}).Errorf("linking course to user: %v", err)
		e.notifier.Notify(notifications.NewError("Erro ao associar curso ao usuário"))
		return course, true
	}
	e.notifier.Notify(notifications.NewSuccess("Curso associado ao usuário"))

	return course, true
}

func (e *Editor) Update(ctx context.Context, id string, in Input) bool {
	params := in.params()
	params["id"] = id

	err := e.client.Request(ctx, remote.UpdateCourseByID, map[string]interface{}{"params": params}, nil)
	if err != nil {
		log.WithFields(log.Fields{"op": "updateCourseById", "course_id": id}).Errorf("updating course: %v", err)
		e.notifier.Notify(notifications.NewError("Erro ao atualizar curso"))
		return false
	}
	e.notifier.Notify(notifications.NewSuccess("Curso atualizado"))

	return true
}

func (e *Editor) Remove(ctx context.Context, id string) bool {
	err := e.client.Request(ctx, remote.RemoveCourseByID, map[string]interface{}{"id": id}, nil)
	if err != nil {
		log.WithFields(log.Fields{"op": "removeCourseById", "course_id": id}).Errorf("removing course: %v", err)
		e.notifier.Notify(notifications.NewError("Erro ao remover curso"))
		return false
	}
	e.notifier.Notify(notifications.NewSuccess("Curso removido"))

	return true
}
