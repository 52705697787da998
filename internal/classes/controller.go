package classes

import (
	"context"
	"fmt"

	"course-admin-go/internal/model"
	"course-admin-go/internal/remote"
	"course-admin-go/internal/table"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentLookups = 8

var Columns = []table.Column{
	{Title: "Vagas", Field: "vacancies", Type: "numeric"},
	{Title: "Sala", Field: "room", Type: "string"},
	{Title: "Turno", Field: "shift", Type: "string"},
	{Title: "Horário", Field: "time", Type: "time"},
	{Title: "Professor", Field: "instructor", Type: "string", Editable: table.Never},
}

// Row is a class as shown in the course detail table. Instructor holds the
// display name; the raw user id moves to InstructorID.
type Row struct {
	ID           string `json:"id"`
	Vacancies    int    `json:"vacancies"`
	Room         string `json:"room"`
	Shift        string `json:"shift"`
	Time         string `json:"time"`
	CourseID     string `json:"courseId"`
	Instructor   string `json:"instructor"`
	InstructorID string `json:"instructorId"`
	Editable     bool   `json:"editable"`
}

// CanModify reports whether the row offers edit and delete actions to the
// acting user. It is a visibility hint, not an authorization check.
func CanModify(instructorID string, course model.Course, actorID string) bool {
	return instructorID == course.Creator || instructorID == actorID
}

type Controller struct {
	client remote.Requester
}

func NewController(client remote.Requester) *Controller {
	return &Controller{client: client}
}

// List fetches the classes of a course and resolves every instructor name.
// Both steps degrade to an empty list on failure.
func (c *Controller) List(ctx context.Context, course model.Course, actorID string) []Row {
	classes, err := c.fetch(ctx, course.ID)
	if err != nil {
		log.WithFields(log.Fields{"op": "listClasses", "course_id": course.ID}).Errorf("listing classes: %v", err)
		return []Row{}
	}

	names, err := c.instructorNames(ctx, classes)
	if err != nil {
		log.WithFields(log.Fields{"op": "searchClassInstructor", "course_id": course.ID}).Errorf("resolving instructors: %v", err)
		return []Row{}
	}

	rows := make([]Row, 0, len(classes))
	for i, cls := range classes {
		rows = append(rows, Row{
			ID:           cls.ID,
			Vacancies:    cls.Vacancies,
			Room:         cls.Room,
			Shift:        cls.Shift,
			Time:         cls.Time,
			CourseID:     cls.CourseID,
			Instructor:   names[i],
			InstructorID: cls.Instructor,
			Editable:     CanModify(cls.Instructor, course, actorID),
		})
	}

	return rows
}

func (c *Controller) Page(ctx context.Context, course model.Course, actorID string) table.Result {
	rows := c.List(ctx, course, actorID)
	return table.NewResult(Columns, rows, len(rows))
}

func (c *Controller) fetch(ctx context.Context, courseID string) ([]model.Class, error) {
	var resp struct {
		ListClasses []model.Class `json:"listClasses"`
	}

	err := c.client.Request(ctx, remote.ListClasses, map[string]interface{}{
		"params": map[string]interface{}{"courseId": courseID},
	}, &resp)
	if err != nil {
		return nil, err
	}

	return resp.ListClasses, nil
}

func (c *Controller) instructorNames(ctx context.Context, classes []model.Class) ([]string, error) {
	names := make([]string, len(classes))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)

	for i := range classes {
		instructorID := classes[i].Instructor
		g.Go(func() error {
			var resp struct {
				SearchUser model.User `json:"searchUser"`
			}
			err := c.client.Request(ctx, remote.SearchClassInstructor, map[string]interface{}{"id": instructorID}, &resp)
			if err != nil {
				return fmt.Errorf("searching instructor %s: %w", instructorID, err)
			}
			names[i] = resp.SearchUser.DisplayName()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return names, nil
}
