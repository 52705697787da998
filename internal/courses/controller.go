package courses

import (
	"context"
	"strings"
	"time"

	"course-admin-go/internal/model"
	"course-admin-go/internal/remote"
	"course-admin-go/internal/table"
	log "github.com/sirupsen/logrus"
)

var Columns = []table.Column{
	{Title: "Nome", Field: "title", Type: "string", Editable: table.Never},
	{Title: "Início", Field: "start", Type: "datetime", Editable: table.Never},
	{Title: "Fim", Field: "end", Type: "datetime", Editable: table.Never},
	{Title: "Privado", Field: "private", Type: "boolean", Editable: table.Never},
}

// Filter holds the list view state. Private asks the API for private courses
// as well; every other field narrows the fetched rows locally.
type Filter struct {
	Private bool
	Search  string
	Title   string
	Start   *time.Time
	End     *time.Time
}

// PreviewWords is how many words of the description a course card shows.
const PreviewWords = 12

// Row is a course as served to the list view, with its card preview.
type Row struct {
	model.Course
	Preview string `json:"preview"`
}

// Preview keeps the first words of a description, split on single spaces.
func Preview(description string, words int) string {
	if words <= 0 {
		return ""
	}

	parts := strings.Split(description, " ")
	if len(parts) > words {
		parts = parts[:words]
	}
	return strings.Join(parts, " ")
}

func Rows(list []model.Course) []Row {
	rows := make([]Row, 0, len(list))
	for _, course := range list {
		rows = append(rows, Row{Course: course, Preview: Preview(course.Description, PreviewWords)})
	}
	return rows
}

type Controller struct {
	client   remote.Requester
	location *time.Location
}

func NewController(client remote.Requester, location *time.Location) *Controller {
	if location == nil {
		location = time.Local
	}

	return &Controller{
		client:   client,
		location: location,
	}
}

// List never fails: a fetch error is logged and yields an empty list.
func (c *Controller) List(ctx context.Context, f Filter) []model.Course {
	var resp struct {
		ListCourses []model.Course `json:"listCourses"`
	}

	err := c.client.Request(ctx, remote.ListAllCourses, map[string]interface{}{"private": f.Private}, &resp)
	if err != nil {
		log.WithField("op", "listAllCourses").Errorf("listing courses: %v", err)
		return []model.Course{}
	}

	return Apply(resp.ListCourses, f, c.location)
}

func (c *Controller) Page(ctx context.Context, f Filter) table.Result {
	rows := Rows(c.List(ctx, f))
	return table.NewResult(Columns, rows, len(rows))
}

func (c *Controller) Location() *time.Location {
	return c.location
}

func Apply(courses []model.Course, f Filter, location *time.Location) []model.Course {
	out := make([]model.Course, 0, len(courses))
	for _, course := range courses {
		if f.Match(course, location) {
			out = append(out, course)
		}
	}
	return out
}

func (f Filter) Match(course model.Course, location *time.Location) bool {
	if course.Private && !f.Private {
		return false
	}

	if term := strings.ToLower(f.Search); term != "" {
		if !strings.Contains(strings.ToLower(course.Title), term) &&
			!strings.Contains(strings.ToLower(course.Description), term) {
			return false
		}
	}

	if term := strings.ToLower(f.Title); term != "" && !strings.Contains(strings.ToLower(course.Title), term) {
		return false
	}

	if f.Start != nil && !sameDay(course.Start, *f.Start, location) {
		return false
	}

	if f.End != nil && !sameDay(course.End, *f.End, location) {
		return false
	}

	return true
}

func sameDay(a, b time.Time, location *time.Location) bool {
	ay, am, ad := a.In(location).Date()
	by, bm, bd := b.In(location).Date()
	return ay == by && am == bm && ad == bd
}
