package courses

import (
	"context"
	"sync"

	"course-admin-go/internal/model"
	"course-admin-go/internal/remote"
	lru "github.com/hashicorp/golang-lru/v2"
	log "github.com/sirupsen/logrus"
)

// Detail is the expansion panel of a single course. The creator is looked up
// on the first expand and kept afterwards; a failed lookup is retried on the
// next expand.
type Detail struct {
	course model.Course

	mu       sync.Mutex
	creator  model.User
	resolved bool
	expanded bool
}

func NewDetail(course model.Course) *Detail {
	return &Detail{course: course}
}

func (d *Detail) Expand(ctx context.Context, client remote.Requester) model.User {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.expanded = true
	if d.resolved {
		return d.creator
	}

	var resp struct {
		SearchUser model.User `json:"searchUser"`
	}
	err := client.Request(ctx, remote.SearchCourseCreator, map[string]interface{}{"id": d.course.Creator}, &resp)
	if err != nil {
		log.WithFields(log.Fields{"op": "searchCourseCreator", "course_id": d.course.ID}).Errorf("resolving course creator: %v", err)
		return model.User{ID: d.course.Creator}
	}

	d.creator = resp.SearchUser
	if d.creator.ID == "" {
		d.creator.ID = d.course.Creator
	}
	d.resolved = true

	return d.creator
}

// Creator returns the resolved creator without triggering a lookup.
func (d *Detail) Creator() model.User {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.creator
}

func (d *Detail) Course() model.Course {
	return d.course
}

func (d *Detail) Collapse() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.expanded = false
}

func (d *Detail) Expanded() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.expanded
}

// DefaultPanelCapacity bounds how many panels Panels keeps before evicting
// the least recently used one.
const DefaultPanelCapacity = 4096

type panelKey struct {
	userID   string
	courseID string
}

// Panels keeps one Detail per user and course. Panels of different users
// never share a resolved creator, so every lookup runs under the session of
// the user who expanded the panel.
type Panels struct {
	mu      sync.Mutex
	details *lru.Cache[panelKey, *Detail]
}

func NewPanels(capacity int) *Panels {
	if capacity <= 0 {
		capacity = DefaultPanelCapacity
	}

	details, err := lru.New[panelKey, *Detail](capacity)
	if err != nil {
		// only returned for a non-positive size
		panic(err)
	}

	return &Panels{details: details}
}

// Get returns the user's panel for the course, starting a fresh one when the
// course is new or its creator changed.
func (p *Panels) Get(userID string, course model.Course) *Detail {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := panelKey{userID: userID, courseID: course.ID}
	d, ok := p.details.Get(key)
	if !ok || d.course.Creator != course.Creator {
		d = NewDetail(course)
		p.details.Add(key, d)
	}

	return d
}

func (p *Panels) Lookup(userID, courseID string) (*Detail, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.details.Get(panelKey{userID: userID, courseID: courseID})
}

// Forget drops the panels every user holds for the course.
func (p *Panels) Forget(courseID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, key := range p.details.Keys() {
		if key.courseID == courseID {
			p.details.Remove(key)
		}
	}
}

func (p *Panels) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.details.Len()
}
