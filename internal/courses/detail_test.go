package courses

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"course-admin-go/internal/model"
	"course-admin-go/internal/remote"
	"course-admin-go/internal/remote/remotetest"
	"github.com/stretchr/testify/assert"
)

func TestExpandResolvesCreatorOnce(t *testing.T) {
	fake := remotetest.NewFake().On(remote.SearchCourseCreator, func(vars map[string]interface{}) (interface{}, error) {
		return map[string]interface{}{"searchUser": map[string]interface{}{"firstName": "Ana", "secondName": "Lima"}}, nil
	})
	d := NewDetail(model.Course{ID: "1", Creator: "u1"})

	first := d.Expand(context.Background(), fake)
	d.Collapse()
	assert.False(t, d.Expanded())
	second := d.Expand(context.Background(), fake)

	assert.True(t, d.Expanded())
	assert.Equal(t, "Ana Lima", first.DisplayName())
	assert.Equal(t, "u1", first.ID)
	assert.Equal(t, first, second)
	assert.Len(t, fake.CallsTo(remote.SearchCourseCreator), 1)
	assert.Equal(t, "u1", fake.Calls()[0].Variables["id"])
}

func TestExpandRetriesAfterFailure(t *testing.T) {
	var attempts int32
	fake := remotetest.NewFake().On(remote.SearchCourseCreator, func(map[string]interface{}) (interface{}, error) {
		if atomic.AddInt32(&attempts, 1) == 1 {
			return nil, errors.New("timeout")
		}
		return map[string]interface{}{"searchUser": map[string]interface{}{"firstName": "Ana", "secondName": "Lima"}}, nil
	})
	d := NewDetail(model.Course{ID: "1", Creator: "u1"})

	failed := d.Expand(context.Background(), fake)
	assert.Equal(t, "", failed.DisplayName())

	resolved := d.Expand(context.Background(), fake)
	assert.Equal(t, "Ana Lima", resolved.DisplayName())
}

func TestPanelsKeepDetailPerCourse(t *testing.T) {
	p := NewPanels(0)
	course := model.Course{ID: "1", Creator: "u1"}

	a := p.Get("u1", course)
	assert.Same(t, a, p.Get("u1", course))

	course.Creator = "u2"
	b := p.Get("u1", course)
	assert.NotSame(t, a, b)

	p.Forget("1")
	assert.NotSame(t, b, p.Get("u1", course))
}

func TestPanelsAreScopedPerUser(t *testing.T) {
	var calls int32
	fake := remotetest.NewFake().On(remote.SearchCourseCreator, func(map[string]interface{}) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return map[string]interface{}{"searchUser": map[string]interface{}{"firstName": "Ana", "secondName": "Lima"}}, nil
	})
	p := NewPanels(0)
	course := model.Course{ID: "1", Creator: "u1"}

	p.Get("u1", course).Expand(context.Background(), fake)

	_, ok := p.Lookup("u2", "1")
	assert.False(t, ok)

	other := p.Get("u2", course)
	assert.NotSame(t, other, p.Get("u1", course))
	assert.False(t, other.Expanded())
	assert.Equal(t, model.User{}, other.Creator())

	other.Expand(context.Background(), fake)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))

	other.Collapse()
	assert.True(t, p.Get("u1", course).Expanded())

	p.Forget("1")
	assert.Equal(t, 0, p.Len())
}

func TestPanelsEvictLeastRecentlyUsed(t *testing.T) {
	p := NewPanels(2)

	first := p.Get("u1", model.Course{ID: "1", Creator: "u1"})
	p.Get("u1", model.Course{ID: "2", Creator: "u1"})
	p.Get("u1", model.Course{ID: "3", Creator: "u1"})

	assert.Equal(t, 2, p.Len())
	_, ok := p.Lookup("u1", "1")
	assert.False(t, ok)
	assert.NotSame(t, first, p.Get("u1", model.Course{ID: "1", Creator: "u1"}))

	for i := 0; i < 100; i++ {
		p.Get("u1", model.Course{ID: fmt.Sprintf("bogus-%d", i), Creator: "x"})
	}
	assert.Equal(t, 2, p.Len())
}

func TestLookupAndCreator(t *testing.T) {
	fake := remotetest.NewFake().On(remote.SearchCourseCreator, func(map[string]interface{}) (interface{}, error) {
		return map[string]interface{}{"searchUser": map[string]interface{}{"id": "u1", "firstName": "Ana", "secondName": "Lima"}}, nil
	})
	p := NewPanels(0)

	_, ok := p.Lookup("u1", "1")
	assert.False(t, ok)

	d := p.Get("u1", model.Course{ID: "1", Creator: "u1"})
	assert.Equal(t, model.User{}, d.Creator())

	d.Expand(context.Background(), fake)

	found, ok := p.Lookup("u1", "1")
	assert.True(t, ok)
	assert.Equal(t, "Ana Lima", found.Creator().DisplayName())
	assert.Equal(t, "u1", found.Course().Creator)
}
