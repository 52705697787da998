package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"course-admin-go/internal/classes"
	"course-admin-go/internal/courses"
	"course-admin-go/internal/export"
	"course-admin-go/internal/model"
	"course-admin-go/internal/notifications"
	"course-admin-go/internal/remote"
	"github.com/gorilla/mux"
	"github.com/newrelic/go-agent/v3/newrelic"
	log "github.com/sirupsen/logrus"
)

// RequesterFactory returns a remote client that carries the caller's
// session token.
type RequesterFactory func(token string) remote.Requester

type Server struct {
	port       int
	jwtKey     string
	remoteFor  RequesterFactory
	location   *time.Location
	ops        notifications.Notifier
	nr         *newrelic.Application
	panels     *courses.Panels
	httpServer *http.Server
}

func NewServer(port int, jwtKey string, remoteFor RequesterFactory, location *time.Location, ops notifications.Notifier, nr *newrelic.Application) *Server {
	if location == nil {
		location = time.Local
	}

	return &Server{
		port:      port,
		jwtKey:    jwtKey,
		remoteFor: remoteFor,
		location:  location,
		ops:       ops,
		nr:        nr,
		panels:    courses.NewPanels(courses.DefaultPanelCapacity),
	}
}

func (s *Server) routes() http.Handler {
	router := mux.NewRouter()
	router.Use(s.logRequests, s.instrument)

	router.HandleFunc("/health", s.health).Methods("GET")

	api := router.PathPrefix("/courses").Subrouter()
	api.Use(s.authenticate)

	api.HandleFunc("", s.listCourses).Methods("GET")
	api.HandleFunc("", s.createCourse).Methods("POST")
	api.HandleFunc("/export", s.exportCourses).Methods("GET")
	api.HandleFunc("/{id}", s.updateCourse).Methods("PUT")
	api.HandleFunc("/{id}", s.removeCourse).Methods("DELETE")
	api.HandleFunc("/{id}/expand", s.expandCourse).Methods("POST")
	api.HandleFunc("/{id}/collapse", s.collapseCourse).Methods("POST")
	api.HandleFunc("/{id}/classes", s.listClasses).Methods("GET")
	api.HandleFunc("/{id}/classes", s.addClass).Methods("POST")
	api.HandleFunc("/{id}/classes/export", s.exportClasses).Methods("GET")
	api.HandleFunc("/{id}/classes/{classId}", s.updateClass).Methods("PUT")
	api.HandleFunc("/{id}/classes/{classId}", s.deleteClass).Methods("DELETE")

	return router
}

func (s *Server) Run() error {
	address := "0.0.0.0"

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%v:%v", address, s.port),
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("listening requests at %v:%v", address, s.port)

	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) requester(r *http.Request) remote.Requester {
	return s.remoteFor(sessionToken(r))
}

// notifier returns a fresh collector for the current request, fanned out to
// the operations sink when one is configured.
func (s *Server) notifier() (*notifications.Collector, notifications.Notifier) {
	collector := notifications.NewCollector()
	return collector, notifications.Fanout{collector, s.ops}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) courseFilter(r *http.Request) (courses.Filter, error) {
	q := r.URL.Query()

	f := courses.Filter{
		Private: truthy(q.Get("private")),
		Search:  q.Get("search"),
		Title:   q.Get("title"),
	}

	if v := q.Get("start"); v != "" {
		t, err := parseFormTime(v, s.location)
		if err != nil {
			return courses.Filter{}, fmt.Errorf("parsing start: %w", err)
		}
		f.Start = &t
	}

	if v := q.Get("end"); v != "" {
		t, err := parseFormTime(v, s.location)
		if err != nil {
			return courses.Filter{}, fmt.Errorf("parsing end: %w", err)
		}
		f.End = &t
	}

	return f, nil
}

// truthy also accepts the "checked" value the table filter row sends for
// boolean columns.
func truthy(v string) bool {
	if strings.EqualFold(v, "checked") {
		return true
	}
	b, _ := strconv.ParseBool(v)
	return b
}

func (s *Server) listCourses(w http.ResponseWriter, r *http.Request) {
	f, err := s.courseFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	page := courses.NewController(s.requester(r), s.location).Page(r.Context(), f)

	writeJSON(w, http.StatusOK, page)
}

func (s *Server) decodeCourse(w http.ResponseWriter, r *http.Request) (courses.Input, bool) {
	var request CourseRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return courses.Input{}, false
	}

	errs := validateStruct(request)
	if errs == nil {
		errs = map[string]string{}
	}

	start, err := parseFormTime(request.Start, s.location)
	if err != nil && errs["start"] == "" {
		errs["start"] = "Data de início inválida"
	}
	end, err := parseFormTime(request.End, s.location)
	if err != nil && errs["end"] == "" {
		errs["end"] = "Data de término inválida"
	}

	if len(errs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, ValidationResponse{Errors: errs})
		return courses.Input{}, false
	}

	return courses.Input{
		Title:       request.Title,
		Description: request.Description,
		Start:       start,
		End:         end,
		Private:     request.Private,
	}, true
}

func (s *Server) createCourse(w http.ResponseWriter, r *http.Request) {
	in, ok := s.decodeCourse(w, r)
	if !ok {
		return
	}

	collector, notifier := s.notifier()
	course, created := courses.NewEditor(s.requester(r), notifier).Create(r.Context(), userID(r), in)

	response := MutationResponse{OK: created, Notifications: collector.Notifications()}
	status := http.StatusOK
	if created {
		response.Data = course
		status = http.StatusCreated
	}

	writeJSON(w, status, response)
}

func (s *Server) updateCourse(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	in, ok := s.decodeCourse(w, r)
	if !ok {
		return
	}

	collector, notifier := s.notifier()
	updated := courses.NewEditor(s.requester(r), notifier).Update(r.Context(), id, in)
	if updated {
		s.panels.Forget(id)
	}

	writeJSON(w, http.StatusOK, MutationResponse{OK: updated, Notifications: collector.Notifications()})
}

// removeCourse answers with the refreshed list, private courses included.
func (s *Server) removeCourse(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	client := s.requester(r)

	collector, notifier := s.notifier()
	removed := courses.NewEditor(client, notifier).Remove(r.Context(), id)
	if removed {
		s.panels.Forget(id)
	}

	page := courses.NewController(client, s.location).Page(r.Context(), courses.Filter{Private: true})

	writeJSON(w, http.StatusOK, MutationResponse{OK: removed, Notifications: collector.Notifications(), Data: page})
}

func (s *Server) expandCourse(w http.ResponseWriter, r *http.Request) {
	course := model.Course{ID: mux.Vars(r)["id"], Creator: r.URL.Query().Get("creator")}
	if course.Creator == "" {
		http.Error(w, "missing creator", http.StatusBadRequest)
		return
	}

	detail := s.panels.Get(userID(r), course)
	creator := detail.Expand(r.Context(), s.requester(r))

	writeJSON(w, http.StatusOK, DetailResponse{
		Expanded:    detail.Expanded(),
		CreatorID:   course.Creator,
		FirstName:   creator.FirstName,
		SecondName:  creator.SecondName,
		DisplayName: creator.DisplayName(),
	})
}

func (s *Server) collapseCourse(w http.ResponseWriter, r *http.Request) {
	detail, ok := s.panels.Lookup(userID(r), mux.Vars(r)["id"])
	if !ok {
		writeJSON(w, http.StatusOK, DetailResponse{})
		return
	}

	detail.Collapse()
	creator := detail.Creator()

	writeJSON(w, http.StatusOK, DetailResponse{
		Expanded:    detail.Expanded(),
		CreatorID:   detail.Course().Creator,
		FirstName:   creator.FirstName,
		SecondName:  creator.SecondName,
		DisplayName: creator.DisplayName(),
	})
}

func (s *Server) routeCourse(r *http.Request) model.Course {
	return model.Course{ID: mux.Vars(r)["id"], Creator: r.URL.Query().Get("creator")}
}

func (s *Server) listClasses(w http.ResponseWriter, r *http.Request) {
	page := classes.NewController(s.requester(r)).Page(r.Context(), s.routeCourse(r), userID(r))

	writeJSON(w, http.StatusOK, page)
}

func (s *Server) addClass(w http.ResponseWriter, r *http.Request) {
	var request AddClassRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	collector, notifier := s.notifier()
	classID, created := classes.NewEditor(s.requester(r), notifier, s.location).
		AddRow(r.Context(), userID(r), mux.Vars(r)["id"], request.NewData)

	response := MutationResponse{OK: created, Notifications: collector.Notifications()}
	status := http.StatusOK
	if created {
		response.Data = map[string]string{"id": classID}
		status = http.StatusCreated
	}

	writeJSON(w, status, response)
}

func (s *Server) updateClass(w http.ResponseWriter, r *http.Request) {
	var request UpdateClassRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if request.NewData == nil {
		request.NewData = classes.Values{}
	}
	if request.OldData == nil {
		request.OldData = classes.Values{}
	}
	request.NewData["id"] = mux.Vars(r)["classId"]

	collector, notifier := s.notifier()
	updated := classes.NewEditor(s.requester(r), notifier, s.location).
		UpdateRow(r.Context(), request.NewData, request.OldData)

	writeJSON(w, http.StatusOK, MutationResponse{OK: updated, Notifications: collector.Notifications()})
}

func (s *Server) deleteClass(w http.ResponseWriter, r *http.Request) {
	var request DeleteClassRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	if request.OldData == nil {
		request.OldData = classes.Values{}
	}
	request.OldData["id"] = mux.Vars(r)["classId"]

	collector, notifier := s.notifier()
	deleted := classes.NewEditor(s.requester(r), notifier, s.location).
		DeleteRow(r.Context(), request.OldData)

	writeJSON(w, http.StatusOK, MutationResponse{OK: deleted, Notifications: collector.Notifications()})
}

func (s *Server) exportCourses(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f, err := s.courseFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	list := courses.NewController(s.requester(r), s.location).List(r.Context(), f)
	s.writeExport(w, r, format, "cursos", export.CourseSheet(list, s.location))
}

func (s *Server) exportClasses(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	course := s.routeCourse(r)
	course.Title = r.URL.Query().Get("title")

	rows := classes.NewController(s.requester(r)).List(r.Context(), course, userID(r))
	s.writeExport(w, r, format, "turmas", export.ClassSheet(course, rows))
}

func (s *Server) writeExport(w http.ResponseWriter, r *http.Request, format export.Format, name string, sheet export.Sheet) {
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+"."+string(format)))

	if err := export.Write(w, format, sheet); err != nil {
		log.WithField("request_id", requestID(r)).Errorf("exporting %s: %v", name, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("encoding response: %v", err)
	}
}
