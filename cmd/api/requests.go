package main

import (
	"course-admin-go/internal/classes"
	"course-admin-go/internal/notifications"
)

// CourseRequest is the create/update course form. Start and End arrive as
// RFC 3339 timestamps or as naive "datetime-local" values read in the
// server's timezone.
type CourseRequest struct {
	Title       string `json:"title" validate:"required,min=10"`
	Description string `json:"description" validate:"required,min=30"`
	Start       string `json:"start" validate:"required"`
	End         string `json:"end" validate:"required"`
	Private     bool   `json:"private"`
}

type AddClassRequest struct {
	NewData classes.Values `json:"newData"`
}

type UpdateClassRequest struct {
	NewData classes.Values `json:"newData"`
	OldData classes.Values `json:"oldData"`
}

type DeleteClassRequest struct {
	OldData classes.Values `json:"oldData"`
}

type MutationResponse struct {
	OK            bool                         `json:"ok"`
	Notifications []notifications.Notification `json:"notifications"`
	Data          interface{}                  `json:"data,omitempty"`
}

type DetailResponse struct {
	Expanded    bool   `json:"expanded"`
	CreatorID   string `json:"creatorId"`
	FirstName   string `json:"firstName"`
	SecondName  string `json:"secondName"`
	DisplayName string `json:"displayName"`
}

type ValidationResponse struct {
	Errors map[string]string `json:"errors"`
}
