package model

// Class is a scheduled section of a Course. Time is the "H:M" wall clock
// string the remote API stores.
type Class struct {
	ID         string `json:"id"`
	Vacancies  int    `json:"vacancies"`
	Room       string `json:"room"`
	Shift      string `json:"shift"`
	Time       string `json:"time"`
	Instructor string `json:"instructor"`
	CourseID   string `json:"courseId"`
}
