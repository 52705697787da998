package model

import "strings"

// User is the partial projection returned by searchUser, used for display only.
type User struct {
	ID         string `json:"id"`
	FirstName  string `json:"firstName"`
	SecondName string `json:"secondName"`
}

func (u User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.SecondName)
}
