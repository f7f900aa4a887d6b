package domain

import "strings"

// ServiceName returns the application part of a unit name ("mysql/3" -> "mysql").
func ServiceName(unit string) string {
	name, _, _ := strings.Cut(unit, "/")
	return name
}

// UnitNumber returns the ordinal part of a unit name, or "" if absent.
func UnitNumber(unit string) string {
	_, num, _ := strings.Cut(unit, "/")
	return num
}
