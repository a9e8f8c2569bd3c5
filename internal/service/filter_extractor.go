package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"unicode"

	"github.com/noah-isme/smartedu-api/internal/models"
)

type studentDirectory interface {
	FindByRollNo(ctx context.Context, rollNo string) (*models.StudentDetail, error)
	FindByRollNoLike(ctx context.Context, fragment string) (*models.StudentDetail, error)
	FindByNameLike(ctx context.Context, fragment string) (*models.StudentDetail, error)
}

var (
	classPatterns = []string{"TY-CSE", "TY-ECE", "TY-IT", "SY-CSE", "SY-ECE", "SY-IT", "FY-CSE", "FY-ECE", "FY-IT"}
	classYears    = map[string]struct{}{"TY": {}, "SY": {}, "FY": {}, "BE": {}}
)

// FilterExtractor scopes admin queries to a student, class, roll or name.
type FilterExtractor struct {
	students studentDirectory
}

// NewFilterExtractor constructs a FilterExtractor over the student directory.
func NewFilterExtractor(students studentDirectory) *FilterExtractor {
	return &FilterExtractor{students: students}
}

// Extract parses message into admin filters. At most one target student is set.
func (e *FilterExtractor) Extract(ctx context.Context, message string) (models.AdminFilters, error) {
	var filters models.AdminFilters
	message = strings.TrimSpace(message)
	if message == "" {
		return filters, nil
	}

	for _, lookup := range []func(context.Context, string) (*models.StudentDetail, error){
		e.students.FindByRollNo,
		e.students.FindByRollNoLike,
	} {
		student, err := lookup(ctx, message)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return filters, err
		}
		if student != nil {
			id := student.ID
			filters.TargetStudentID = &id
			filters.RollFilter = message
			return filters, nil
		}
	}

	for _, word := range strings.Fields(strings.ToLower(message)) {
		switch {
		case isClassToken(word):
			filters.ClassFilter = word
		case len(word) >= 2 && isDigits(word):
			filters.RollFilter = word
		default:
			if hasLettersAndDigits(word) {
				student, err := e.students.FindByRollNo(ctx, strings.ToUpper(word))
				if err != nil && !errors.Is(err, sql.ErrNoRows) {
					return filters, err
				}
				if student != nil {
					id := student.ID
					filters.RollFilter = student.RollNo
					filters.TargetStudentID = &id
					break
				}
			}
			student, err := e.students.FindByNameLike(ctx, word)
			if err != nil && !errors.Is(err, sql.ErrNoRows) {
				return filters, err
			}
			if student != nil {
				id := student.ID
				filters.NameFilter = word
				filters.TargetStudentID = &id
			}
		}
		if filters.TargetStudentID != nil {
			break
		}
	}

	if filters.RollFilter != "" && filters.TargetStudentID == nil {
		student, err := e.students.FindByRollNo(ctx, filters.RollFilter)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return filters, err
		}
		if student != nil {
			id := student.ID
			filters.TargetStudentID = &id
		}
	}

	return filters, nil
}

func isClassToken(word string) bool {
	upper := strings.ToUpper(word)
	if _, ok := classYears[upper]; ok {
		return true
	}
	for _, pattern := range classPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

// hasLettersAndDigits reports whether word could be a roll number like TYCSE07.
func hasLettersAndDigits(word string) bool {
	var letter, digit bool
	for _, r := range word {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return letter && digit
}
