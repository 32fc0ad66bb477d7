//
// Package coursefile checks that a course workbook is named
// <semester>-<dept>-<course>-<section>.xlsx, e.g. 2515-EE-437-L1.xlsx,
// and reads the course details out of the name.
//
package coursefile

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	semesterPattern = regexp.MustCompile(`^\d{4}$`)
	deptPattern     = regexp.MustCompile(`^[A-Za-z]{2,4}$`)
	coursePattern   = regexp.MustCompile(`^\d{3}$`)
	sectionPattern  = regexp.MustCompile(`^[LT]\d+$`)
)

// Info is the course identity encoded in a valid file name.
type Info struct {
	Semester   string `json:"semester"`
	Department string `json:"department"`
	Course     string `json:"course"`
	Section    string `json:"section"`
	Extension  string `json:"extension"`
}

// CourseCode returns e.g. "EE-437".
func (i Info) CourseCode() string { return i.Department + "-" + i.Course }

// SemesterSection returns e.g. "2515-L1".
func (i Info) SemesterSection() string { return i.Semester + "-" + i.Section }

// DisplayName returns e.g. "EE 437 - Section L1 (Semester 2515)".
func (i Info) DisplayName() string {
	return fmt.Sprintf("%s %s - Section %s (Semester %s)", i.Department, i.Course, i.Section, i.Semester)
}

// NameError explains why a file name was rejected.
type NameError struct {
	Name   string
	Reason string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Reason)
}

//
// Parse validates the base name of path. Department and section are
// upper-cased in the returned Info, the extension lower-cased.
//
func Parse(path string) (Info, error) {
	name := filepath.Base(path)
	ext := filepath.Ext(name)
	info := Info{Extension: strings.ToLower(ext)}

	fail := func(format string, args ...interface{}) (Info, error) {
		return info, &NameError{Name: name, Reason: fmt.Sprintf(format, args...)}
	}

	if info.Extension != ".xlsx" && info.Extension != ".xls" {
		return fail("invalid file extension %q, must be .xlsx or .xls", ext)
	}

	parts := strings.Split(strings.TrimSuffix(name, ext), "-")
	if len(parts) != 4 {
		return fail("expected SEMESTER-DEPT-COURSE-SECTION, found %d components", len(parts))
	}
	semester, dept, course, section := parts[0], parts[1], parts[2], strings.ToUpper(parts[3])

	switch {
	case !semesterPattern.MatchString(semester):
		return fail("invalid semester code %q, must be exactly 4 digits", semester)
	case !deptPattern.MatchString(dept):
		return fail("invalid department code %q, must be 2-4 letters", dept)
	case !coursePattern.MatchString(course):
		return fail("invalid course code %q, must be exactly 3 digits", course)
	case !sectionPattern.MatchString(section):
		return fail("invalid section code %q, must be L or T followed by digits", parts[3])
	}

	info.Semester = semester
	info.Department = strings.ToUpper(dept)
	info.Course = course
	info.Section = section
	return info, nil
}

// Batch is the outcome of checking many file names at once.
type Batch struct {
	Valid   []string
	Invalid []*NameError
}

// Check sorts paths into valid and invalid, keeping input order.
func Check(paths []string) Batch {
	var b Batch
	for _, p := range paths {
		if _, err := Parse(p); err != nil {
			b.Invalid = append(b.Invalid, err.(*NameError))
			continue
		}
		b.Valid = append(b.Valid, p)
	}
	return b
}

// Summary renders the batch result for a console.
func (b Batch) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "valid files: %d\ninvalid files: %d\n", len(b.Valid), len(b.Invalid))
	for _, e := range b.Invalid {
		fmt.Fprintf(&sb, "  %s\n", e)
	}
	if len(b.Invalid) > 0 {
		sb.WriteString("expected format: SEMESTER-DEPT-COURSE-SECTION.xlsx, e.g. 2515-EE-437-L1.xlsx\n")
	}
	return sb.String()
}
