// Package schedule implements the travel-scheduling flow: date-range
// validation for the creation form, projection of backend travel records
// into calendar events, and the guarded submit to the backend.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// User-facing validation messages. The product ships in Korean.
const (
	msgEmptyDestination = "여행지를 입력하세요."
	msgIncompleteRange  = "시작 날짜와 종료 날짜를 모두 선택하세요."
	msgInvalidRange     = "종료 날짜는 시작 날짜와 같거나 이후여야 합니다."
)

// DateSelection holds the year/month/day picker values as entered.
// Fields are strings because the picker emits strings; they are not
// validated for calendar correctness beyond what Date needs.
type DateSelection struct {
	Year  string
	Month string
	Day   string
}

// Complete reports whether all three fields are populated.
func (d DateSelection) Complete() bool {
	return d.Year != "" && d.Month != "" && d.Day != ""
}

// Canonical returns the selection as a zero-padded "YYYY-MM-DD" string,
// the form the backend expects.
func (d DateSelection) Canonical() string {
	y, _ := strconv.Atoi(d.Year)
	m, _ := strconv.Atoi(d.Month)
	day, _ := strconv.Atoi(d.Day)
	return fmt.Sprintf("%04d-%02d-%02d", y, m, day)
}

// Date returns the selection as a calendar date in UTC.
func (d DateSelection) Date() time.Time {
	y, _ := strconv.Atoi(d.Year)
	m, _ := strconv.Atoi(d.Month)
	day, _ := strconv.Atoi(d.Day)
	return time.Date(y, time.Month(m), day, 0, 0, 0, 0, time.UTC)
}

// ValidationState is the outcome of validating the creation form.
// ButtonEnabled is true exactly when ErrorMessage is empty.
type ValidationState struct {
	ErrorMessage  string
	ButtonEnabled bool
}

// Validate decides whether the create action may be enabled for the
// given destination and date range. Pure function: same inputs, same
// output, re-evaluated on every form change.
//
// Checks run in order: destination presence, field completeness, then
// calendar-date ordering (end must not precede start).
func Validate(destination string, start, end DateSelection) ValidationState {
	if strings.TrimSpace(destination) == "" {
		return ValidationState{ErrorMessage: msgEmptyDestination}
	}

	if !start.Complete() || !end.Complete() {
		return ValidationState{ErrorMessage: msgIncompleteRange}
	}

	// Compare as calendar dates, not strings, so "2025-6-10" and
	// "2025-06-02" order correctly regardless of zero padding.
	if end.Date().Before(start.Date()) {
		return ValidationState{ErrorMessage: msgInvalidRange}
	}

	return ValidationState{ButtonEnabled: true}
}
