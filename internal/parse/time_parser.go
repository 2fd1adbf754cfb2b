package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ParseClockOn parses a hh:mm clock string and places it on the given day.
func ParseClockOn(day time.Time, input string) (time.Time, error) {
	input = strings.TrimSpace(input)

	clockRegex := regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	matches := clockRegex.FindStringSubmatch(input)
	if len(matches) != 3 {
		return time.Time{}, fmt.Errorf("invalid time format. Use: hh:mm (e.g. 08:30)")
	}

	hour, err := strconv.Atoi(matches[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid hour")
	}
	minute, err := strconv.Atoi(matches[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid minute")
	}

	if hour > 23 {
		return time.Time{}, fmt.Errorf("hour must be between 0 and 23")
	}
	if minute > 59 {
		return time.Time{}, fmt.Errorf("minute must be between 0 and 59")
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location()), nil
}

// ParseDate parses a day argument.
// Supported formats:
// - empty (today)
// - "today" / "yesterday"
// - dd/mm/yyyy (e.g., "15/12/2024")
func ParseDate(input string) (time.Time, error) {
	input = strings.ToLower(strings.TrimSpace(input))

	switch input {
	case "", "today":
		return time.Now(), nil
	case "yesterday":
		return time.Now().AddDate(0, 0, -1), nil
	}

	dateRegex := regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	matches := dateRegex.FindStringSubmatch(input)
	if len(matches) != 4 {
		return time.Time{}, fmt.Errorf("invalid date format. Use: dd/mm/yyyy, today, or yesterday")
	}

	day, err := strconv.Atoi(matches[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day")
	}
	month, err := strconv.Atoi(matches[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month")
	}
	year, err := strconv.Atoi(matches[3])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid year")
	}

	if day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("day must be between 1 and 31")
	}
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("month must be between 1 and 12")
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)

	// Check if the date is valid (handles leap years, etc.)
	if date.Day() != day || date.Month() != time.Month(month) || date.Year() != year {
		return time.Time{}, fmt.Errorf("invalid date")
	}

	return date, nil
}

// ParseMonth parses a month argument in mm/yyyy format, defaulting to the
// current month when empty.
func ParseMonth(input string) (int, time.Month, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		now := time.Now()
		return now.Year(), now.Month(), nil
	}

	monthRegex := regexp.MustCompile(`^(\d{1,2})/(\d{4})$`)
	matches := monthRegex.FindStringSubmatch(input)
	if len(matches) != 3 {
		return 0, 0, fmt.Errorf("invalid month format. Use: mm/yyyy (e.g. 03/2026)")
	}

	month, err := strconv.Atoi(matches[1])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("month must be between 1 and 12")
	}
	year, err := strconv.Atoi(matches[2])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year")
	}

	return year, time.Month(month), nil
}
