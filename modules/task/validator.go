package task

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Validation messages surfaced to API clients.
const (
	MsgPriorityRange     = "Priority must be between 0 and 5"
	MsgPriorityNotNumber = "Priority should be a number"
	MsgCompletedBool     = "Completed should be a boolean"
	MsgTitleLength       = "Title must be between 1 and 200 characters"
	MsgDescriptionLength = "Description must be less than 1000 characters"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 1000
	minPriority       = 0
	maxPriority       = 5
)

// ValidateTask strictly validates a full create request. Required fields are
// pointers, so a missing key fails validation instead of panicking. A missing
// description is fine and means "no description".
func ValidateTask(req CreateTaskRequest) error {
	if req.Title == nil || *req.Title == "" || utf8.RuneCountInString(*req.Title) > maxTitleLen {
		return errors.New(MsgTitleLength)
	}
	if req.Priority == nil {
		return errors.New(MsgPriorityNotNumber)
	}
	if *req.Priority < minPriority || *req.Priority > maxPriority {
		return errors.New(MsgPriorityRange)
	}
	if req.Completed == nil {
		return errors.New(MsgCompletedBool)
	}
	if utf8.RuneCountInString(req.Description) > maxDescriptionLen {
		return errors.New(MsgDescriptionLength)
	}
	return nil
}

// ValidateTaskUpdate leniently validates a partial update payload, field by
// field. Valid fields land in the accepted map keyed by column name; invalid
// fields produce an error message and are excluded. Fields absent from the
// payload are left untouched. It always returns both values and never panics.
func ValidateTaskUpdate(payload map[string]any) ([]string, map[string]any) {
	errs := []string{}
	updates := map[string]any{}

	if v, ok := payload["priority"]; ok {
		priority, err := coerceInt(v)
		switch {
		case err != nil:
			errs = append(errs, MsgPriorityNotNumber)
		case priority < minPriority || priority > maxPriority:
			errs = append(errs, MsgPriorityRange)
		default:
			updates["priority"] = priority
		}
	}

	if v, ok := payload["completed"]; ok {
		if completed, isBool := v.(bool); isBool {
			updates["completed"] = completed
		} else {
			errs = append(errs, MsgCompletedBool)
		}
	}

	if v, ok := payload["title"]; ok {
		title, isString := v.(string)
		if !isString || title == "" || utf8.RuneCountInString(title) > maxTitleLen {
			errs = append(errs, MsgTitleLength)
		} else {
			updates["title"] = title
		}
	}

	if v, ok := payload["description"]; ok {
		description, isString := v.(string)
		if !isString || utf8.RuneCountInString(description) > maxDescriptionLen {
			errs = append(errs, MsgDescriptionLength)
		} else {
			updates["description"] = description
		}
	}

	return errs, updates
}

// coerceInt converts a decoded JSON value to an integer. Numbers truncate
// toward zero, numeric strings are parsed base-10, everything else is an
// error. Booleans are not numbers.
func coerceInt(v any) (int, error) {
	switch value := v.(type) {
	case float64:
		return int(value), nil
	case int:
		return value, nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return 0, err
		}
		return n, nil
	default:
		return 0, errors.New("not a number")
	}
}
