package app_errors

import "errors"

var ErrCourseNotFound = errors.New("course not found")
var ErrLessonNotFound = errors.New("lesson not found")
var ErrNotEnrolled = errors.New("not enrolled in course")
var ErrAlreadyEnrolled = errors.New("already enrolled in course")
var ErrUnauthorized = errors.New("unauthorized")
var ErrCourseNotLoaded = errors.New("course content not loaded yet")
var ErrDuplicateModule = errors.New("module with this order already exists in the course")
var ErrDuplicateLesson = errors.New("lesson with this order already exists in the module")
var ErrUnknownContentType = errors.New("unknown lesson content type")
var ErrMissingContent = errors.New("lesson content payload is empty")
var ErrContentMismatch = errors.New("lesson content does not match its content type")
