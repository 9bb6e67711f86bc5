package models

import (
	"errors"
	"fmt"
	"strings"
)

type Color string

const (
	ColorGreen Color = "GREEN"
	ColorBlue  Color = "BLUE"
	ColorRed   Color = "RED"
	ColorBlack Color = "BLACK"
)

type Support string

const (
	SupportSki       Support = "SKI"
	SupportSnowboard Support = "SNOWBOARD"
)

type TypeCourse string

const (
	TypeCourseIndividual      TypeCourse = "INDIVIDUAL"
	TypeCourseCollectiveChild TypeCourse = "COLLECTIVE_CHILD"
	TypeCourseCollectiveAdult TypeCourse = "COLLECTIVE_ADULT"
)

var (
	colors      = []Color{ColorGreen, ColorBlue, ColorRed, ColorBlack}
	supports    = []Support{SupportSki, SupportSnowboard}
	typeCourses = []TypeCourse{TypeCourseIndividual, TypeCourseCollectiveChild, TypeCourseCollectiveAdult}
)

// ErrInvalidEnum is matched by every *InvalidEnumError.
var ErrInvalidEnum = errors.New("invalid enum value")

type InvalidEnumError struct {
	Enum  string
	Value string
}

func (e *InvalidEnumError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Enum, e.Value)
}

func (e *InvalidEnumError) Is(target error) bool {
	return target == ErrInvalidEnum
}

// ParseColor maps free text ("red", " Red ") to a Color.
func ParseColor(s string) (Color, error) {
	return parseEnum("color", s, colors)
}

func ParseSupport(s string) (Support, error) {
	return parseEnum("support", s, supports)
}

func ParseTypeCourse(s string) (TypeCourse, error) {
	return parseEnum("course type", s, typeCourses)
}

func parseEnum[E ~string](name, raw string, members []E) (E, error) {
	key := strings.ToUpper(strings.TrimSpace(raw))
	for _, m := range members {
		if string(m) == key {
			return m, nil
		}
	}
	var zero E
	return zero, &InvalidEnumError{Enum: name, Value: raw}
}
