package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks the fields required when the personal info form is submitted
func (p *PersonalInfo) Validate() error {
	return validate.Struct(p)
}

// Validate checks the language name and level range
func (l *Language) Validate() error {
	return validate.Struct(l)
}

// Validate checks the project image cap
func (p *Project) Validate() error {
	return validate.Struct(p)
}

// Validate checks the optional GPA is a number on the 0-4 scale
func (e *Education) Validate() error {
	gpa := strings.TrimSpace(e.GPA)
	if gpa == "" {
		return nil
	}
	v, err := strconv.ParseFloat(gpa, 64)
	if err != nil {
		return fmt.Errorf("gpa %q is not a number", e.GPA)
	}
	if v < 0 || v > 4 {
		return fmt.Errorf("gpa %s is outside the 0-4 scale", gpa)
	}
	return nil
}
