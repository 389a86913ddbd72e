package entities

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Имена правил, как они попадают в FieldViolation.Rule.
const (
	RuleName  = "name"
	RuleEmail = "email"
)

// MinNameLength - порог правила name для имени, фамилии и username.
const MinNameLength = 3

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation(RuleName, nameRule); err != nil {
		panic(fmt.Sprintf("registering %q rule: %v", RuleName, err))
	}
	return v
}

// nameRule требует длину строки не меньше параметра тега (name=3).
func nameRule(fl validator.FieldLevel) bool {
	minLength, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return utf8.RuneCountInString(fl.Field().String()) >= minLength
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case RuleName:
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case RuleEmail:
		return "must be a valid email"
	default:
		return fmt.Sprintf("failed %q rule", fe.Tag())
	}
}

// ValidateUserInput проверяет все переданные поля и возвращает *ValidationError со всеми нарушениями.
// Отсутствующие поля не проверяются; пустая строка считается переданной.
func ValidateUserInput(in *UserInput) error {
	if in == nil {
		return nil
	}

	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validating user input: %w", err)
	}

	vErr := &ValidationError{Violations: make([]FieldViolation, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		vErr.Violations = append(vErr.Violations, FieldViolation{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: ruleMessage(fe),
		})
	}
	return vErr
}
