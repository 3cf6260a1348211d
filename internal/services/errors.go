package services

import (
	stderrors "errors"
	"reflect"
	"sort"
	"strings"
	"time"

	"engler-house/internal/repositories"

	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

var (
	ErrNotFound           = repositories.ErrNotFound
	ErrValidation         = stderrors.New("validation failed")
	ErrInvalidCredentials = stderrors.New("invalid email or password")
	ErrAccountDisabled    = stderrors.New("account is disabled")
	ErrEmailTaken         = stderrors.New("email is already registered")
	ErrOrderNumberTaken   = stderrors.New("order number is already used")
)

var validate = newValidator()

// newValidator отдаёт в ошибках json-имена полей, чтобы они совпадали с формой.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidationError собирает ошибки по полям формы; errors.Is(err, ErrValidation) == true.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = msg
	}
}

func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Err() error {
	if e.Empty() {
		return nil
	}
	return e
}

// FieldErrors достаёт ошибки по полям, если err является ошибкой валидации.
func FieldErrors(err error) map[string]string {
	var verr *ValidationError
	if stderrors.As(err, &verr) {
		return verr.Fields
	}
	return nil
}

const MsgRequired = "Обязательное поле"

var tagMessages = map[string]string{
	"required": MsgRequired,
	"email":    "Некорректный email",
	"max":      "Слишком длинное значение",
	"min":      "Слишком короткое значение",
	"datetime": "Дата в формате ГГГГ-ММ-ДД",
	"oneof":    "Недопустимое значение",
}

// check прогоняет структуру через validator и собирает ошибки по json-именам полей.
func check(v any) *ValidationError {
	verr := &ValidationError{}
	err := validate.Struct(v)
	if err == nil {
		return verr
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		verr.Add("_", err.Error())
		return verr
	}
	for _, fe := range fieldErrs {
		msg, ok := tagMessages[fe.Tag()]
		if !ok {
			msg = "Некорректное значение"
		}
		verr.Add(fe.Field(), msg)
	}
	return verr
}

// parseDate разбирает дату формы; при ошибке пишет её в verr.
func parseDate(verr *ValidationError, field, value string) time.Time {
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(value), time.UTC)
	if err != nil {
		verr.Add(field, tagMessages["datetime"])
		return time.Time{}
	}
	return t
}

func checkRange(verr *ValidationError, start, end time.Time) {
	if start.IsZero() || end.IsZero() {
		return
	}
	if end.Before(start) {
		verr.Add("end_date", "Дата окончания раньше даты начала")
	}
}
