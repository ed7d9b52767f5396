package validators

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var frPhoneRegex = regexp.MustCompile(`^(?:\+33|0)[1-9](\d{2}){4}$`)

var (
	registerOnce sync.Once
	registerErr  error
)

var ErrEngine = errors.New("validators: binding engine is not validator/v10")

// Register installs the custom rules on gin's validator and reports fields
// by their JSON name. It must succeed before any request is bound.
func Register() error {
	registerOnce.Do(func() {
		registerErr = register(binding.Validator.Engine())
	})
	return registerErr
}

func register(engine any) error {
	v, ok := engine.(*validator.Validate)
	if !ok {
		return ErrEngine
	}
	if err := v.RegisterValidation("frphone", frPhone); err != nil {
		return fmt.Errorf("validators: register frphone: %w", err)
	}
	v.RegisterTagNameFunc(jsonName)
	return nil
}

// IsFrenchPhone reports whether phone is a French mobile or landline number.
func IsFrenchPhone(phone string) bool {
	return frPhoneRegex.MatchString(phone)
}

func frPhone(fl validator.FieldLevel) bool {
	return IsFrenchPhone(fl.Field().String())
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// Details flattens validator errors. ok is false when err is not a
// validation failure (malformed JSON, wrong types).
func Details(err error) (details []FieldError, ok bool) {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil, false
	}

	details = make([]FieldError, 0, len(ve))
	for _, fe := range ve {
		details = append(details, FieldError{
			Field: fieldPath(fe.Namespace()),
			Rule:  fe.Tag(),
		})
	}
	return details, true
}

// fieldPath drops the root struct name: "MessageRequest.phone" -> "phone".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
