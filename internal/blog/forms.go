package blog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// PubDateLayout is the datetime-local input format accepted for pub_date.
const PubDateLayout = "2006-01-02T15:04"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report fields under their form names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return v
}

type PostForm struct {
	Title       string `form:"title" json:"title" validate:"required,max=256"`
	Text        string `form:"text" json:"text" validate:"required"`
	PubDate     string `form:"pub_date" json:"pubDate"`
	CategoryID  int    `form:"category" json:"categoryId" validate:"required,gt=0"`
	IsPublished bool   `form:"is_published" json:"isPublished"`
	Image       string `form:"image" json:"image" validate:"omitempty,max=512"`
}

// publishAt parses PubDate, defaulting to now when it is empty.
func (f PostForm) publishAt(now time.Time) (time.Time, error) {
	raw := strings.TrimSpace(f.PubDate)
	if raw == "" {
		return now, nil
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}

	t, err := time.ParseInLocation(PubDateLayout, raw, now.Location())
	if err != nil {
		return time.Time{}, newFieldError("pub_date", "invalid date")
	}

	return t, nil
}

type CommentForm struct {
	Text string `form:"text" json:"text" validate:"required,max=2000"`
}

type SignupForm struct {
	Username string `form:"username" json:"username" validate:"required,min=3,max=150,alphanum"`
	Email    string `form:"email" json:"email" validate:"omitempty,email,max=254"`
	Password string `form:"password" json:"password" validate:"required,min=8,max=72"`
}

type LoginForm struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

type ProfileForm struct {
	Username  string `form:"username" json:"username" validate:"required,min=3,max=150,alphanum"`
	FirstName string `form:"first_name" json:"firstName" validate:"max=150"`
	LastName  string `form:"last_name" json:"lastName" validate:"max=150"`
	Email     string `form:"email" json:"email" validate:"omitempty,email,max=254"`
}

// validateForm runs struct validation and converts field failures into a ValidationError.
func validateForm(form interface{}) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate form: %w", err)
	}

	verr := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		verr.Fields[fe.Field()] = fieldMessage(fe)
	}

	return verr
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return "at most " + fe.Param() + " characters"
	case "min":
		return "at least " + fe.Param() + " characters"
	case "email":
		return "enter a valid email address"
	case "alphanum":
		return "only letters and digits are allowed"
	default:
		return "invalid value"
	}
}
