package validation

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type registerForm struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required,phone"`
}

func validate(t *testing.T, form any) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if err := RegisterCustomValidators(); err != nil {
		t.Fatalf("RegisterCustomValidators() error = %v", err)
	}
	v, _ := binding.Validator.Engine().(*validator.Validate)
	return v.Struct(form)
}

func TestPhoneRule(t *testing.T) {
	cases := []struct {
		name  string
		phone string
		valid bool
	}{
		{"international", "+85512345678", true},
		{"local digits", "012345678", true},
		{"fifteen digits", "123456789012345", true},
		{"too short", "1234567", false},
		{"too long", "1234567890123456", false},
		{"letters", "+855abc45678", false},
		{"plus only", "+", false},
		{"spaces", "+855 12 345 678", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validate(t, registerForm{Name: "Sokha", Phone: tc.phone})
			if tc.valid && err != nil {
				t.Errorf("phone %q rejected: %v", tc.phone, err)
			}
			if !tc.valid && err == nil {
				t.Errorf("phone %q accepted", tc.phone)
			}
		})
	}
}

func TestFieldErrors(t *testing.T) {
	err := validate(t, registerForm{})
	fields := FieldErrors(err)

	if fields["name"] != "This field is required." {
		t.Errorf("name message = %q", fields["name"])
	}
	if fields["phone"] != "This field is required." {
		t.Errorf("phone message = %q", fields["phone"])
	}
}

func TestFieldErrorsNonValidation(t *testing.T) {
	fields := FieldErrors(errors.New("unexpected EOF"))
	if fields["body"] != "Invalid request body." {
		t.Errorf("body message = %q", fields["body"])
	}
}
