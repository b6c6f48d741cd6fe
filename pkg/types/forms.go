package types

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// RegisterForm is the signup payload. The password becomes the persisted
// credential checked on later logins.
type RegisterForm struct {
	Name            string `form:"name"`
	Email           string `form:"email"`
	PhoneNumber     string `form:"phone_number"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
}

func (f RegisterForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required.Error("name is required")),
		validation.Field(&f.Email, validation.Required.Error("email is required"), is.Email.Error("enter a valid email address")),
		validation.Field(&f.Password, validation.Required.Error("password is required"), validation.Length(8, 72).Error("password must be between 8 and 72 characters")),
		validation.Field(&f.ConfirmPassword, validation.In(f.Password).Error("passwords do not match")),
	)
}

type LoginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

func (f LoginForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Email, validation.Required.Error("email is required")),
		validation.Field(&f.Password, validation.Required.Error("password is required")),
	)
}

// DocumentForm carries a document entry submission. Field inputs are named
// fields[key] so the whole schema decodes into one map.
type DocumentForm struct {
	Name   string            `form:"name"`
	Type   string            `form:"type"`
	Mode   string            `form:"mode"`
	Fields map[string]string `form:"fields"`
}
