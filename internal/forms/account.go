package forms

import "net/url"

type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

func DecodeLogin(src url.Values) (LoginForm, FieldErrors) {
	v := newValues(src)
	form := LoginForm{
		Username: v.str("username"),
		// passwords are not trimmed
		Password: src.Get("password"),
	}
	return form, merge(v.errs, Validate(form))
}

// ResetPasswordForm mirrors the API's 8 character minimum.
type ResetPasswordForm struct {
	NewPassword string `form:"new_password" validate:"required,min=8"`
	Confirm     string `form:"confirm_password" validate:"required,eqfield=NewPassword"`
}

func DecodeResetPassword(src url.Values) (ResetPasswordForm, FieldErrors) {
	form := ResetPasswordForm{
		NewPassword: src.Get("new_password"),
		Confirm:     src.Get("confirm_password"),
	}
	return form, Validate(form)
}
