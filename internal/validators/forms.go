package validators

// NoteForm is the note entry form. Both fields must contain something other
// than whitespace; the values themselves are sent as typed.
type NoteForm struct {
	Title   string `validate:"notblank"`
	Content string `validate:"notblank"`
}

// LoginForm is the login form.
type LoginForm struct {
	Email    string `validate:"notblank,email"`
	Password string `validate:"required"`
}

// RegisterForm is the registration form.
type RegisterForm struct {
	Username string `validate:"notblank"`
	Email    string `validate:"notblank,email"`
	Password string `validate:"required"`
}
