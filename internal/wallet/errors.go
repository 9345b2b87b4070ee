package wallet

// Error is a business rule violation surfaced to the API caller. The message
// text is part of the API contract and must not change.
type Error struct {
	msg string
}

func (e *Error) Error() string { return e.msg }

var (
	// ErrInvalidUsername is returned when account creation is missing a username.
	ErrInvalidUsername = &Error{msg: "Username cannot be null"}

	// ErrUsernameExists is returned when the requested username is taken.
	ErrUsernameExists = &Error{msg: "Username already exists"}

	// ErrUserNotFound is returned when no account matches the username.
	ErrUserNotFound = &Error{msg: "User not found"}

	// ErrInvalidAmount is returned when a deposit or withdrawal amount is not
	// strictly positive.
	ErrInvalidAmount = &Error{msg: "Amount must be greater than zero"}

	// ErrInsufficientBalance is returned when a withdrawal exceeds the balance.
	ErrInsufficientBalance = &Error{msg: "Insufficient balance"}
)
