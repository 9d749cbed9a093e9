package password

import "errors"

// ErrPasswordTooLong is returned when the input exceeds bcrypt's 72-byte cap.
var ErrPasswordTooLong = errors.New("password too long")
