package form

// FieldState tracks whether a field has been visited and its current
// validation message. Errors are only shown once a field is touched.
type FieldState struct {
	Touched bool
	Err     string
}

// Visible returns the message to display, or "" while untouched.
func (s FieldState) Visible() string {
	if !s.Touched {
		return ""
	}
	return s.Err
}
