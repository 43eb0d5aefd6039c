package library

// NotFoundError is returned when no item has the requested href.
type NotFoundError struct {
	Href string
}

func (e *NotFoundError) Error() string {
	return "not in library: " + e.Href
}
