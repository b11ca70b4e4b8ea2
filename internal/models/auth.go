package models

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ClubInfo is the public view of a club returned by login and /api/me.
type ClubInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// EventRequest carries event fields for create and partial update. Pointers
// distinguish a field that was omitted from one explicitly set to empty,
// which matters for Description.
type EventRequest struct {
	Title        *string `json:"title"`
	Date         *string `json:"date"`
	Time         *string `json:"time"`
	Venue        *string `json:"venue"`
	Category     *string `json:"category"`
	Registration *string `json:"registration"`
	Description  *string `json:"description"`
}
