package store

import "time"

// TimeEntry is a completed, persisted unit of logged work. Client and
// project names are denormalized on purpose: an entry keeps the names
// as they were when it was saved, even if the source records are
// renamed later.
type TimeEntry struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	UserName        string    `json:"userName"`
	ClientID        string    `json:"clientId"`
	ClientName      string    `json:"clientName"`
	ProjectID       string    `json:"projectId"`
	ProjectName     string    `json:"projectName"`
	Description     string    `json:"description"`
	Date            string    `json:"date"` // YYYY-MM-DD; differs from Start's day only for overnight spans
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	DurationMinutes int       `json:"durationMinutes"`
}

type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Project struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"clientId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type User struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"` // "employee" or "accountant"
}
