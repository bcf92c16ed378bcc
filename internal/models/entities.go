package models

// Records of the Events API. The API owns them; the harness only builds and checks their JSON.

type Account struct {
	ID        string  `json:"id,omitempty"`
	ExpiredAt *string `json:"expiredAt"`
	CreatedAt string  `json:"createdAt,omitempty"`
	UpdatedAt string  `json:"updatedAt,omitempty"`
}

type User struct {
	ID             string  `json:"id,omitempty"`
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	Password       string  `json:"password,omitempty"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	Gender         string  `json:"gender,omitempty"`
	Dob            string  `json:"dob,omitempty"`
	IsAccountOwner bool    `json:"isAccountOwner"`
	NetWorth       float64 `json:"netWorth,omitempty"`
	AccountID      string  `json:"accountId,omitempty"`
}

type Profile struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Preferences string `json:"preferences,omitempty"`
	RadiusMiles int    `json:"radiusMiles,omitempty"`
	UserID      string `json:"userId,omitempty"`
}

// TagAffinity.Affinity ranges from -100 to 100.
type TagAffinity struct {
	ID        string `json:"id,omitempty"`
	Tag       string `json:"tag"`
	Affinity  int    `json:"affinity"`
	ProfileID string `json:"profileId,omitempty"`
}

type Event struct {
	ID                     string   `json:"id,omitempty"`
	URL                    string   `json:"url"`
	Title                  string   `json:"title"`
	DateTime               string   `json:"dateTime"`
	Location               string   `json:"location,omitempty"`
	Cost                   float64  `json:"cost"`
	NumOfExpectedAttendees int      `json:"numOfExpectedAttendees,omitempty"`
	Recurrence             string   `json:"recurrence,omitempty"`
	Tags                   []string `json:"tags,omitempty"`
}

// UserEvent.Rating ranges from 1 to 5; Note holds at most 500 characters.
type UserEvent struct {
	ID       string `json:"id,omitempty"`
	Attended bool   `json:"attended"`
	Rating   int    `json:"rating,omitempty"`
	Note     string `json:"note,omitempty"`
	UserID   string `json:"userId,omitempty"`
	EventID  string `json:"eventId,omitempty"`
}

type URL struct {
	ID     string         `json:"id,omitempty"`
	URL    string         `json:"url"`
	Params map[string]any `json:"params,omitempty"`
}

// Crawl records are created by the crawler; the API only reads and deletes them.
type Crawl struct {
	ID                string         `json:"id,omitempty"`
	LastParsedDate    string         `json:"lastParsedDate,omitempty"`
	ParseStatus       map[string]any `json:"parseStatus,omitempty"`
	ErrorsEncountered []any          `json:"errorsEncountered"`
	URLID             string         `json:"urlId,omitempty"`
}
