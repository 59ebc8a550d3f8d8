package records

import "strings"

const (
	// DateLayout is the canonical DD-MM-YYYY form of Record.Date.
	DateLayout = "02-01-2006"

	// TimeLayout is the canonical 24-hour HH:MM form of Record.Time.
	TimeLayout = "15:04"
)

// Header names the five record fields in encoding order.
var Header = []string{"Name", "Email", "Phone", "Date", "Time"}

// Record is one attendee registration.
type Record struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Date  string `json:"date"`
	Time  string `json:"time"`
}

// Fields returns the record's values in Header order.
func (r Record) Fields() []string {
	return []string{r.Name, r.Email, r.Phone, r.Date, r.Time}
}

// FromFields builds a Record from values in Header order.
// The caller must pass exactly len(Header) values.
func FromFields(fields []string) Record {
	return Record{
		Name:  fields[0],
		Email: fields[1],
		Phone: fields[2],
		Date:  fields[3],
		Time:  fields[4],
	}
}

// Normalize trims surrounding whitespace from every field.
func Normalize(r Record) Record {
	return Record{
		Name:  strings.TrimSpace(r.Name),
		Email: strings.TrimSpace(r.Email),
		Phone: strings.TrimSpace(r.Phone),
		Date:  strings.TrimSpace(r.Date),
		Time:  strings.TrimSpace(r.Time),
	}
}
