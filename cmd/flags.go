package cmd

import (
	"fmt"
	"time"

	"github.com/PolarWolf314/rollcall/internal/records"
	"github.com/spf13/pflag"
)

// layoutValue is a pflag.Value holding a string that must parse with layout.
type layoutValue struct {
	value  *string
	layout string
	kind   string
	hint   string
}

var _ pflag.Value = (*layoutValue)(nil)

func (v *layoutValue) String() string {
	if v.value == nil {
		return ""
	}
	return *v.value
}

func (v *layoutValue) Set(s string) error {
	if _, err := time.Parse(v.layout, s); err != nil {
		return fmt.Errorf("%s must be %s", v.kind, v.hint)
	}
	*v.value = s
	return nil
}

func (v *layoutValue) Type() string {
	return v.kind
}

// newDateValue returns a flag value accepting DD-MM-YYYY dates.
func newDateValue(p *string) *layoutValue {
	return &layoutValue{value: p, layout: records.DateLayout, kind: "date", hint: "DD-MM-YYYY"}
}

// newTimeValue returns a flag value accepting HH:MM times.
func newTimeValue(p *string) *layoutValue {
	return &layoutValue{value: p, layout: records.TimeLayout, kind: "time", hint: "HH:MM"}
}

// addRecordFlags registers the attendee field flags on fs.
func addRecordFlags(fs *pflag.FlagSet, r *records.Record) {
	fs.StringVar(&r.Name, "name", "", "attendee name")
	fs.StringVar(&r.Email, "email", "", "attendee email")
	fs.StringVar(&r.Phone, "phone", "", "attendee phone number")
	fs.Var(newDateValue(&r.Date), "date", "registration date (DD-MM-YYYY)")
	fs.Var(newTimeValue(&r.Time), "time", "registration time (HH:MM)")
}
