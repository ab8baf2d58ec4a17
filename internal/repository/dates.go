package repository

import "time"

const dateLayout = "2006-01-02"

// asDate renders a timestamp as its calendar day in the app's zone. Date
// parameters travel as strings so the server-side ::date cast never shifts a
// boundary day when the session timezone differs from the app's.
func asDate(t time.Time) string {
	return t.Format(dateLayout)
}

func asDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := asDate(*t)
	return &s
}
