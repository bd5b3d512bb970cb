// Package xflag provides extra flag.Value implementations.
package xflag

import "time"

// Date is a flag value holding a day, parsed as YYYY-MM-DD.
type Date struct {
	time.Time
}

func (d *Date) String() string {
	if d.Time.IsZero() {
		return ""
	}
	return d.Time.Format("2006-01-02")
}

func (d *Date) Set(value string) error {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}
