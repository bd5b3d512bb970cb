package xflag

import "testing"

func TestDate(t *testing.T) {
	var d Date
	if d.String() != "" {
		t.Errorf("zero date renders %q", d.String())
	}
	if err := d.Set("2024-01-02"); err != nil {
		t.Fatal(err)
	}
	if d.String() != "2024-01-02" {
		t.Errorf("got %q", d.String())
	}
	if err := d.Set("01/02/2024"); err == nil {
		t.Error("expected error for wrong layout")
	}
}
