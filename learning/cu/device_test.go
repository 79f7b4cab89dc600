package cu

import "testing"

func TestDescribe(t *testing.T) {
	d := Describe()
	if d == "" {
		t.Fatal("empty device description")
	}
	if !Available() && d != "cpu" {
		t.Errorf("no device but description %q", d)
	}
}
