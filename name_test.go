package nativemod

import (
	"errors"
	"testing"
)

func TestParseName(t *testing.T) {
	cases := []struct {
		in      string
		pkg     string
		sym     string
		wantErr bool
	}{
		{in: "m.f1", pkg: "m", sym: "f1"},
		{in: "geo.calc.distance", pkg: "geo.calc", sym: "distance"},
		{in: "m", pkg: "m", sym: "m"},
		{in: "", wantErr: true},
		{in: ".f", wantErr: true},
		{in: "m.", wantErr: true},
	}
	for _, c := range cases {
		got, err := ParseName(c.in)
		if c.wantErr {
			if !errors.Is(err, ErrBadName) {
				t.Errorf("ParseName(%q): want ErrBadName, got %v", c.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseName(%q): unexpected error: %v", c.in, err)
		}
		if got.Package != c.pkg || got.Symbol != c.sym {
			t.Errorf("ParseName(%q) = %+v, want {%q %q}", c.in, got, c.pkg, c.sym)
		}
	}
}
