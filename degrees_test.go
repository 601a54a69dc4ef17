package jgd_test

import (
	"errors"
	"testing"

	"github.com/andreiashu/jgd"
)

func TestDegreesOutOfRange(t *testing.T) {
	_, err := jgd.NewTokyo(jgd.LatLon{Lat: 35, Lon: 181})
	if err == nil {
		t.Fatal("NewTokyo() accepted lon 181")
	}
	if got, want := err.Error(), "degrees out of range"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	var degErr *jgd.DegreesError
	if !errors.As(err, &degErr) {
		t.Fatalf("error is %T, want *DegreesError", err)
	}
	if degErr.PossiblyReversed {
		t.Error("PossiblyReversed set without a plausible swap")
	}
}

func TestDegreesReversedHint(t *testing.T) {
	_, err := jgd.NewTokyo(jgd.LatLon{Lat: 135, Lon: 35})
	if err == nil {
		t.Fatal("NewTokyo() accepted lat 135")
	}
	if got, want := err.Error(), "degrees out of range; may be lat and lon reversed?"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestDegreesValidatedByAllDatums(t *testing.T) {
	bad := jgd.LatLon{Lat: 35, Lon: 181}
	if _, err := jgd.NewTokyo97(bad); err == nil {
		t.Error("NewTokyo97() accepted lon 181")
	}
	if _, err := jgd.NewJGD2000(bad); err == nil {
		t.Error("NewJGD2000() accepted lon 181")
	}
	if _, err := jgd.NewJGD2011(bad); err == nil {
		t.Error("NewJGD2011() accepted lon 181")
	}
}
