package jgd

import (
	"math"
	"testing"
)

func TestDmsDegrees(t *testing.T) {
	got := FromDms(Dms{1, 6, 36}, Dms{2, 30, 0})
	if want := (LatLon{Lat: 1.11, Lon: 2.50}); got != want {
		t.Errorf("FromDms() = %+v, want %+v", got, want)
	}
}

func TestDmsFromDegrees(t *testing.T) {
	tests := []struct {
		deg   float64
		wantD int
		wantM int
		wantS float64
	}{
		{1.11, 1, 6, 36},
		{2.50, 2, 30, 0},
		{-1.11, -1, -6, -36},
	}
	for _, tt := range tests {
		got := DmsFromDegrees(tt.deg)
		if got.D != tt.wantD || got.M != tt.wantM {
			t.Errorf("DmsFromDegrees(%v) = %+v, want %d° %d′", tt.deg, got, tt.wantD, tt.wantM)
		}
		if math.Abs(got.S-tt.wantS) > 0.00000001 {
			t.Errorf("DmsFromDegrees(%v).S = %v, want %v", tt.deg, got.S, tt.wantS)
		}
	}
}

func TestDmsString(t *testing.T) {
	if got, want := (Dms{36, 27, 39.205}).String(), "36°27′39.20500″"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestFromSecs(t *testing.T) {
	if got, want := FromSecs(126000, 486000), (LatLon{Lat: 35, Lon: 135}); got != want {
		t.Errorf("FromSecs() = %+v, want %+v", got, want)
	}
	if got, want := FromMilliSecs(3_600_000, 7_200_000), (LatLon{Lat: 1, Lon: 2}); got != want {
		t.Errorf("FromMilliSecs() = %+v, want %+v", got, want)
	}
	if got, want := FromMicroSecs(3_600_000_000, 7_200_000_000), (LatLon{Lat: 1, Lon: 2}); got != want {
		t.Errorf("FromMicroSecs() = %+v, want %+v", got, want)
	}
}

func TestAddSub(t *testing.T) {
	p := LatLon{Lat: 1, Lon: 2}
	q := LatLon{Lat: 0.5, Lon: -0.25}
	if got, want := p.Add(q), (LatLon{Lat: 1.5, Lon: 1.75}); got != want {
		t.Errorf("Add() = %+v, want %+v", got, want)
	}
	if got := p.Add(q).Sub(q); got != p {
		t.Errorf("Add().Sub() = %+v, want %+v", got, p)
	}
}

func TestValidate(t *testing.T) {
	valid := []LatLon{
		{Lat: 35, Lon: 135},
		{Lat: 90, Lon: 180},
		{Lat: -90, Lon: -180},
		{},
	}
	for _, p := range valid {
		if err := p.validate(); err != nil {
			t.Errorf("validate(%+v) = %v, want nil", p, err)
		}
	}

	err := LatLon{Lat: 35, Lon: 181}.validate()
	if err == nil {
		t.Fatal("validate() accepted lon 181")
	}
	if got, want := err.Error(), "degrees out of range"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err = LatLon{Lat: 135, Lon: 35}.validate()
	if err == nil {
		t.Fatal("validate() accepted lat 135")
	}
	if !err.PossiblyReversed {
		t.Error("PossiblyReversed not set for a swapped pair")
	}
	if got, want := err.Error(), "degrees out of range; may be lat and lon reversed?"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	// Both axes out of range: swapping would not help.
	if err := (LatLon{Lat: 91, Lon: 181}).validate(); err == nil || err.PossiblyReversed {
		t.Errorf("validate(91, 181) = %v, want plain range error", err)
	}
}
