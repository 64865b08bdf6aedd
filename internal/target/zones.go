package target

import "fmt"

type Zone struct {
	Name   string
	Radius float64
	Score  int
}

// Zones are ordered innermost to outermost with strictly increasing radii.
type Zones []Zone

func DefaultZones() Zones {
	return Zones{
		{Name: "bullseye", Radius: 0.25, Score: 10},
		{Name: "inner", Radius: 0.6, Score: 8},
		{Name: "middle", Radius: 1.3, Score: 5},
		{Name: "outer", Radius: 2.0, Score: 2},
	}
}

func NewZones(zones ...Zone) (Zones, error) {
	z := Zones(append([]Zone(nil), zones...))
	if err := z.Validate(); err != nil {
		return nil, err
	}
	return z, nil
}

func (z Zones) Validate() error {
	if len(z) == 0 {
		return fmt.Errorf("target has no zones")
	}
	prev := 0.0
	for i, zone := range z {
		if zone.Radius <= prev {
			return fmt.Errorf("zone %d (%s) radius %.3f must exceed %.3f", i, zone.Name, zone.Radius, prev)
		}
		prev = zone.Radius
	}
	return nil
}

// Lookup returns the innermost zone whose band contains the radial distance.
func (z Zones) Lookup(radial float64) (Zone, bool) {
	if radial < 0 {
		return Zone{}, false
	}
	for _, zone := range z {
		if radial <= zone.Radius {
			return zone, true
		}
	}
	return Zone{}, false
}

func (z Zones) OuterRadius() float64 {
	if len(z) == 0 {
		return 0
	}
	return z[len(z)-1].Radius
}
