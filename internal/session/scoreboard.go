package session

import (
	"fmt"
	"sort"
	"strings"
)

type Scoreboard struct {
	Shots     int
	Hits      int
	Misses    int
	Total     int
	Best      int
	LastZone  string
	LastValue int
	ZoneHits  map[string]int
}

func (b *Scoreboard) recordHit(zone string, value int) {
	b.Hits++
	b.Total += value
	if value > b.Best {
		b.Best = value
	}
	b.LastZone = zone
	b.LastValue = value
	if b.ZoneHits == nil {
		b.ZoneHits = make(map[string]int)
	}
	b.ZoneHits[zone]++
}

func (b Scoreboard) clone() Scoreboard {
	out := b
	if b.ZoneHits != nil {
		out.ZoneHits = make(map[string]int, len(b.ZoneHits))
		for k, v := range b.ZoneHits {
			out.ZoneHits[k] = v
		}
	}
	return out
}

// Accuracy is hits per shot in [0, 1].
func (b Scoreboard) Accuracy() float64 {
	if b.Shots == 0 {
		return 0
	}
	return float64(b.Hits) / float64(b.Shots)
}

// String renders the scoreboard as a short multi-line report.
func (b Scoreboard) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "score %d  shots %d  hits %d  misses %d  accuracy %.0f%%  best %d\n",
		b.Total, b.Shots, b.Hits, b.Misses, b.Accuracy()*100, b.Best)
	zones := make([]string, 0, len(b.ZoneHits))
	for z := range b.ZoneHits {
		zones = append(zones, z)
	}
	sort.Strings(zones)
	for _, z := range zones {
		fmt.Fprintf(&sb, "  %-10s %d\n", z, b.ZoneHits[z])
	}
	return sb.String()
}
