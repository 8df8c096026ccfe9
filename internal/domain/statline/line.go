// Package statline derives batting and pitching rate statistics from raw
// counting stats. Every rate shown anywhere in the service comes from here.
package statline

import "math"

// Line is one player's counting stats for a single game, or the sum of many
// such lines.
type Line struct {
	AtBats       int
	Hits         int
	Doubles      int
	Triples      int
	HomeRuns     int
	RunsBattedIn int
	RunsScored   int
	Walks        int
	Strikeouts   int
	StolenBases  int
	HitByPitch   int
	TotalBases   int

	InningsPitched    float64
	EarnedRuns        int
	HitsAllowed       int
	WalksAllowed      int
	StrikeoutsPitched int
	Wins              int
	Losses            int
	Saves             int
}

// Optional carries a stat line as submitted, where any field may be absent.
type Optional struct {
	AtBats            *int
	Hits              *int
	Doubles           *int
	Triples           *int
	HomeRuns          *int
	RunsBattedIn      *int
	RunsScored        *int
	Walks             *int
	Strikeouts        *int
	StolenBases       *int
	HitByPitch        *int
	InningsPitched    *float64
	EarnedRuns        *int
	HitsAllowed       *int
	WalksAllowed      *int
	StrikeoutsPitched *int
	Wins              *int
	Losses            *int
	Saves             *int
}

// Normalize fills absent fields with zero and computes total bases.
func (o Optional) Normalize() Line {
	return o.ApplyTo(Line{})
}

// ApplyTo overwrites the fields present in o and recomputes total bases.
func (o Optional) ApplyTo(base Line) Line {
	out := base
	setInt(&out.AtBats, o.AtBats)
	setInt(&out.Hits, o.Hits)
	setInt(&out.Doubles, o.Doubles)
	setInt(&out.Triples, o.Triples)
	setInt(&out.HomeRuns, o.HomeRuns)
	setInt(&out.RunsBattedIn, o.RunsBattedIn)
	setInt(&out.RunsScored, o.RunsScored)
	setInt(&out.Walks, o.Walks)
	setInt(&out.Strikeouts, o.Strikeouts)
	setInt(&out.StolenBases, o.StolenBases)
	setInt(&out.HitByPitch, o.HitByPitch)
	setInt(&out.EarnedRuns, o.EarnedRuns)
	setInt(&out.HitsAllowed, o.HitsAllowed)
	setInt(&out.WalksAllowed, o.WalksAllowed)
	setInt(&out.StrikeoutsPitched, o.StrikeoutsPitched)
	setInt(&out.Wins, o.Wins)
	setInt(&out.Losses, o.Losses)
	setInt(&out.Saves, o.Saves)
	if o.InningsPitched != nil {
		out.InningsPitched = *o.InningsPitched
	}
	out.InningsPitched = snapInnings(out.InningsPitched)

	return out.WithTotalBases()
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

// ComputeTotalBases weights singles, doubles, triples and home runs 1-4.
// Singles are hits minus extra-base hits. Inconsistent input gives negative
// singles, but the total stays >= 0 for non-negative counters.
func ComputeTotalBases(hits, doubles, triples, homeRuns int) int {
	singles := hits - doubles - triples - homeRuns
	return singles + doubles*2 + triples*3 + homeRuns*4
}

// WithTotalBases returns a copy of l with TotalBases computed from its hits.
func (l Line) WithTotalBases() Line {
	l.TotalBases = ComputeTotalBases(l.Hits, l.Doubles, l.Triples, l.HomeRuns)
	return l
}

// Sum adds lines field by field. TotalBases is the sum of the stored values,
// not recomputed from the summed hit types.
func Sum(lines ...Line) Line {
	var out Line
	for _, l := range lines {
		out.AtBats += l.AtBats
		out.Hits += l.Hits
		out.Doubles += l.Doubles
		out.Triples += l.Triples
		out.HomeRuns += l.HomeRuns
		out.RunsBattedIn += l.RunsBattedIn
		out.RunsScored += l.RunsScored
		out.Walks += l.Walks
		out.Strikeouts += l.Strikeouts
		out.StolenBases += l.StolenBases
		out.HitByPitch += l.HitByPitch
		out.TotalBases += l.TotalBases
		out.InningsPitched += l.InningsPitched
		out.EarnedRuns += l.EarnedRuns
		out.HitsAllowed += l.HitsAllowed
		out.WalksAllowed += l.WalksAllowed
		out.StrikeoutsPitched += l.StrikeoutsPitched
		out.Wins += l.Wins
		out.Losses += l.Losses
		out.Saves += l.Saves
	}
	out.InningsPitched = snapInnings(out.InningsPitched)

	return out
}

// Innings are stored with one fractional digit.
func snapInnings(v float64) float64 {
	return math.Round(v*10) / 10
}
