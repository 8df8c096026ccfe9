package statline

import "math"

// Derived holds the rate statistics computed from a Line.
type Derived struct {
	BattingAverage     float64
	OnBasePercentage   float64
	SluggingPercentage float64
	OPS                float64
	ERA                float64
	WHIP               float64
}

func BattingAverage(l Line) float64 {
	if l.AtBats == 0 {
		return 0
	}
	return round3(float64(l.Hits) / float64(l.AtBats))
}

func OnBasePercentage(l Line) float64 {
	den := l.AtBats + l.Walks + l.HitByPitch
	if den == 0 {
		return 0
	}
	return round3(float64(l.Hits+l.Walks+l.HitByPitch) / float64(den))
}

func SluggingPercentage(l Line) float64 {
	if l.AtBats == 0 {
		return 0
	}
	return round3(float64(l.TotalBases) / float64(l.AtBats))
}

// OPS adds the already rounded OBP and SLG, then rounds again.
func OPS(l Line) float64 {
	return round3(OnBasePercentage(l) + SluggingPercentage(l))
}

// ERA treats InningsPitched as a plain decimal; 5.1 means 5.1 innings.
func ERA(l Line) float64 {
	if l.InningsPitched == 0 {
		return 0
	}
	return round2(float64(l.EarnedRuns) * 9.0 / l.InningsPitched)
}

func WHIP(l Line) float64 {
	if l.InningsPitched == 0 {
		return 0
	}
	return round2(float64(l.WalksAllowed+l.HitsAllowed) / l.InningsPitched)
}

func (l Line) Derive() Derived {
	return Derived{
		BattingAverage:     BattingAverage(l),
		OnBasePercentage:   OnBasePercentage(l),
		SluggingPercentage: SluggingPercentage(l),
		OPS:                OPS(l),
		ERA:                ERA(l),
		WHIP:               WHIP(l),
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
