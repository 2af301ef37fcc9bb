// Package tier maps a point balance to a loyalty tier and the progress made
// towards the next one.
package tier

import "github.com/dtroode/ecorewards-server/internal/model"

// Tier names.
const (
	Silver   = "Silver"
	Gold     = "Gold"
	Platinum = "Platinum"
	// Max is reported as the next tier once Platinum is reached.
	Max = "Max"
)

// Thresholds. Silver progress is measured from the signup baseline, so a fresh
// account sits at 0%.
const (
	SilverFloor   int64 = 100
	GoldFloor     int64 = 200
	PlatinumFloor int64 = 500
)

// Of returns the tier progress for points. It has no side effects.
func Of(points int64) model.TierProgress {
	switch {
	case points < GoldFloor:
		return model.TierProgress{
			Current:      Silver,
			Next:         Gold,
			Percent:      percent(points, SilverFloor, GoldFloor),
			PointsToNext: GoldFloor - points,
		}
	case points < PlatinumFloor:
		return model.TierProgress{
			Current:      Gold,
			Next:         Platinum,
			Percent:      percent(points, GoldFloor, PlatinumFloor),
			PointsToNext: PlatinumFloor - points,
		}
	default:
		return model.TierProgress{
			Current: Platinum,
			Next:    Max,
			Percent: 100,
		}
	}
}

func percent(points, floor, ceiling int64) float64 {
	p := float64(points-floor) / float64(ceiling-floor) * 100
	return min(max(p, 0), 100)
}
