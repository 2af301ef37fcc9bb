package handler

import (
	"time"

	"github.com/dtroode/ecorewards-server/internal/api/grpc/rpc"
	"github.com/dtroode/ecorewards-server/internal/model"
)

func toAccount(a model.Account) rpc.Account {
	return rpc.Account{
		ID:               a.ID.String(),
		Email:            a.Email,
		Name:             a.Name,
		Mobile:           a.Mobile,
		City:             a.City,
		ProfilePic:       a.ProfilePic,
		Points:           a.Points,
		PickupsCompleted: a.PickupsCompleted,
		EwasteRecycled:   a.EwasteRecycled,
		CO2Saved:         a.CO2Saved,
		CreatedAt:        a.CreatedAt,
	}
}

func toTier(t model.TierProgress) rpc.Tier {
	return rpc.Tier{
		Current:      t.Current,
		Next:         t.Next,
		Percent:      t.Percent,
		PointsToNext: t.PointsToNext,
	}
}

func toReward(r model.Reward) rpc.Reward {
	return rpc.Reward{
		ID:          r.ID.String(),
		Title:       r.Title,
		Description: r.Description,
		Cost:        r.Cost,
		Quantity:    r.Quantity,
		Image:       r.Image,
		Active:      r.Active,
	}
}

func toRedemption(r model.Redemption) rpc.Redemption {
	return rpc.Redemption{
		ID:          r.ID.String(),
		RewardID:    r.RewardID.String(),
		RewardTitle: r.RewardTitle,
		Cost:        r.Cost,
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt,
	}
}

func toPickup(p model.Pickup) rpc.Pickup {
	return rpc.Pickup{
		ID:           p.ID.String(),
		Address:      p.Address,
		Date:         p.PreferredDate.Format(time.DateOnly),
		TimeSlot:     p.PreferredTime,
		Items:        p.Items,
		ContactName:  p.ContactName,
		ContactPhone: p.ContactPhone,
		Fee:          p.Fee,
		Status:       string(p.Status),
		CreatedAt:    p.CreatedAt,
	}
}

func mapSlice[T, R any](in []T, f func(T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}
