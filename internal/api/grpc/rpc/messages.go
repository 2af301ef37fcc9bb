package rpc

import "time"

// Empty is used where a call takes or returns nothing.
type Empty struct{}

type SendCodeRequest struct {
	Email string `json:"email"`
}

type CompleteSignupRequest struct {
	Email  string `json:"email"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
	City   string `json:"city"`
}

type CompleteLoginRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type EmailExistsRequest struct {
	Email string `json:"email"`
}

type EmailExistsResponse struct {
	Exists bool `json:"exists"`
}

// SessionResponse is returned once an emailed code has been verified.
type SessionResponse struct {
	AccessToken string  `json:"access_token"`
	Account     Account `json:"account"`
}

type Account struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	Mobile           string    `json:"mobile"`
	City             string    `json:"city"`
	ProfilePic       string    `json:"profile_pic,omitempty"`
	Points           int64     `json:"points"`
	PickupsCompleted int64     `json:"pickups_completed"`
	EwasteRecycled   float64   `json:"ewaste_recycled"`
	CO2Saved         float64   `json:"co2_saved"`
	CreatedAt        time.Time `json:"created_at"`
}

type Tier struct {
	Current      string  `json:"current"`
	Next         string  `json:"next"`
	Percent      float64 `json:"percent"`
	PointsToNext int64   `json:"points_to_next"`
}

type OverviewResponse struct {
	Account Account `json:"account"`
	Tier    Tier    `json:"tier"`
}

type UpdateProfileRequest struct {
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
	City   string `json:"city"`
}

type UploadAvatarRequest struct {
	ContentType string `json:"content_type"`
	// Data is base64 encoded on the wire.
	Data []byte `json:"data"`
}

type UploadAvatarResponse struct {
	Key string `json:"key"`
}

type ListRewardsRequest struct {
	IncludeInactive bool `json:"include_inactive"`
}

type Reward struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Cost        int64  `json:"cost"`
	// Quantity is absent for unlimited rewards.
	Quantity *int64 `json:"quantity,omitempty"`
	Image    string `json:"image,omitempty"`
	Active   bool   `json:"active"`
}

type ListRewardsResponse struct {
	Rewards []Reward `json:"rewards"`
}

type RedeemRequest struct {
	RewardID string `json:"reward_id"`
}

type Redemption struct {
	ID          string    `json:"id"`
	RewardID    string    `json:"reward_id"`
	RewardTitle string    `json:"reward_title"`
	Cost        int64     `json:"cost"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type RedeemResponse struct {
	Redemption Redemption `json:"redemption"`
	Balance    int64      `json:"balance"`
}

type ListRedemptionsResponse struct {
	Redemptions []Redemption `json:"redemptions"`
}

type SchedulePickupRequest struct {
	Address string `json:"address"`
	// Date is formatted as YYYY-MM-DD.
	Date         string `json:"date"`
	TimeSlot     string `json:"time_slot"`
	Items        string `json:"items"`
	ContactName  string `json:"contact_name"`
	ContactPhone string `json:"contact_phone"`
}

type PickupRequest struct {
	PickupID string `json:"pickup_id"`
}

type Pickup struct {
	ID           string    `json:"id"`
	Address      string    `json:"address"`
	Date         string    `json:"date"`
	TimeSlot     string    `json:"time_slot"`
	Items        string    `json:"items"`
	ContactName  string    `json:"contact_name"`
	ContactPhone string    `json:"contact_phone"`
	Fee          int64     `json:"fee"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

type CompletePickupResponse struct {
	Pickup   Pickup `json:"pickup"`
	Credited int64  `json:"credited"`
	Balance  int64  `json:"balance"`
}

type ListPickupsResponse struct {
	Pickups []Pickup `json:"pickups"`
}
