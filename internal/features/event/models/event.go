package models

import "time"

const (
	CategoryConference  = "conference"
	CategoryFormation   = "formation"
	CategoryCelebration = "celebration"
	CategoryCommunity   = "community"
)

// Event is a church calendar entry. Date and Time stay as the strings the
// site displays ("2025-03-15", "18:00").
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateEventRequest struct {
	Title       string `json:"title" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Description string `json:"description" binding:"required"`
	Location    string `json:"location" binding:"required"`
	Category    string `json:"category"`
}

func ValidCategory(category string) bool {
	switch category {
	case CategoryConference, CategoryFormation, CategoryCelebration, CategoryCommunity:
		return true
	}
	return false
}
