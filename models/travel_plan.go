package models

import "time"

// TravelPlan is a generated itinerary. PlanID is assigned by the backend and
// handed to the traveler as a retrieval token.
// Collection: travel_plans
type TravelPlan struct {
	PlanID    string    `bson:"_id" json:"planId"`
	UserID    string    `bson:"user_id" json:"userId,omitempty"`
	CityName  string    `bson:"city_name" json:"cityName,omitempty"`
	Answers   []string  `bson:"answers" json:"answers,omitempty"`
	Itinerary string    `bson:"itinerary" json:"itinerary"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt,omitzero"`
}
