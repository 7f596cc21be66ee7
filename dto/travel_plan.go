package dto

import "tour-planner/models"

// TravelPlanRequest is the body of POST /api/travelPlan.
// Answers holds one answer per question, in question order; the city selection
// is carried by CityName only.
type TravelPlanRequest struct {
	CityName  string            `json:"cityName" binding:"required"`
	Questions []models.Question `json:"questions"`
	Answers   []string          `json:"answers"`
}

// TravelPlanData is the data of a successful itinerary generation.
type TravelPlanData struct {
	Itinerary string `json:"itinerary"`
	PlanID    string `json:"planId"`
}
