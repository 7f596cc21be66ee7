package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tour-planner/db"
	"tour-planner/models"
)

var ErrTravelPlanNotFound = errors.New("plan_not_found")

type TravelPlanRepository struct {
	col *mongo.Collection
}

func NewTravelPlanRepository(d *mongo.Database) *TravelPlanRepository {
	return &TravelPlanRepository{col: d.Collection(db.CollectionTravelPlans)}
}

// Insert assigns a uuid plan id and created_at when missing and stores the plan.
func (r *TravelPlanRepository) Insert(ctx context.Context, p models.TravelPlan) (models.TravelPlan, error) {
	if p.PlanID == "" {
		p.PlanID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if _, err := r.col.InsertOne(ctx, p); err != nil {
		return models.TravelPlan{}, err
	}
	return p, nil
}

// Get returns a plan by its id
func (r *TravelPlanRepository) Get(ctx context.Context, planID string) (models.TravelPlan, error) {
	var p models.TravelPlan
	err := r.col.FindOne(ctx, bson.M{"_id": planID}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return models.TravelPlan{}, ErrTravelPlanNotFound
	}
	if err != nil {
		return models.TravelPlan{}, err
	}
	return p, nil
}

// ListByUser returns the user's plans, newest first
func (r *TravelPlanRepository) ListByUser(ctx context.Context, userID string) ([]models.TravelPlan, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]models.TravelPlan, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
