package catalog

import (
	"time"

	"bookit/internal/domain"
)

const dateLayout = "2006-01-02"

type ExperienceResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	ImageURL    string    `json:"image_url"`
	Duration    string    `json:"duration"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type SlotResponse struct {
	ID             int64  `json:"id"`
	ExperienceID   int64  `json:"experience_id"`
	Date           string `json:"date"`
	StartTime      string `json:"start_time"`
	TotalSpots     int    `json:"total_spots"`
	AvailableSpots int    `json:"available_spots"`
}

type ExperienceDetailResponse struct {
	ExperienceResponse
	Slots []SlotResponse `json:"slots"`
}

func toExperienceResponse(e domain.Experience) ExperienceResponse {
	return ExperienceResponse{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Location:    e.Location,
		ImageURL:    e.ImageURL,
		Duration:    e.Duration,
		Price:       e.Price.InexactFloat64(),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toExperienceList(list []domain.Experience) []ExperienceResponse {
	out := make([]ExperienceResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toExperienceResponse(e))
	}
	return out
}

func toExperienceDetail(e *domain.Experience) ExperienceDetailResponse {
	d := ExperienceDetailResponse{
		ExperienceResponse: toExperienceResponse(*e),
		Slots:              make([]SlotResponse, 0, len(e.Slots)),
	}
	for _, s := range e.Slots {
		d.Slots = append(d.Slots, SlotResponse{
			ID:             s.ID,
			ExperienceID:   s.ExperienceID,
			Date:           s.Date.Format(dateLayout),
			StartTime:      s.StartTime,
			TotalSpots:     s.TotalSpots,
			AvailableSpots: s.AvailableSpots,
		})
	}
	return d
}
