package event

import (
	"fmt"
	"time"
)

type Category string

const (
	CategoryAcademic Category = "Academic"
	CategorySocial   Category = "Social"
	CategorySports   Category = "Sports"
	CategoryArts     Category = "Arts"
	CategoryCareer   Category = "Career"
	CategoryService  Category = "Service"
	CategoryOther    Category = "Other"
)

var allCategories = []Category{
	CategoryAcademic,
	CategorySocial,
	CategorySports,
	CategoryArts,
	CategoryCareer,
	CategoryService,
	CategoryOther,
}

// ParseCategory validates a category name against the closed enumeration.
func ParseCategory(s string) (Category, error) {
	for _, c := range allCategories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown event category: %s", s)
}

// Event is a single discoverable event. Events are owned by their source and
// never mutated by this application.
type Event struct {
	ID              string
	Title           string
	Description     string
	Category        Category
	StartTime       time.Time
	EndTime         time.Time
	Location        string
	HasAvailability bool
}

type Class string

const (
	ClassClub   Class = "club"
	ClassSocial Class = "social"
)

// Classifier splits events into club vs social. The split is an editorial
// decision made outside the filtering core.
type Classifier interface {
	Classify(event Event) Class
}

// CategoryClassifier derives the class from the event category: Social
// events are social, everything else counts as a club event.
type CategoryClassifier struct{}

func (CategoryClassifier) Classify(event Event) Class {
	if event.Category == CategorySocial {
		return ClassSocial
	}
	return ClassClub
}
