package apiclient

import (
	"fmt"
	"strings"

	"github.com/jaswdr/faker"
)

// PlaceholderID is a well-formed ObjectId used for foreign keys in fixtures.
const PlaceholderID = "507f1f77bcf86cd799439011"

// Entities lists every entity exposed by the API.
var Entities = []string{"account", "user", "profile", "tagaffinity", "event", "userevent", "url", "crawl"}

func canonical(entity string) map[string]any {
	switch entity {
	case "account":
		return map[string]any{"expiredAt": nil}
	case "user":
		return map[string]any{
			"username":       "testuser123",
			"email":          "test@example.com",
			"password":       "testpassword123",
			"firstName":      "Test",
			"lastName":       "User",
			"gender":         "other",
			"isAccountOwner": true,
			"netWorth":       50000,
			"accountId":      PlaceholderID,
		}
	case "profile":
		return map[string]any{
			"name":        "Test Profile",
			"preferences": "Test preferences",
			"radiusMiles": 25,
			"userId":      PlaceholderID,
		}
	case "tagaffinity":
		return map[string]any{
			"tag":       "technology",
			"affinity":  75,
			"profileId": PlaceholderID,
		}
	case "event":
		return map[string]any{
			"url":                    "https://example.com/event",
			"title":                  "Test Event",
			"dateTime":               "2024-12-01T18:00:00Z",
			"location":               "Test Location",
			"cost":                   25.50,
			"numOfExpectedAttendees": 100,
			"recurrence":             "weekly",
			"tags":                   []any{"technology", "networking"},
		}
	case "userevent":
		return map[string]any{
			"attended": true,
			"rating":   4,
			"note":     "Great event!",
			"userId":   PlaceholderID,
			"eventId":  PlaceholderID,
		}
	case "url":
		return map[string]any{
			"url":    "https://example.com/events",
			"params": map[string]any{"category": "tech", "location": "city"},
		}
	case "crawl":
		return map[string]any{
			"lastParsedDate":    "2024-01-15T10:30:00Z",
			"parseStatus":       map[string]any{"status": "success", "items_found": 5},
			"errorsEncountered": []any{},
			"urlId":             PlaceholderID,
		}
	}
	return nil
}

// TestData returns a fresh canonical fixture for entity. Unknown entities yield an empty map.
func TestData(entity string) map[string]any {
	if data := canonical(strings.ToLower(entity)); data != nil {
		return data
	}
	return map[string]any{}
}

// RandomTestData returns the canonical fixture with identifying fields replaced
// by generated values, so repeated creates do not collide.
func RandomTestData(fake faker.Faker, entity string) map[string]any {
	entity = strings.ToLower(entity)
	data := TestData(entity)

	switch entity {
	case "user":
		first, last := fake.Person().FirstName(), fake.Person().LastName()
		data["firstName"] = first
		data["lastName"] = last
		data["username"] = strings.ToLower(fmt.Sprintf("%s.%s%d", first, last, fake.IntBetween(100, 9999)))
		data["email"] = fake.Internet().Email()
		data["gender"] = fake.RandomStringElement([]string{"male", "female", "other"})
		data["netWorth"] = fake.IntBetween(0, 1000000)
	case "profile":
		data["name"] = fake.Lorem().Sentence(3)
		data["radiusMiles"] = fake.IntBetween(1, 100)
	case "tagaffinity":
		data["tag"] = fake.Lorem().Word()
		data["affinity"] = fake.IntBetween(-100, 100)
	case "event":
		data["url"] = fmt.Sprintf("https://example.com/event/%d", fake.IntBetween(1, 1000000))
		data["title"] = fake.Lorem().Sentence(4)
		data["location"] = fake.Address().City()
		data["numOfExpectedAttendees"] = fake.IntBetween(1, 5000)
	case "userevent":
		data["rating"] = fake.IntBetween(1, 5)
		data["note"] = fake.Lorem().Sentence(6)
	case "url":
		data["url"] = fmt.Sprintf("https://example.com/events/%d", fake.IntBetween(1, 1000000))
	}
	return data
}
