package places

import "strings"

// Details is the reduced place detail record kept in the cache and carried
// through the job pipeline. Field names match the persisted cache snapshot.
type Details struct {
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Address string  `json:"address"`
	Website string  `json:"website"`
	Rating  float64 `json:"rating"`
	Reviews int     `json:"reviews"`
	MapsURL string  `json:"mapsUrl"`
}

// NormalizePhone reduces a display phone number to its digits. Used as a
// dedup key only, never shown to users.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Upstream wire formats (legacy Places API).

type searchResponse struct {
	Status        string `json:"status"`
	ErrorMessage  string `json:"error_message"`
	NextPageToken string `json:"next_page_token"`
	Results       []struct {
		PlaceID string `json:"place_id"`
	} `json:"results"`
}

type detailsResponse struct {
	Status string `json:"status"`
	Result struct {
		Name                 string  `json:"name"`
		FormattedPhoneNumber string  `json:"formatted_phone_number"`
		FormattedAddress     string  `json:"formatted_address"`
		Website              string  `json:"website"`
		Rating               float64 `json:"rating"`
		UserRatingsTotal     int     `json:"user_ratings_total"`
		URL                  string  `json:"url"`
	} `json:"result"`
}
