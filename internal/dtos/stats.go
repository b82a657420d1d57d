package dtos

type StatsResponse struct {
	URL    string `json:"url"`
	Clicks int64  `json:"clicks"`
}
