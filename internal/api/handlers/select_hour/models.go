package select_hour

// SelectHourRequest HTTP request model
type SelectHourRequest struct {
	Hour *int `json:"hour"`
}
