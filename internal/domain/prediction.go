package domain

// Prediction is a disaster forecast payload. The current model is a
// placeholder; real inference is supplied by an external service.
type Prediction struct {
	Disaster    string
	Probability float64
	Time        string
}

// Event is a realtime monitoring update pushed over the event channel.
type Event struct {
	Status   string `json:"status"`
	Location string `json:"location"`
}
