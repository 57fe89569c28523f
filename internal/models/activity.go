package models

// Activity is one entry of the fixed 30-day catalog
type Activity struct {
	Day                 int    `json:"day"`
	Title               string `json:"title"`
	Description         string `json:"description"` // markdown
	TimeRequiredMinutes *int   `json:"time_required_minutes,omitempty"`
	ReflectionPrompt    string `json:"reflection_prompt,omitempty"`
}

// RequiredMinutes returns the nominal duration, or 0 when the activity has none
func (a Activity) RequiredMinutes() int {
	if a.TimeRequiredMinutes == nil {
		return 0
	}
	return *a.TimeRequiredMinutes
}
