package models

import "encoding/json"

// OptionalInt distinguishes an absent JSON field from an explicit null.
// Set is true when the key appeared in the payload; Value is nil for null.
type OptionalInt struct {
	Set   bool
	Value *int
}

func (o *OptionalInt) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// OptionalString is the string counterpart of OptionalInt.
type OptionalString struct {
	Set   bool
	Value *string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// ProgressPatch is a partial update of a series watch entry. Absent fields are
// left untouched; explicit nulls clear the field.
type ProgressPatch struct {
	CurrentSeason   OptionalInt    `json:"current_season"`
	CurrentEpisode  OptionalInt    `json:"current_episode"`
	TotalEpisodes   OptionalInt    `json:"total_episodes"`
	WatchedEpisodes OptionalInt    `json:"watched_episodes"`
	Status          OptionalString `json:"status"`
}
