package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// City is an entry of the predefined city catalog.
type City struct {
	ID    string `bson:"_id" json:"_id" yaml:"id"`
	Name  string `bson:"name" json:"name" yaml:"name"`
	Order int    `bson:"order" json:"order" yaml:"order"`
}

// CityRef is the owning-city reference carried by a question.
// The backend sends either null, a bare id string, or a populated city object.
type CityRef struct {
	ID   string `bson:"_id" json:"_id" yaml:"id"`
	Name string `bson:"name,omitempty" json:"name,omitempty" yaml:"name,omitempty"`
}

func (r *CityRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = CityRef{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = CityRef{ID: id}
		return nil
	}
	type plain CityRef
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = CityRef(p)
	return nil
}

// FindCity returns the catalog entry whose name matches name, ignoring case and surrounding space.
func FindCity(cities []City, name string) (City, bool) {
	name = strings.TrimSpace(name)
	for _, c := range cities {
		if strings.EqualFold(strings.TrimSpace(c.Name), name) {
			return c, true
		}
	}
	return City{}, false
}
