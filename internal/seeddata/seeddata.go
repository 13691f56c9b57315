// Package seeddata supplies the team member records to seed. Records come from
// a JSON array file; the site's current roster is embedded as the default.
package seeddata

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"team-seed.backend/internal/domain/entities"
)

//go:embed team_members.json
var defaultRoster []byte

// Default returns the embedded roster in file order.
func Default() ([]*entities.TeamMember, error) {
	members, err := Decode(bytes.NewReader(defaultRoster))
	if err != nil {
		return nil, fmt.Errorf("decode embedded roster: %w", err)
	}
	return members, nil
}

// LoadFile reads a roster from path, or the embedded roster when path is empty.
func LoadFile(path string) ([]*entities.TeamMember, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roster: %w", err)
	}
	defer f.Close()

	members, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode roster %s: %w", path, err)
	}
	return members, nil
}

// Decode parses a JSON array of team members. Keys the table has no column
// for are ignored; missing keys keep their zero value.
func Decode(r io.Reader) ([]*entities.TeamMember, error) {
	var members []*entities.TeamMember
	dec := json.NewDecoder(r)
	if err := dec.Decode(&members); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after roster array")
	}
	for i, m := range members {
		if m == nil {
			return nil, fmt.Errorf("entry %d is null", i)
		}
	}
	return members, nil
}
