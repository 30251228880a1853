/*
patch.go - What-if patch documents

PURPOSE:
  Converts operator-authored patch documents (the what-if input of the
  simulate surface) into engine.Patch values, reusing the workspace document
  vocabulary so a patch file reads like a workspace fragment.
*/
package factory

import (
	"fmt"
	"os"

	"github.com/warp/roster-engine/engine"
	"gopkg.in/yaml.v3"
)

// PatchDoc is the YAML/JSON form of an engine.Patch.
type PatchDoc struct {
	AddPeople    []PersonDoc `yaml:"add_people" json:"add_people"`
	RemovePeople []string    `yaml:"remove_people" json:"remove_people"`

	AddEvents    []EventDoc `yaml:"add_events" json:"add_events"`
	RemoveEvents []string   `yaml:"remove_events" json:"remove_events"`

	UpdateAvailability []AvailabilityDoc `yaml:"update_availability" json:"update_availability"`
}

// LoadPatch reads and converts a patch document from disk.
func LoadPatch(path string) (engine.Patch, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return engine.Patch{}, fmt.Errorf("failed to read patch file: %w", err)
	}
	return ParsePatch(raw)
}

// ParsePatch converts a YAML/JSON patch document.
func ParsePatch(raw []byte) (engine.Patch, error) {
	var doc PatchDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return engine.Patch{}, fmt.Errorf("failed to decode patch document: %w", err)
	}
	return BuildPatch(doc)
}

// BuildPatch converts a decoded patch document.
func BuildPatch(doc PatchDoc) (engine.Patch, error) {
	var patch engine.Patch

	for _, p := range doc.AddPeople {
		patch.AddPeople = append(patch.AddPeople, buildPerson(p))
	}
	for _, id := range doc.RemovePeople {
		patch.RemovePeople = append(patch.RemovePeople, engine.PersonID(id))
	}

	for _, e := range doc.AddEvents {
		ev, err := buildEvent(e)
		if err != nil {
			return engine.Patch{}, err
		}
		patch.AddEvents = append(patch.AddEvents, ev)
	}
	for _, id := range doc.RemoveEvents {
		patch.RemoveEvents = append(patch.RemoveEvents, engine.EventID(id))
	}

	for _, a := range doc.UpdateAvailability {
		av, err := buildAvailability(a)
		if err != nil {
			return engine.Patch{}, err
		}
		patch.UpdateAvailability = append(patch.UpdateAvailability, av)
	}

	return patch, nil
}
