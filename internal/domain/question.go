package domain

import "fmt"

// Persona selects the voice used for generated answers. It conditions tone
// only; retrieval and enrichment behave identically for every persona.
type Persona string

const (
	PersonaNone        Persona = ""
	PersonaPolitician  Persona = "politician"
	PersonaInfluencer  Persona = "wannabe-influencer"
	PersonaRobotCrisis Persona = "robot-with-existential-crisis"
)

// AllPersonas lists the selectable personas, in the order they are documented.
var AllPersonas = []Persona{
	PersonaPolitician,
	PersonaInfluencer,
	PersonaRobotCrisis,
}

// ParsePersona validates a user-supplied persona tag. The empty string is
// accepted and means "no persona".
func ParsePersona(value string) (Persona, error) {
	if value == "" {
		return PersonaNone, nil
	}
	for _, p := range AllPersonas {
		if value == string(p) {
			return p, nil
		}
	}
	return PersonaNone, fmt.Errorf("unknown persona %q", value)
}

func (p Persona) String() string {
	return string(p)
}

// Question is the immutable input to one pipeline execution.
type Question struct {
	Text    string
	Persona Persona
}
