// Package domain contains the core business entities and interfaces.
package domain

import "context"

// Person is one tracked individual from the person directory.
type Person struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// PersonRepository is the port for the person directory. The directory is
// seeded out-of-band and read-only to the application.
type PersonRepository interface {
	ListPeople(ctx context.Context) ([]Person, error)
	GetPersonByName(ctx context.Context, name string) (*Person, error)
}
