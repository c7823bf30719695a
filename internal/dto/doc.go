// Package dto holds the data carriers exchanged between the services and the
// HTTP layer. A DTO is built from entities that were fully loaded inside a
// unit of work and never refers back to the store.
package dto
