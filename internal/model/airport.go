package model

// Airport is a departure or arrival point referenced by routes.  It
// corresponds to a row in the `airports` table.
//
// Fields:
//  ID             – primary key identifier.
//  Name           – airport name.
//  ClosestBigCity – nearest major city, used for route search (nullable).
type Airport struct {
	ID             uint64  // airports.id
	Name           string  // airports.name
	ClosestBigCity *string // airports.closest_big_city (nullable)
}

// Route connects a source airport to a destination airport.  Flights are
// scheduled on routes.  Distance is in kilometres when known.
//
// Fields:
//  ID            – primary key identifier.
//  SourceID      – departure airport.
//  DestinationID – arrival airport.
//  Distance      – route length in km (nullable).
type Route struct {
	ID            uint64 // routes.id
	SourceID      uint64 // routes.source_id
	DestinationID uint64 // routes.destination_id
	Distance      *int   // routes.distance (nullable)
}
