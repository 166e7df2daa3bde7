package model

// Crew positions as stored in crews.position.
const (
	PositionCaptain             = "CAPTAIN"
	PositionFirstOfficer        = "FIRST_OFFICER"
	PositionLeadFlightAttendant = "LEAD_FLIGHT_ATTENDANT"
	PositionFlightAttendant     = "FLIGHT_ATTENDANT"
)

// Crew is a single crew member assignable to flights (many-to-many via
// the `flight_crew` join table).
//
// Fields:
//  ID        – primary key identifier.
//  FirstName – given name.
//  LastName  – family name.
//  Position  – one of the Position* constants.
type Crew struct {
	ID        uint64 // crews.id
	FirstName string // crews.first_name
	LastName  string // crews.last_name
	Position  string // crews.position
}
