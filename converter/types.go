package converter

// ConverterOptions contains all configuration needed for record to SIRI conversion.
// This struct has no dependencies on config files.
type ConverterOptions struct {
	// AgencyID is the codespace used in SIRI reference formatting, e.g.
	// {agency}:VehicleRef:{truck_id}. Empty falls back to "UNKNOWN".
	AgencyID string

	// ValidUntilMS is how long a response stays valid, in milliseconds.
	// Zero omits ValidUntil.
	ValidUntilMS int

	// FieldMutators defines string replacement rules for SIRI references.
	// Optional - leave empty if no mutations needed.
	FieldMutators FieldMutators
}

// FieldMutators defines string replacement rules for SIRI reference fields.
// Format: [from1, to1, from2, to2, ...] - pairs of old/new values.
//
// Example:
//
//	FieldMutators{
//	    VehicleRef: []string{"truck-1", "KJA-123-XY"},
//	}
//
// This would publish truck-1 as {codespace}:VehicleRef:KJA-123-XY.
type FieldMutators struct {
	VehicleRef      []string
	OriginName      []string
	DestinationName []string
}
