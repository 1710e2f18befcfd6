package converter

import (
	"fmt"
	"log"
	"slices"
	"strings"
)

// Warning type constants
const (
	WarningNoOriginLabel      = "no_origin_label"
	WarningNoDestinationLabel = "no_destination_label"
	WarningNoPlannedDistance  = "no_planned_distance"
	WarningNoRoute            = "no_route"
)

// warningInfo holds aggregated information about a specific warning type
type warningInfo struct {
	count    int
	examples []string
}

// WarningAggregator collects warnings during conversion and outputs consolidated summaries
type WarningAggregator struct {
	warnings map[string]*warningInfo
}

// NewWarningAggregator creates a new warning aggregator
func NewWarningAggregator() *WarningAggregator {
	return &WarningAggregator{
		warnings: make(map[string]*warningInfo),
	}
}

// Add records a warning occurrence with an example ID
func (w *WarningAggregator) Add(warningType, exampleID string) {
	if w.warnings[warningType] == nil {
		w.warnings[warningType] = &warningInfo{
			examples: make([]string, 0, 3),
		}
	}

	info := w.warnings[warningType]
	info.count++

	// Store up to 3 examples
	if len(info.examples) < 3 {
		info.examples = append(info.examples, exampleID)
	}
}

// Count returns how often warningType was added.
func (w *WarningAggregator) Count(warningType string) int {
	if info := w.warnings[warningType]; info != nil {
		return info.count
	}
	return 0
}

// Messages returns one consolidated message per warning type, sorted by type.
func (w *WarningAggregator) Messages(feedModule, agencyID string) []string {
	types := make([]string, 0, len(w.warnings))
	for t := range w.warnings {
		types = append(types, t)
	}
	slices.Sort(types)

	out := make([]string, 0, len(types))
	for _, t := range types {
		out = append(out, w.formatWarningMessage(t, feedModule, agencyID, w.warnings[t]))
	}
	return out
}

// LogAll outputs all collected warnings in consolidated format
func (w *WarningAggregator) LogAll(feedModule, agencyID string) {
	for _, message := range w.Messages(feedModule, agencyID) {
		log.Printf("%s", message)
	}
}

// formatWarningMessage creates a human-readable warning message
func (w *WarningAggregator) formatWarningMessage(warningType, feedModule, agencyID string, info *warningInfo) string {
	var description, action string

	switch warningType {
	case WarningNoOriginLabel:
		description = "trucks with no origin label"
		action = "Building SIRI output without OriginName"
	case WarningNoDestinationLabel:
		description = "trucks with no destination label"
		action = "Using destination coordinates as StopPointName"
	case WarningNoPlannedDistance:
		description = "trucks with no planned distance"
		action = "Reporting 0% progress"
	case WarningNoRoute:
		description = "trucks with no route"
		action = "Building SIRI output without MonitoredCall"
	default:
		description = "unknown issue"
		action = "Building SIRI output with fallback behavior"
	}

	examplesStr := strings.Join(info.examples, ", ")

	return fmt.Sprintf("Feed %s for agency %s has %s (%d occurrences). %s. Examples: %s",
		feedModule, agencyID, description, info.count, action, examplesStr)
}
