package gpx

import (
	"fmt"
	"strings"
	"time"
)

// The GPX standard has no fields for this system's waypoint metadata, so
// auxiliary attributes travel in the free-text description as " | "-joined
// "Label: value" segments in a fixed order, with "N/A" marking an absent
// field. A waypoint with no metadata at all uses "-" as its description.

// EmptyField is the sentinel for an absent metadata field.
const EmptyField = "N/A"

// EmptyDescription is the sentinel for a waypoint with no metadata.
const EmptyDescription = "-"

const dateLayout = "2006-01-02"

var descriptionLabels = []string{"Name", "Co-located with", "Last accessed at", "Last accessed by", "Comment"}

// DescriptionFields holds the metadata carried in a waypoint description,
// in the same shape the domain waypoint stores it.
type DescriptionFields struct {
	Name           string
	ColocatedWith  string
	LastAccessedAt *time.Time
	LastAccessedBy string
	Comment        string
}

// PackDescription renders metadata fields into a description string.
func PackDescription(f DescriptionFields) string {
	lastAccessedAt := ""
	if f.LastAccessedAt != nil {
		lastAccessedAt = f.LastAccessedAt.Format(dateLayout)
	}

	values := []string{f.Name, f.ColocatedWith, lastAccessedAt, f.LastAccessedBy, f.Comment}

	empty := true
	segments := make([]string, len(values))
	for i, v := range values {
		if v == "" {
			segments[i] = fmt.Sprintf("%s: %s", descriptionLabels[i], EmptyField)
			continue
		}
		segments[i] = fmt.Sprintf("%s: %s", descriptionLabels[i], v)
		empty = false
	}

	if empty {
		return EmptyDescription
	}
	return strings.Join(segments, " | ")
}

// UnpackDescription parses a description back into metadata fields. Labels
// are optional on input — field teams often supply bare values in segment
// order — and a missing or sentinel description yields zero fields.
func UnpackDescription(description string) (DescriptionFields, error) {
	var f DescriptionFields

	if description == "" || description == EmptyDescription {
		return f, nil
	}

	segments := strings.Split(description, " | ")
	for i, segment := range segments {
		if i >= len(descriptionLabels) {
			break
		}
		value := strings.TrimSpace(segment)
		if prefix := descriptionLabels[i] + ":"; strings.HasPrefix(value, prefix) {
			value = strings.TrimSpace(strings.TrimPrefix(value, prefix))
		}
		if value == EmptyField || value == "" {
			continue
		}

		switch i {
		case 0:
			f.Name = value
		case 1:
			f.ColocatedWith = value
		case 2:
			at, err := time.Parse(dateLayout, value)
			if err != nil {
				return DescriptionFields{}, fmt.Errorf("gpx.UnpackDescription: invalid last accessed date %q: %w", value, err)
			}
			f.LastAccessedAt = &at
		case 3:
			f.LastAccessedBy = value
		case 4:
			f.Comment = value
		}
	}

	return f, nil
}
