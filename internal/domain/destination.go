package domain

import "strings"

const (
	destLabelMarker = "dest:"
	queueTypeCode   = "0"
)

// ExtractDestination turns "dest:<type>:<name>, [...]" into "<name> (Queue)"
// or "<name> (Topic)".
func ExtractDestination(payload string) (string, error) {
	idx := strings.Index(payload, destLabelMarker)
	if idx < 0 {
		return "", newMalformedLineError(payload, "missing dest: marker")
	}

	rest := payload[idx+len(destLabelMarker):]
	if len(rest) < 2 {
		return "", newMalformedLineError(payload, "missing destination type and name")
	}

	typeCode := rest[:1]
	name := rest[2:]
	comma := strings.Index(name, ",")
	if comma < 0 {
		return "", newMalformedLineError(payload, "missing comma after destination name")
	}
	name = name[:comma]

	if typeCode == queueTypeCode {
		return name + " (Queue)", nil
	}
	return name + " (Topic)", nil
}
