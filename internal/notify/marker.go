package notify

import "fmt"

// Kind identifies a notification family. The kind is part of the dedup
// marker, so two kinds never suppress each other's comments.
type Kind string

const (
	// KindMissingLinkedIssue reminds a human author to link an open issue.
	KindMissingLinkedIssue Kind = "MissingLinkedIssue"
	// KindProtoImpact flags a change to protobuf contract files.
	KindProtoImpact Kind = "ProtoImpact"
	// KindGeneratedDiff flags drift between generated artifacts and the
	// updated definitions.
	KindGeneratedDiff Kind = "GeneratedDiff"
)

// Marker returns the hidden HTML-comment tag embedded in posted comments.
// It is unique per (kind, head revision) pair; the comment thread itself is
// the durable record of what was already posted.
func Marker(kind Kind, headSHA string) string {
	return fmt.Sprintf("<!-- %s Marker: %s -->", kind, headSHA)
}
