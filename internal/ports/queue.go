package ports

// MessageQueue publishes profile lifecycle events.
type MessageQueue interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler func(data []byte) error) error
	Close() error
}

// Subjects published by the profile service.
const (
	SubjectProfileSaved   = "clinic.profile.saved"
	SubjectProfileDeleted = "clinic.profile.deleted"
)
