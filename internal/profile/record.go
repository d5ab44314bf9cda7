package profile

import "strings"

// Identity carries the Telegram identity fields seen on an update.
type Identity struct {
	UserID    int64
	FirstName string
	LastName  string
	Username  string
}

// DisplayName joins first and last name.
func (id Identity) DisplayName() string {
	return strings.TrimSpace(id.FirstName + " " + id.LastName)
}

// Record is the session of one user. Empty strings mean the field was not provided.
type Record struct {
	UserID      int64
	DisplayName string
	FirstName   string
	Handle      string
	Step        Step

	ProfileImage string
	Education    string
	Certificates string
	Completed    bool
}

// NewRecord returns the record created on first contact.
func NewRecord(id Identity) *Record {
	r := &Record{UserID: id.UserID, Step: StepStart}
	r.Refresh(id)
	return r
}

// Refresh copies the latest identity fields. Blank values never overwrite known ones.
func (r *Record) Refresh(id Identity) {
	if name := id.DisplayName(); name != "" {
		r.DisplayName = name
	}
	if first := strings.TrimSpace(id.FirstName); first != "" {
		r.FirstName = first
	}
	if handle := strings.TrimSpace(id.Username); handle != "" {
		r.Handle = handle
	}
}

// HasImage reports whether a profile picture was stored.
func (r Record) HasImage() bool { return r.ProfileImage != "" }

// Missing returns the first required field that is absent, or "".
// Fields are checked in wizard order.
func (r Record) Missing() Field {
	switch {
	case r.ProfileImage == "":
		return FieldProfileImage
	case strings.TrimSpace(r.Education) == "":
		return FieldEducation
	case strings.TrimSpace(r.Certificates) == "":
		return FieldCertificates
	}
	return ""
}

// Field names a collected profile field.
type Field string

const (
	FieldProfileImage Field = "profile_image"
	FieldEducation    Field = "education"
	FieldCertificates Field = "certificates"
)
