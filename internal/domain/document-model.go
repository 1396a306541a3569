package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentType string

const (
	DocTypeCV             DocumentType = "cv"
	DocTypeQualification  DocumentType = "qualification"
	DocTypeIDDocument     DocumentType = "id_document"
	DocTypeCriminalRecord DocumentType = "criminal_record"
	DocTypeSelfie         DocumentType = "selfie"
)

// RequiredDocumentTypes returns every type a teacher needs approved to be
// verified, in display order.
func RequiredDocumentTypes() []DocumentType {
	return []DocumentType{
		DocTypeSelfie,
		DocTypeIDDocument,
		DocTypeCV,
		DocTypeQualification,
		DocTypeCriminalRecord,
	}
}

// ChecklistDocumentTypes returns the types counted by profile completeness.
// Selfies are captured separately and are not part of the checklist.
func ChecklistDocumentTypes() []DocumentType {
	return []DocumentType{
		DocTypeCV,
		DocTypeQualification,
		DocTypeIDDocument,
		DocTypeCriminalRecord,
	}
}

func (t DocumentType) Valid() bool {
	switch t {
	case DocTypeCV, DocTypeQualification, DocTypeIDDocument, DocTypeCriminalRecord, DocTypeSelfie:
		return true
	}
	return false
}

func (t DocumentType) Label() string {
	switch t {
	case DocTypeCV:
		return "CV"
	case DocTypeQualification:
		return "Qualification"
	case DocTypeIDDocument:
		return "ID Document"
	case DocTypeCriminalRecord:
		return "Criminal Record Check"
	case DocTypeSelfie:
		return "Selfie"
	}
	return string(t)
}

func ParseDocumentType(s string) (DocumentType, error) {
	t := DocumentType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("invalid document_type %q", s)
	}
	return t, nil
}

type DocumentStatus string

const (
	DocStatusPending  DocumentStatus = "pending"
	DocStatusApproved DocumentStatus = "approved"
	DocStatusRejected DocumentStatus = "rejected"
)

// Storage buckets.
const (
	BucketProfilePictures          = "profile-pictures"
	BucketRegistrationCertificates = "registration-certificates"
	BucketDocuments                = "documents"
)

// TeacherDocument is never edited by its owner. A resubmission is a new row.
type TeacherDocument struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TeacherID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"teacher_id"`
	DocumentType    DocumentType   `gorm:"type:varchar(30);not null;index" json:"document_type"`
	FileURL         string         `gorm:"type:text;not null" json:"file_url"` // storage path
	FileName        *string        `gorm:"type:varchar(255)" json:"file_name,omitempty"`
	Status          DocumentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ReviewedBy      *uuid.UUID     `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time     `json:"reviewed_at,omitempty"`
	RejectionReason *string        `gorm:"type:text" json:"rejection_reason,omitempty"`
	CreatedAt       time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

func (d *TeacherDocument) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
