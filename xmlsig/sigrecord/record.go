// Package sigrecord holds the Core B signature data model shared by the
// xmlsig orchestrator (Store, Controller, router) and the xmlsig/serialize
// renderers. It is deliberately a leaf package with no dependency on
// either, so the renderers don't need to import the orchestrator to
// describe what they render.
package sigrecord

import (
	"time"

	"github.com/goccy/go-json"
)

// ReferenceType classifies a signed resource, per interpr8's xsecctl.cxx
// reference-kind distinction (same-document fragment vs binary vs XML
// stream, the latter alone carrying a canonicalization transform).
type ReferenceType int

const (
	SameDocument ReferenceType = iota
	BinaryStream
	XmlStream
)

func (t ReferenceType) String() string {
	switch t {
	case SameDocument:
		return "SameDocument"
	case BinaryStream:
		return "BinaryStream"
	case XmlStream:
		return "XmlStream"
	default:
		return "Unknown"
	}
}

// StorageFormat tags which wire format a container uses, determined by
// the presence of a `[Content_Types].xml` entry in the root container.
type StorageFormat int

const (
	FormatODF StorageFormat = iota
	FormatOOXML
)

func (f StorageFormat) String() string {
	if f == FormatOOXML {
		return "OOXML"
	}
	return "ODF"
}

// SecurityStatus is the verification outcome correlated back to a
// SignatureInformation record by SecurityId.
type SecurityStatus int

const (
	StatusUnknown SecurityStatus = iota
	StatusPending
	StatusValid
	StatusInvalid
	StatusNotValidated
)

func (s SecurityStatus) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusValid:
		return "Valid"
	case StatusInvalid:
		return "Invalid"
	case StatusNotValidated:
		return "NotValidated"
	default:
		return "Unknown"
	}
}

// SignatureReference is one signed resource within a signature, per §3's
// Core B data model.
type SignatureReference struct {
	Type        ReferenceType `json:"type"`
	URI         string        `json:"uri"`
	DigestValue string        `json:"digest_value"`
}

// SignatureInformation is one signature record as held by the Store and
// emitted by the serializers. SecurityId is assigned by the Store when
// the record is added and used to correlate the asynchronous
// signatureVerified/signatureCreated callbacks routed through the SAX
// chain back onto this record.
type SignatureInformation struct {
	SecurityId            int                  `json:"security_id"`
	SignatureId           string               `json:"signature_id"`
	PropertyId            string               `json:"property_id"`
	DescriptionPropertyId string               `json:"description_property_id"`
	SignatureValue        string               `json:"signature_value"`
	DigestValue           string               `json:"digest_value"`
	X509IssuerName        string               `json:"x509_issuer_name"`
	X509SerialNumber      string               `json:"x509_serial_number"`
	X509Certificate       string               `json:"x509_certificate"` // base64
	CertDigest            string               `json:"cert_digest"`      // base64 SHA-256
	DateTime              time.Time            `json:"date_time"`
	DateTimeText          string               `json:"date_time_text,omitempty"`
	Description           string               `json:"description,omitempty"`
	References            []SignatureReference `json:"references"`
	Status                SecurityStatus       `json:"status"`
}

// Clone returns a deep copy safe to hand to a caller without aliasing
// the Store's internal slice, matching the wholesale-replace-on-read
// ownership rule in §3.
func (s SignatureInformation) Clone() SignatureInformation {
	out := s
	out.References = append([]SignatureReference(nil), s.References...)
	return out
}

// DebugJSON renders a SignatureInformation for trace logging via
// goccy/go-json, the JSON library the rest of the module standardizes
// on rather than encoding/json.
func (s SignatureInformation) DebugJSON() (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
