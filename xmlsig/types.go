package xmlsig

import "github.com/go-ets/etsdsig/xmlsig/sigrecord"

// The Core B data model lives in sigrecord so that xmlsig/serialize can
// describe what it renders without importing this package back (xmlsig
// itself imports xmlsig/serialize from manager.go). These aliases let
// the rest of this package keep referring to the types unqualified.
type (
	ReferenceType         = sigrecord.ReferenceType
	StorageFormat         = sigrecord.StorageFormat
	SecurityStatus        = sigrecord.SecurityStatus
	SignatureReference    = sigrecord.SignatureReference
	SignatureInformation  = sigrecord.SignatureInformation
)

const (
	SameDocument = sigrecord.SameDocument
	BinaryStream = sigrecord.BinaryStream
	XmlStream    = sigrecord.XmlStream

	FormatODF   = sigrecord.FormatODF
	FormatOOXML = sigrecord.FormatOOXML

	StatusUnknown      = sigrecord.StatusUnknown
	StatusPending      = sigrecord.StatusPending
	StatusValid        = sigrecord.StatusValid
	StatusInvalid      = sigrecord.StatusInvalid
	StatusNotValidated = sigrecord.StatusNotValidated
)
