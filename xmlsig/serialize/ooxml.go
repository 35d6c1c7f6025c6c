package serialize

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"strings"

	"github.com/go-ets/etsdsig/xmlsig/sigrecord"
)

// escapeXMLText returns s with XML special characters escaped, as
// xml.EscapeText would write them, but as a string.
func escapeXMLText(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

const (
	idSignature    = "idPackageSignature"
	idPackageObj   = "idPackageObject"
	idOfficeObj    = "idOfficeObject"
	idSignedProps  = "idSignedProperties"
	xadesNS        = "http://uri.etsi.org/01903/v1.3.2#"
	relationshipsContentType = "application/vnd.openxmlformats-package.relationships+xml"
)

// relationTypeBlacklist lists the relationship types §4.13 excludes
// from the RelationshipReference children of a Relationship transform.
var relationTypeBlacklist = []string{
	"http://schemas.openxmlformats.org/package/2006/relationships/metadata/extended-properties",
	"http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties",
	"http://schemas.openxmlformats.org/package/2006/relationships/digital-signature/origin",
}

// streamNameBlacklist lists entries that are never referenced at all by
// an OOXML signature, per §4.13. "/_xmlsignatures" is matched as a
// prefix; the rest are exact matches.
var streamNameBlacklist = []string{
	"/%5BContent_Types%5D.xml",
	"/docProps/app.xml",
	"/docProps/core.xml",
}

const streamNameBlacklistPrefix = "/_xmlsignatures"

// IsBlacklistedStream reports whether name must never be referenced by
// an OOXML signature.
func IsBlacklistedStream(name string) bool {
	if strings.HasPrefix(name, streamNameBlacklistPrefix) {
		return true
	}
	for _, b := range streamNameBlacklist {
		if name == b {
			return true
		}
	}
	return false
}

func isBlacklistedRelationType(relType string) bool {
	for _, b := range relationTypeBlacklist {
		if relType == b {
			return true
		}
	}
	return false
}

// RelationshipEntry is one <Id, Type> pair read from a relationships
// part, supplied by the caller (the container/relationships reader is
// out of scope).
type RelationshipEntry struct {
	Id   string
	Type string
}

// ExternalReference is one externally-referenced OOXML part, with the
// relationships-part entries for it when its URI is itself a
// relationships part (so a Relationship transform can be expanded).
type ExternalReference struct {
	URI          string
	DigestValue  string
	Relationships []RelationshipEntry // only consulted when URI is a relationships part
}

type ooxmlRelationshipReference struct {
	SourceId string `xml:"SourceId,attr"`
}

type ooxmlRelationshipsTransform struct {
	XMLName xml.Name                      `xml:"mdssi:RelationshipTransform"`
	Refs    []ooxmlRelationshipReference `xml:"mdssi:RelationshipReference"`
}

type ooxmlReference struct {
	URI          string `xml:"URI,attr"`
	Type         string `xml:"Type,attr,omitempty"`
	TransformsXML string `xml:",innerxml"`
	DigestMethod struct {
		Algorithm string `xml:"Algorithm,attr"`
	} `xml:"DigestMethod"`
	DigestValue string `xml:"DigestValue"`
}

type ooxmlManifest struct {
	Id         string           `xml:"Id,attr"`
	References []ooxmlReference `xml:"Reference"`
}

type ooxmlObject struct {
	Id       string         `xml:"Id,attr,omitempty"`
	Manifest *ooxmlManifest `xml:"Manifest,omitempty"`
	Inner    string         `xml:",innerxml"`
}

type ooxmlSignedInfo struct {
	CanonicalizationMethod struct {
		Algorithm string `xml:"Algorithm,attr"`
	} `xml:"CanonicalizationMethod"`
	SignatureMethod struct {
		Algorithm string `xml:"Algorithm,attr"`
	} `xml:"SignatureMethod"`
	References []ooxmlReference `xml:"Reference"`
}

type ooxmlSignature struct {
	XMLName        xml.Name        `xml:"Signature"`
	XMLNS          string          `xml:"xmlns,attr"`
	Id             string          `xml:"Id,attr"`
	SignedInfo     ooxmlSignedInfo `xml:"SignedInfo"`
	SignatureValue string          `xml:"SignatureValue"`
	KeyInfo        struct {
		X509Data odfX509Data `xml:"X509Data"`
	} `xml:"KeyInfo"`
	Objects []ooxmlObject `xml:"Object"`
}

// OOXML renders one SignatureInformation record as a fixed-structure
// OOXML <Signature id="idPackageSignature"> per §4.13: RSA-SHA256
// signature method, same-document references to #idPackageObject,
// #idOfficeObject, and #idSignedProperties, a Manifest of external
// references (externals whose part name, the URI before any '?', is
// blacklisted by IsBlacklistedStream are skipped; each
// relationships-part reference expands into a
// Relationship transform filtered by the relation-type blacklist), a
// SignatureInfoV1 block on idOfficeObject, and an xd:QualifyingProperties
// Object — omitted entirely under LO_TESTNAME.
func OOXML(rec sigrecord.SignatureInformation, externals []ExternalReference) ([]byte, error) {
	sig := ooxmlSignature{
		XMLNS: dsigNS,
		Id:    idSignature,
	}
	sig.SignedInfo.CanonicalizationMethod.Algorithm = "http://www.w3.org/TR/2001/REC-xml-c14n-20010315"
	sig.SignedInfo.SignatureMethod.Algorithm = "http://www.w3.org/2001/04/xmldsig-more#rsa-sha256"

	sig.SignedInfo.References = append(sig.SignedInfo.References,
		sameDocumentReference("#"+idPackageObj, ""),
		sameDocumentReference("#"+idOfficeObj, ""),
		sameDocumentReference("#"+idSignedProps, "http://uri.etsi.org/01903#SignedProperties"),
	)

	manifest := &ooxmlManifest{Id: idPackageObj}
	for _, ext := range externals {
		partName := ext.URI
		if q := strings.IndexByte(partName, '?'); q >= 0 {
			partName = partName[:q]
		}
		if IsBlacklistedStream(partName) {
			continue
		}
		manifest.References = append(manifest.References, externalReference(ext))
	}
	sig.Objects = append(sig.Objects, ooxmlObject{Manifest: manifest})
	sig.Objects = append(sig.Objects, ooxmlObject{Id: idOfficeObj, Inner: signatureInfoV1(rec)})

	if os.Getenv("LO_TESTNAME") == "" {
		sig.Objects = append(sig.Objects, ooxmlObject{Inner: qualifyingProperties(rec)})
	}

	out, err := xml.MarshalIndent(sig, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal OOXML signature: %w", err)
	}
	return out, nil
}

func sameDocumentReference(uri, refType string) ooxmlReference {
	r := ooxmlReference{URI: uri, Type: refType}
	r.TransformsXML = `<Transforms><Transform Algorithm="http://www.w3.org/TR/2001/REC-xml-c14n-20010315"/></Transforms>`
	r.DigestMethod.Algorithm = "http://www.w3.org/2001/04/xmlenc#sha256"
	return r
}

// externalReference renders one Manifest <Reference>, expanding a
// reference to a relationships part (URI ending in the well-known
// ContentType query suffix) into a Relationship transform followed by
// a C14N transform, its RelationshipReference children filtered by the
// relation-type blacklist.
func externalReference(ext ExternalReference) ooxmlReference {
	r := ooxmlReference{URI: ext.URI}
	r.DigestMethod.Algorithm = "http://www.w3.org/2000/09/xmldsig#sha1"
	r.DigestValue = ext.DigestValue

	if !strings.HasSuffix(ext.URI, "?ContentType="+relationshipsContentType) {
		return r
	}

	relTransform := ooxmlRelationshipsTransform{}
	for _, entry := range ext.Relationships {
		if isBlacklistedRelationType(entry.Type) {
			continue
		}
		relTransform.Refs = append(relTransform.Refs, ooxmlRelationshipReference{SourceId: entry.Id})
	}

	relXML, _ := xml.Marshal(relTransform)
	r.TransformsXML = fmt.Sprintf(
		`<Transforms><Transform Algorithm="http://schemas.openxmlformats.org/package/2006/RelationshipTransform">%s</Transform><Transform Algorithm="http://www.w3.org/TR/2001/REC-xml-c14n-20010315"/></Transforms>`,
		relXML,
	)
	return r
}

// signatureInfoV1 renders idOfficeObject's SignatureInfoV1 block with
// the fixed placeholder values §4.13 specifies, plus the record's
// description as SignatureComments.
func signatureInfoV1(rec sigrecord.SignatureInformation) string {
	return fmt.Sprintf(
		`<SignatureInfoV1 xmlns="http://schemas.microsoft.com/office/2006/digsig">`+
			`<SetupID></SetupID>`+
			`<SignatureText></SignatureText>`+
			`<SignatureImage></SignatureImage>`+
			`<SignatureComments>%s</SignatureComments>`+
			`<WindowsVersion>6.1</WindowsVersion>`+
			`<OfficeVersion>16.0</OfficeVersion>`+
			`<ApplicationVersion>16.0</ApplicationVersion>`+
			`<Monitors>1</Monitors>`+
			`<HorizontalResolution>1280</HorizontalResolution>`+
			`<VerticalResolution>800</VerticalResolution>`+
			`<ColorDepth>32</ColorDepth>`+
			`<SignatureProviderId>{00000000-0000-0000-0000-000000000000}</SignatureProviderId>`+
			`<SignatureType>1</SignatureType>`+
			`</SignatureInfoV1>`,
		escapeXMLText(rec.Description),
	)
}

// qualifyingProperties renders the xd:QualifyingProperties Object:
// xd:SignedProperties (idSignedProperties) with signing time, signing
// certificate digest (SHA-256, CertDigest), issuer name, and serial
// number, plus an implied signature policy.
func qualifyingProperties(rec sigrecord.SignatureInformation) string {
	return fmt.Sprintf(
		`<xd:QualifyingProperties xmlns:xd="%s" Target="#%s">`+
			`<xd:SignedProperties Id="%s">`+
			`<xd:SignedSignatureProperties>`+
			`<xd:SigningTime>%s</xd:SigningTime>`+
			`<xd:SigningCertificate><xd:Cert>`+
			`<xd:CertDigest><xd:DigestMethod Algorithm="http://www.w3.org/2001/04/xmlenc#sha256"/>`+
			`<xd:DigestValue>%s</xd:DigestValue></xd:CertDigest>`+
			`<xd:IssuerSerial><X509IssuerName>%s</X509IssuerName><X509SerialNumber>%s</X509SerialNumber></xd:IssuerSerial>`+
			`</xd:Cert></xd:SigningCertificate>`+
			`<xd:SignaturePolicyIdentifier><xd:SignaturePolicyImplied/></xd:SignaturePolicyIdentifier>`+
			`</xd:SignedSignatureProperties>`+
			`</xd:SignedProperties>`+
			`</xd:QualifyingProperties>`,
		xadesNS, idSignature, idSignedProps, odfDateTime(rec),
		escapeXMLText(rec.CertDigest),
		escapeXMLText(rec.X509IssuerName),
		escapeXMLText(rec.X509SerialNumber),
	)
}
