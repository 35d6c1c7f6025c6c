// Package serialize emits the ODF and OOXML XML-DSig documents §4.12 and
// §4.13 describe. It depends only on xmlsig/sigrecord's data model, not
// on the xmlsig orchestrator package itself, which in turn depends on
// serialize from manager.go — importing xmlsig here would cycle. No
// repo in the reference corpus imports an XML library, so this package
// uses encoding/xml directly — see DESIGN.md for the stdlib-fallback
// justification.
package serialize

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/go-ets/etsdsig/xmlsig/sigrecord"
)

const dsigNS = "http://www.w3.org/2000/09/xmldsig#"

type odfTransforms struct {
	Transform struct {
		Algorithm string `xml:"Algorithm,attr"`
	} `xml:"Transform"`
}

type odfReference struct {
	URI        string         `xml:"URI,attr"`
	Transforms *odfTransforms `xml:"Transforms,omitempty"`
	DigestMethod struct {
		Algorithm string `xml:"Algorithm,attr"`
	} `xml:"DigestMethod"`
	DigestValue string `xml:"DigestValue"`
}

type odfSignedInfo struct {
	CanonicalizationMethod struct {
		Algorithm string `xml:"Algorithm,attr"`
	} `xml:"CanonicalizationMethod"`
	SignatureMethod struct {
		Algorithm string `xml:"Algorithm,attr"`
	} `xml:"SignatureMethod"`
	References []odfReference `xml:"Reference"`
}

type odfX509Data struct {
	X509IssuerName   string `xml:"X509IssuerName"`
	X509SerialNumber string `xml:"X509SerialNumber"`
	X509Certificate  string `xml:"X509Certificate,omitempty"`
}

type odfKeyInfo struct {
	X509Data odfX509Data `xml:"X509Data"`
}

type odfProperty struct {
	Target string `xml:"Target,attr"`
	Date   string `xml:"dc:date,omitempty"`
	Desc   string `xml:"dc:description,omitempty"`
}

type odfSignature struct {
	XMLName        xml.Name      `xml:"Signature"`
	XMLNS          string        `xml:"xmlns,attr"`
	Id             string        `xml:"Id,attr"`
	SignedInfo     odfSignedInfo `xml:"SignedInfo"`
	SignatureValue string        `xml:"SignatureValue"`
	KeyInfo        odfKeyInfo    `xml:"KeyInfo"`
	ObjectProps    *odfProperty  `xml:"Object>SignatureProperties>SignatureProperty,omitempty"`
}

// ODF renders one SignatureInformation record as a single <Signature>
// element per §4.12: canonicalization + RSA-SHA1 signature method, one
// <Reference> per signed resource (same-document fragments use #uri;
// XML streams add a C14N Transforms), SHA-1 digests, KeyInfo/X509Data,
// and an Object/SignatureProperties block carrying dc:date (preferring
// DateTimeText when present) and, if non-empty, dc:description.
func ODF(rec sigrecord.SignatureInformation) ([]byte, error) {
	sig := odfSignature{
		XMLNS: dsigNS,
		Id:    rec.SignatureId,
	}
	sig.SignedInfo.CanonicalizationMethod.Algorithm = "http://www.w3.org/TR/2001/REC-xml-c14n-20010315"
	sig.SignedInfo.SignatureMethod.Algorithm = "http://www.w3.org/2000/09/xmldsig#rsa-sha1"

	for _, ref := range rec.References {
		r := odfReference{URI: referenceURI(ref)}
		r.DigestMethod.Algorithm = "http://www.w3.org/2000/09/xmldsig#sha1"
		r.DigestValue = ref.DigestValue
		if ref.Type == sigrecord.XmlStream {
			r.Transforms = &odfTransforms{}
			r.Transforms.Transform.Algorithm = "http://www.w3.org/TR/2001/REC-xml-c14n-20010315"
		}
		sig.SignedInfo.References = append(sig.SignedInfo.References, r)
	}

	sig.SignatureValue = rec.SignatureValue
	sig.KeyInfo.X509Data = odfX509Data{
		X509IssuerName:   rec.X509IssuerName,
		X509SerialNumber: rec.X509SerialNumber,
		X509Certificate:  rec.X509Certificate,
	}

	sig.ObjectProps = &odfProperty{
		Target: "#" + rec.SignatureId,
		Date:   odfDateTime(rec),
		Desc:   rec.Description,
	}

	out, err := xml.MarshalIndent(sig, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal ODF signature %q: %w", rec.SignatureId, err)
	}
	return out, nil
}

// odfDateTime implements §4.13's time-formatting rule (shared by both
// variants): prefer the record's original string; otherwise convert to
// ISO 8601 and strip any sub-second fraction, appending Z.
func odfDateTime(rec sigrecord.SignatureInformation) string {
	if rec.DateTimeText != "" {
		return rec.DateTimeText
	}
	ts := rec.DateTime.UTC().Format("2006-01-02T15:04:05.000")
	if idx := strings.IndexByte(ts, '.'); idx >= 0 {
		ts = ts[:idx]
	}
	return ts + "Z"
}

func referenceURI(ref sigrecord.SignatureReference) string {
	if ref.Type == sigrecord.SameDocument {
		return "#" + ref.URI
	}
	return ref.URI
}
