package serialize

import (
	"encoding/xml"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-ets/etsdsig/xmlsig/sigrecord"
)

func TestODFRendersSameDocumentAndXMLStreamReferencesDifferently(t *testing.T) {
	rec := sigrecord.SignatureInformation{
		SignatureId: "sig1",
		References: []sigrecord.SignatureReference{
			{Type: sigrecord.SameDocument, URI: "content.xml", DigestValue: "AAA"},
			{Type: sigrecord.XmlStream, URI: "styles.xml", DigestValue: "BBB"},
		},
		DateTimeText: "2024-01-02T03:04:05Z",
		Description:  "test signature",
	}

	out, err := ODF(rec)
	require.NoError(t, err)

	var parsed struct {
		XMLName    xml.Name `xml:"Signature"`
		Id         string   `xml:"Id,attr"`
		SignedInfo struct {
			References []struct {
				URI        string `xml:"URI,attr"`
				Transforms *struct {
					Transform struct {
						Algorithm string `xml:"Algorithm,attr"`
					} `xml:"Transform"`
				} `xml:"Transforms"`
			} `xml:"Reference"`
		} `xml:"SignedInfo"`
	}
	require.NoError(t, xml.Unmarshal(out, &parsed))

	assert.Equal(t, "sig1", parsed.Id)
	require.Len(t, parsed.SignedInfo.References, 2)

	assert.Equal(t, "#content.xml", parsed.SignedInfo.References[0].URI)
	assert.Nil(t, parsed.SignedInfo.References[0].Transforms)

	assert.Equal(t, "styles.xml", parsed.SignedInfo.References[1].URI)
	require.NotNil(t, parsed.SignedInfo.References[1].Transforms)
	assert.Equal(t, "http://www.w3.org/TR/2001/REC-xml-c14n-20010315",
		parsed.SignedInfo.References[1].Transforms.Transform.Algorithm)
}

func TestODFDateTimePrefersOriginalText(t *testing.T) {
	rec := sigrecord.SignatureInformation{DateTimeText: "not-a-real-timestamp"}
	assert.Equal(t, "not-a-real-timestamp", odfDateTime(rec))
}

func TestODFDateTimeStripsSubSecondFraction(t *testing.T) {
	rec := sigrecord.SignatureInformation{
		DateTime: time.Date(2024, time.March, 5, 10, 20, 30, 123000000, time.UTC),
	}
	assert.Equal(t, "2024-03-05T10:20:30Z", odfDateTime(rec))
}

func TestReferenceURISameDocumentVsExternal(t *testing.T) {
	assert.Equal(t, "#frag", referenceURI(sigrecord.SignatureReference{Type: sigrecord.SameDocument, URI: "frag"}))
	assert.Equal(t, "https://example.com/a", referenceURI(sigrecord.SignatureReference{Type: sigrecord.BinaryStream, URI: "https://example.com/a"}))
}
