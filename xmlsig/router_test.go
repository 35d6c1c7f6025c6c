package xmlsig

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errCommitUnavailable = errors.New("commit unavailable")

type fakeReader struct {
	entries []string
}

func (f *fakeReader) Entries() []string { return f.entries }

func (f *fakeReader) OpenEntry(name string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(nil)), nil
}

type fakeWriteCloser struct {
	buf bytes.Buffer
}

func (f *fakeWriteCloser) Write(p []byte) (int, error) { return f.buf.Write(p) }
func (f *fakeWriteCloser) Close() error                { return nil }

type fakeWriter struct {
	committed  map[string][]byte
	discarded  int
	failCommit bool
}

func newFakeWriter() *fakeWriter {
	return &fakeWriter{committed: map[string][]byte{}}
}

func (f *fakeWriter) OpenTempEntry(name string) (io.WriteCloser, error) {
	return &fakeWriteCloser{}, nil
}

func (f *fakeWriter) CommitEntry(name string, tmp io.WriteCloser) error {
	if f.failCommit {
		return errCommitUnavailable
	}
	f.committed[name] = tmp.(*fakeWriteCloser).buf.Bytes()
	return nil
}

func (f *fakeWriter) Discard(tmp io.WriteCloser) error {
	f.discarded++
	return nil
}

func TestDetectFormatOOXMLWhenContentTypesPresent(t *testing.T) {
	r := &fakeReader{entries: []string{"[Content_Types].xml", "word/document.xml"}}
	assert.Equal(t, FormatOOXML, DetectFormat(r))
}

func TestDetectFormatODFWhenContentTypesAbsent(t *testing.T) {
	r := &fakeReader{entries: []string{"content.xml", "META-INF/manifest.xml"}}
	assert.Equal(t, FormatODF, DetectFormat(r))
}

func TestOpenSignatureStreamAdoptsCallerStreamExactlyOnce(t *testing.T) {
	w := newFakeWriter()
	caller := &fakeWriteCloser{}

	stream, err := OpenSignatureStream(w, FormatODF, ModeContent, caller)
	require.Nil(t, err)
	assert.Same(t, caller, stream)
}

func TestOpenSignatureStreamOpensFinalEntryWhenNoCaller(t *testing.T) {
	w := newFakeWriter()

	stream, err := OpenSignatureStream(w, FormatOOXML, ModeMacro, nil)
	require.Nil(t, err)
	assert.NotNil(t, stream)
}

func TestOpenTempSignatureStreamNamesODFAndOOXMLDifferently(t *testing.T) {
	w := newFakeWriter()

	_, odfDest, err := openTempSignatureStream(w, FormatODF, 0)
	require.Nil(t, err)
	assert.Equal(t, "META-INF/documentsignatures.xml", odfDest.entry)

	_, ooxmlDest, err := openTempSignatureStream(w, FormatOOXML, 2)
	require.Nil(t, err)
	assert.Equal(t, "_xmlsignatures/sig2.xml", ooxmlDest.entry)
}

func TestIsXMLTestModeOverride(t *testing.T) {
	t.Setenv("LO_TESTNAME", "unit")
	r := &fakeReader{entries: []string{"content.xml"}}
	assert.True(t, IsXML(r, "anything.bin"))
}

func TestIsXMLByExtensionOutsideTestMode(t *testing.T) {
	r := &fakeReader{entries: []string{"content.xml"}}
	assert.True(t, IsXML(r, "content.xml"))
	assert.False(t, IsXML(r, "Thumbnails/thumbnail.png"))
}
