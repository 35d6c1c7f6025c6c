package xmlsig

import (
	"io"
	"os"
	"strconv"
	"strings"
)

// contentTypesEntry is the OOXML marker entry whose presence in the root
// container distinguishes OOXML from ODF, per §3's storage-format tag.
const contentTypesEntry = "[Content_Types].xml"

// SignatureMode selects which final destination OpenSignatureStream
// resolves to when no caller-supplied stream is given: the document's
// content signatures or its macro signatures.
type SignatureMode int

const (
	ModeContent SignatureMode = iota
	ModeMacro
)

// DetectFormat probes the root container for a [Content_Types].xml
// entry: presence means OOXML, absence means ODF, per §4.10.
func DetectFormat(root ContainerReader) StorageFormat {
	for _, name := range root.Entries() {
		if name == contentTypesEntry || strings.HasSuffix(name, "/"+contentTypesEntry) {
			return FormatOOXML
		}
	}
	return FormatODF
}

// IsXML reports whether the entry at name should be parsed as XML.
// Under the test-mode override (LO_TESTNAME set) every entry is treated
// as XML because the manifest/content-types probe that would normally
// answer this question can't be exercised without a working crypto
// backend; otherwise it defers to probeXML.
func IsXML(root ContainerReader, name string) bool {
	if os.Getenv("LO_TESTNAME") != "" {
		return true
	}
	return probeXML(root, name)
}

// probeXML answers the manifest-based XML detection IsXML defers to
// outside test mode: an entry is XML if its name ends in ".xml" or if
// the root is OOXML (every OOXML part other than binary media is XML).
func probeXML(root ContainerReader, name string) bool {
	if strings.HasSuffix(strings.ToLower(name), ".xml") {
		return true
	}
	return DetectFormat(root) == FormatOOXML && !strings.Contains(name, "/media/")
}

// tempDestination describes where OpenSignatureStream should write a
// freshly-allocated signature stream while a new signature is being
// composed: a single stream for ODF, or an entry name inside an OOXML
// signatures sub-storage.
type tempDestination struct {
	format StorageFormat
	entry  string
}

// openTempSignatureStream allocates the temporary destination used
// while composing a new signature, per §4.10: a fresh ODF stream is
// always a single stream; OOXML allocates a new part inside the
// signatures sub-storage.
func openTempSignatureStream(w ContainerWriter, format StorageFormat, index int) (io.WriteCloser, tempDestination, *Error) {
	dest := tempDestination{format: format}
	if format == FormatOOXML {
		dest.entry = ooxmlSignaturePartName(index)
	} else {
		dest.entry = "META-INF/documentsignatures.xml"
	}
	wc, err := w.OpenTempEntry(dest.entry)
	if err != nil {
		return nil, dest, newError(ClassIO, err)
	}
	return wc, dest, nil
}

func ooxmlSignaturePartName(index int) string {
	return "_xmlsignatures/sig" + strconv.Itoa(index) + ".xml"
}

// OpenSignatureStream resolves the final destination for a completed
// signature write: a caller-supplied stream when given, otherwise one
// opened from the root storage in the requested mode. The original
// assigned the result helper's stream field twice on the caller-stream
// branch — once when the caller stream was adopted, once more at
// function exit — which spec.md's design notes call out as redundant
// rather than corrective (see DESIGN.md). This assigns it exactly once,
// at exit, regardless of which branch is taken.
func OpenSignatureStream(w ContainerWriter, format StorageFormat, mode SignatureMode, caller io.WriteCloser) (io.WriteCloser, *Error) {
	var stream io.WriteCloser

	if caller != nil {
		stream = caller
	} else {
		entry := finalEntryName(format, mode)
		wc, err := w.OpenTempEntry(entry)
		if err != nil {
			return nil, newError(ClassIO, err)
		}
		stream = wc
	}

	return stream, nil
}

func finalEntryName(format StorageFormat, mode SignatureMode) string {
	if format == FormatOOXML {
		if mode == ModeMacro {
			return "_xmlsignatures/origin.sigs"
		}
		return "_xmlsignatures/sigs.sigs"
	}
	if mode == ModeMacro {
		return "META-INF/macrosignatures.xml"
	}
	return "META-INF/documentsignatures.xml"
}
