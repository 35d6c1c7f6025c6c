package xmlsig

import (
	"fmt"

	"github.com/go-ets/etsdsig/xmlsig/sax"
	"github.com/go-ets/etsdsig/xmlsig/serialize"
)

// DocumentSignatureManager is the Core B orchestrator §4.14 describes: it
// owns a Store of signature records and coordinates the router (format
// detection, temp-stream allocation), the serializers, and a SAX chain
// Controller to drive both writing new signatures and reading/verifying
// existing ones. Each document instance owns its own manager; there is
// no process-wide registry.
type DocumentSignatureManager struct {
	store  *Store
	reader ContainerReader
	writer ContainerWriter
	format StorageFormat
	cert   CertificateSource
	mode   SignatureMode

	controller *sax.Controller
}

// NewDocumentSignatureManager returns a manager bound to the given
// container surfaces and signing certificate. reader may be nil for a
// document being created fresh, in which case the format defaults to
// FormatODF; writer may be nil for a read-only (verify-only) manager.
func NewDocumentSignatureManager(reader ContainerReader, writer ContainerWriter, cert CertificateSource, mode SignatureMode) *DocumentSignatureManager {
	format := FormatODF
	if reader != nil {
		format = DetectFormat(reader)
	}
	return &DocumentSignatureManager{
		store:  NewStore(),
		reader: reader,
		writer: writer,
		format: format,
		cert:   cert,
		mode:   mode,
	}
}

// Format reports which wire format this manager targets.
func (m *DocumentSignatureManager) Format() StorageFormat { return m.format }

// Read returns the current set of signature records, per §4.14's Read
// operation.
func (m *DocumentSignatureManager) Read() []SignatureInformation {
	return m.store.Read()
}

// Remove deletes the record at index i, per §4.14's Remove operation.
func (m *DocumentSignatureManager) Remove(i int) *Error {
	return m.store.Remove(i)
}

// Add signs and serializes a new signature over rec's references and
// commits it to the container, per §4.14's Add operation: it fills in
// the certificate-derived fields, invokes the signing callback, renders
// the format-appropriate XML-DSig document, writes it to a freshly
// allocated temporary entry, and commits that entry before registering
// the record in the Store. Any failure on the write/commit path leaves
// the container unchanged — the temporary entry is discarded, never
// partially promoted, per §7.
func (m *DocumentSignatureManager) Add(rec SignatureInformation, externals []serialize.ExternalReference) (int, *Error) {
	if m.cert == nil {
		return 0, newError(ClassCrypto, ErrCertificateMissing)
	}
	if m.cert.SerialNumber() == "" {
		return 0, newError(ClassCrypto, ErrSerialNumberEmpty)
	}

	rec.X509IssuerName = m.cert.IssuerName()
	rec.X509SerialNumber = m.cert.SerialNumber()
	rec.X509Certificate = m.cert.CertificateBase64()
	rec.CertDigest = m.cert.DigestBase64()

	sigValue, err := m.cert.Sign([]byte(rec.DigestValue))
	if err != nil {
		return 0, newError(ClassCrypto, fmt.Errorf("%w: %v", ErrSigningUnavailable, err))
	}
	rec.SignatureValue = sigValue

	payload, serErr := m.serialize(rec, externals)
	if serErr != nil {
		return 0, newError(ClassStructural, serErr)
	}

	if m.writer == nil {
		return 0, newError(ClassIO, ErrStreamUnavailable)
	}

	wc, dest, openErr := openTempSignatureStream(m.writer, m.format, m.store.Len())
	if openErr != nil {
		return 0, openErr
	}
	if _, werr := wc.Write(payload); werr != nil {
		_ = m.writer.Discard(wc)
		return 0, newError(ClassIO, fmt.Errorf("write signature stream: %w", werr))
	}
	if cerr := m.writer.CommitEntry(dest.entry, wc); cerr != nil {
		_ = m.writer.Discard(wc)
		return 0, newError(ClassIO, fmt.Errorf("%w: %v", ErrCommitFailed, cerr))
	}

	return m.store.Add(rec), nil
}

func (m *DocumentSignatureManager) serialize(rec SignatureInformation, externals []serialize.ExternalReference) ([]byte, error) {
	if m.format == FormatOOXML {
		return serialize.OOXML(rec, externals)
	}
	return serialize.ODF(rec)
}

// VerifyAll is the reader/verifier driver §4.14 describes: it opens the
// manager's format-appropriate signature stream, drives a caller-supplied
// parser (the actual XML tokenizer is out of scope, per §1) through a
// SAX chain Controller collecting Signature element boundaries, then
// replaces the Store's record set wholesale with the signatures found,
// invoking verify once per signature and correlating the resulting
// SecurityStatus back onto the newly registered record via
// Store.UpdateStatus, matching the original's asynchronous
// signatureVerified(id, status) callback contract. EndMission runs on
// every exit path so a canceled or failed pass never leaves the chain
// engaged.
func (m *DocumentSignatureManager) VerifyAll(
	parse func(entry string, sink sax.Stage) error,
	verify func(rec SignatureInformation) SecurityStatus,
) *Error {
	if m.reader == nil {
		return newError(ClassIO, ErrStreamUnavailable)
	}

	var pending []SignatureInformation
	var current *SignatureInformation

	collector := sax.NewSink(func(e sax.Event) {
		switch e.Kind {
		case sax.StartElement:
			if e.Name == "Signature" {
				rec := SignatureInformation{}
				for _, a := range e.Attrs {
					if a.Name == "Id" {
						rec.SignatureId = a.Value
					}
				}
				current = &rec
			}
		case sax.EndElement:
			if e.Name == "Signature" && current != nil {
				pending = append(pending, *current)
				current = nil
			}
		}
	})

	prev := sax.NewSink(nil)
	controller := sax.NewController(prev, collector, func() (*sax.EventKeeper, error) {
		return sax.NewEventKeeper(), nil
	})
	m.controller = controller
	defer func() {
		controller.EndMission()
		m.controller = nil
	}()

	if err := controller.EngageCollecting(true); err != nil {
		return newError(ClassStructural, err)
	}

	entry := finalEntryName(m.format, m.mode)
	if err := parse(entry, prev); err != nil {
		return newError(ClassStructural, fmt.Errorf("%w: %v", ErrMalformedSignature, err))
	}

	if err := controller.EngageCollecting(false); err != nil {
		return newError(ClassStructural, err)
	}

	m.store.Replace(nil)
	for _, rec := range pending {
		status := StatusNotValidated
		if verify != nil {
			status = verify(rec)
		}
		id := m.store.Add(rec)
		if uerr := m.store.UpdateStatus(id, status); uerr != nil {
			return uerr
		}
	}
	return nil
}
