// Package xmlsig implements a document-signature manager that creates,
// verifies, enumerates, and removes XML-DSig signatures over container
// documents in two wire formats: an ODF-style flat signature stream and
// an OOXML-style signature storage with relationship bookkeeping. A
// streaming SAX pipeline (package xmlsig/sax) dynamically splices an
// element-buffering stage into the event chain during reference
// collection; package xmlsig/serialize emits the wire formats themselves.
package xmlsig
