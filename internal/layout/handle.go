package layout

// Handle is a revocable, non-owning reference to a Document. Commands
// hold handles instead of document pointers: the hosting session may
// close the document while dormant commands remain in history, after
// which every handle stops resolving and those commands degrade to
// silent no-ops.
type Handle struct {
	doc *Document
}

// Resolve returns the live document, or false once the document has
// been closed (or for the zero Handle).
func (h Handle) Resolve() (*Document, bool) {
	if h.doc == nil || h.doc.closed.Load() {
		return nil, false
	}
	return h.doc, true
}

// IsZero reports whether the handle was never attached to a document.
func (h Handle) IsZero() bool { return h.doc == nil }
