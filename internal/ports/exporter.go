package ports

import (
	"io"

	"cdrlink/internal/domain"
)

// Exporter renders a view into a printable document
type Exporter interface {
	// Export writes a document with a title, the summary block and the view
	// scaled to the page. Native-fit sizes the page to the content instead.
	Export(w io.Writer, title string, view domain.ViewModel, mode domain.PageMode) error

	// Extension is the file suffix of produced documents, e.g. ".svg"
	Extension() string
}
