package docstore

import (
	"context"
	"io"
)

// Store is the blob collaborator holding borrower-uploaded documents
// (identity scans, payslips). The engine only ever passes opaque URLs
// around; the host uploads before submitting an application.
type Store interface {
	// Upload stores the document under the folder and returns its public URL.
	Upload(ctx context.Context, r io.Reader, folder, filename string) (string, error)
}
