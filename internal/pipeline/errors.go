package pipeline

import (
	"fmt"
	"strings"
)

// The pipeline surfaces four discriminable failure classes so the HTTP layer
// can choose different user-facing behavior for each. They are returned as
// typed errors, matched with errors.As.

// ValidationError reports a local-heuristic rejection. The uploader can fix
// the title, description, or file names and retry immediately; remote
// storage was never contacted.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("upload rejected by local checks: %s", strings.Join(e.Reasons, "; "))
}

// UploadError reports a transport or service failure while talking to the
// media store. Any asset created earlier in the same run has been destroyed;
// the caller may retry with the same files.
type UploadError struct {
	Asset string
	Err   error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %s asset: %v", e.Asset, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// ContentError reports that the AI evaluator flagged an asset above its
// category threshold. Both remote assets have been destroyed; re-uploading
// the same pair will be rejected again.
type ContentError struct {
	Asset  string
	Reason string
}

func (e *ContentError) Error() string {
	return fmt.Sprintf("content rejected: %s asset: %s", e.Asset, e.Reason)
}

// PersistError reports a failed record write after legitimate assets were
// created. Remote assets are deliberately retained: the media is valid and
// an operator must retry the persistence step, not the whole upload.
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist video record: %v", e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}
