package storage

import (
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// attachmentKeyPrefix is where attachment files live in the bucket
const attachmentKeyPrefix = "uploads/attachments"

// NewAttachmentKey builds a storage key for an attachment file. Keys are
// partitioned by year and month and named after a fresh UUID so that
// user-supplied file names never reach the bucket. The original file's
// extension is preserved when it is a plain suffix.
func NewAttachmentKey(fileName string, now time.Time) string {
	ext := strings.ToLower(path.Ext(fileName))
	if len(ext) > 10 || strings.ContainsAny(ext, "/\\") {
		ext = ""
	}
	return path.Join(
		attachmentKeyPrefix,
		now.Format("2006"),
		now.Format("01"),
		uuid.New().String()+ext,
	)
}
