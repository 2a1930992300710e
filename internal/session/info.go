package session

import (
	"github.com/gabriel-vasile/mimetype"

	"github.com/shellman/shellman/internal/fs"
)

// EntryInfo is the detailed view of one entry for the info display.
type EntryInfo struct {
	fs.Entry
	MIME string `json:"mime,omitempty"`
}

// Info stats path and, for regular files, sniffs the MIME type from
// content. Detection failure leaves MIME empty; the rest of the info still
// displays.
func (s *Session) Info(path string) (EntryInfo, error) {
	entry, err := fs.Stat(path)
	if err != nil {
		return EntryInfo{}, err
	}
	info := EntryInfo{Entry: entry}
	if !entry.IsDir && entry.Mode.IsRegular() {
		if mt, err := mimetype.DetectFile(path); err == nil {
			info.MIME = mt.String()
		}
	}
	return info, nil
}
