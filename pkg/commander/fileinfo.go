package commander

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
)

// FileInfo is the metadata returned by get_file_info.
type FileInfo struct {
	Size        int64
	Created     time.Time
	Modified    time.Time
	Accessed    time.Time
	IsDirectory bool
	IsFile      bool
	Permissions string

	// Text files only.
	LineCount      int
	LastLine       int
	AppendPosition int
}

type fileInfoJSON struct {
	Size           int64           `json:"size"`
	Created        json.RawMessage `json:"created"`
	Modified       json.RawMessage `json:"modified"`
	Accessed       json.RawMessage `json:"accessed"`
	IsDirectory    bool            `json:"isDirectory"`
	IsFile         bool            `json:"isFile"`
	Permissions    json.RawMessage `json:"permissions"`
	LineCount      int             `json:"lineCount"`
	LastLine       int             `json:"lastLine"`
	AppendPosition int             `json:"appendPosition"`
}

// UnmarshalJSON implements json.Unmarshaler. Timestamps may be date strings
// in any common layout or unix epochs in seconds or milliseconds.
func (fi *FileInfo) UnmarshalJSON(b []byte) error {
	var raw fileInfoJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	out := FileInfo{
		Size:           raw.Size,
		IsDirectory:    raw.IsDirectory,
		IsFile:         raw.IsFile,
		LineCount:      raw.LineCount,
		LastLine:       raw.LastLine,
		AppendPosition: raw.AppendPosition,
	}

	var err error
	if out.Created, err = parseTimestamp(raw.Created); err != nil {
		return fmt.Errorf("created: %w", err)
	}
	if out.Modified, err = parseTimestamp(raw.Modified); err != nil {
		return fmt.Errorf("modified: %w", err)
	}
	if out.Accessed, err = parseTimestamp(raw.Accessed); err != nil {
		return fmt.Errorf("accessed: %w", err)
	}
	if out.Permissions, err = parsePermissions(raw.Permissions); err != nil {
		return fmt.Errorf("permissions: %w", err)
	}

	*fi = out
	return nil
}

func parseTimestamp(raw json.RawMessage) (time.Time, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return time.Time{}, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		epoch, err := n.Int64()
		if err != nil {
			return time.Time{}, err
		}
		// Values past 1e11 cannot be seconds for any realistic date.
		if epoch > 1e11 {
			return time.UnixMilli(epoch).UTC(), nil
		}
		return time.Unix(epoch, 0).UTC(), nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, err
	}
	if s == "" {
		return time.Time{}, nil
	}
	return dateparse.ParseIn(s, time.UTC)
}

func parsePermissions(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	var mode int64
	if err := json.Unmarshal(raw, &mode); err != nil {
		return "", err
	}
	return strconv.FormatInt(mode, 8), nil
}
