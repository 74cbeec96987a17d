package commander

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Endpoint names under /api/commander/.
const (
	EndpointReadFile        = "read_file"
	EndpointWriteFile       = "write_file"
	EndpointListDirectory   = "list_directory"
	EndpointSearchFiles     = "search_files"
	EndpointSearchCode      = "search_code"
	EndpointCreateDirectory = "create_directory"
	EndpointGetFileInfo     = "get_file_info"
	EndpointEditBlock       = "edit_block"
)

// ReadFileRequest is the body of read_file.
type ReadFileRequest struct {
	Path   string `json:"path"`
	IsURL  bool   `json:"isUrl,omitempty"`
	Offset int    `json:"offset,omitempty"`
	Length int    `json:"length,omitempty"`
}

// WriteMode selects how write_file treats existing content.
type WriteMode string

const (
	WriteModeRewrite WriteMode = "rewrite"
	WriteModeAppend  WriteMode = "append"
)

// WriteFileRequest is the body of write_file.
type WriteFileRequest struct {
	Path    string    `json:"path"`
	Content string    `json:"content"`
	Mode    WriteMode `json:"mode,omitempty"`
}

// ListDirectoryRequest is the body of list_directory.
type ListDirectoryRequest struct {
	Path string `json:"path"`
}

// SearchFilesRequest is the body of search_files. TimeoutMs is a hint for
// the server; the client enforces no timeout of its own beyond Config.Timeout.
type SearchFilesRequest struct {
	Path      string `json:"path"`
	Pattern   string `json:"pattern"`
	TimeoutMs int    `json:"timeoutMs,omitempty"`
}

// SearchCodeRequest is the body of search_code.
type SearchCodeRequest struct {
	Path          string `json:"path"`
	Pattern       string `json:"pattern"`
	FilePattern   string `json:"filePattern,omitempty"`
	IgnoreCase    bool   `json:"ignoreCase,omitempty"`
	MaxResults    int    `json:"maxResults,omitempty"`
	IncludeHidden bool   `json:"includeHidden,omitempty"`
	ContextLines  int    `json:"contextLines,omitempty"`
	TimeoutMs     int    `json:"timeoutMs,omitempty"`
}

// CreateDirectoryRequest is the body of create_directory.
type CreateDirectoryRequest struct {
	Path string `json:"path"`
}

// GetFileInfoRequest is the body of get_file_info.
type GetFileInfoRequest struct {
	Path string `json:"path"`
}

// EditBlockRequest is the body of edit_block. Unlike the other endpoints
// its path field is named file_path.
type EditBlockRequest struct {
	FilePath             string `json:"file_path"`
	OldString            string `json:"old_string"`
	NewString            string `json:"new_string"`
	ExpectedReplacements int    `json:"expected_replacements,omitempty"`
}

// CodeMatch is one hit returned by search_code.
type CodeMatch struct {
	File  string `json:"file"`
	Line  int    `json:"line"`
	Match string `json:"match"`
}

// Message is the acknowledgement returned by mutating endpoints. It decodes
// a JSON string, the "message" field of an object, or otherwise keeps the
// raw JSON text.
type Message string

// UnmarshalJSON implements json.Unmarshaler.
func (m *Message) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*m = Message(s)
		return nil
	}

	var obj struct {
		Message *string `json:"message"`
	}
	if err := json.Unmarshal(b, &obj); err == nil && obj.Message != nil {
		*m = Message(*obj.Message)
		return nil
	}

	*m = Message(b)
	return nil
}

// DirEntry is one element of a list_directory result: either a preformatted
// string or a {name, type} object.
type DirEntry struct {
	Raw  string
	Name string
	Type string

	structured bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *DirEntry) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*e = DirEntry{Raw: s}
		return nil
	}

	var obj struct {
		Name string `json:"name"`
		Type string `json:"type"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("directory entry must be a string or an object: %w", err)
	}
	*e = DirEntry{Name: obj.Name, Type: obj.Type, structured: true}
	return nil
}

// String renders the entry as "[TYPE] name", with the type upper-cased and
// defaulting to FILE. String entries are returned unchanged.
func (e DirEntry) String() string {
	if !e.structured {
		return e.Raw
	}
	typ := strings.ToUpper(e.Type)
	if typ == "" {
		typ = "FILE"
	}
	return fmt.Sprintf("[%s] %s", typ, e.Name)
}

// fileContent is the payload of read_file: a bare string or an object
// carrying it under "content".
type fileContent string

func (c *fileContent) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*c = fileContent(s)
		return nil
	}

	var obj struct {
		Content *string `json:"content"`
	}
	if err := json.Unmarshal(b, &obj); err != nil || obj.Content == nil {
		return fmt.Errorf("file content must be a string")
	}
	*c = fileContent(*obj.Content)
	return nil
}
