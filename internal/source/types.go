package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (snapshot, test).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
	// FileNoContent marks files known only by path; previews are unavailable.
	FileNoContent
)

// File captures metadata and (optionally) content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// HasContent reports whether the file text is available for previews.
func (f *File) HasContent() bool {
	return f != nil && f.Flags&FileNoContent == 0
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based, 0 means unknown
	Col  uint32 // 1-based
}

// IsValid reports whether the position points into a file.
func (lc LineCol) IsValid() bool {
	return lc.Line > 0
}

// Less orders positions by line, then column.
func (lc LineCol) Less(other LineCol) bool {
	if lc.Line != other.Line {
		return lc.Line < other.Line
	}
	return lc.Col < other.Col
}
