package segmentModel

// Segment is a contiguous slice of one material's extracted text, the unit
// of storage and retrieval. Scope columns are denormalized onto every
// segment so retrieval can filter without joining back to course records.
type Segment struct {
	MaterialID   int64  `json:"material_id"`
	CourseID     int64  `json:"course_id"`
	DepartmentID int64  `json:"department_id"`
	ChunkIndex   int    `json:"chunk_index"`
	Text         string `json:"chunk_text"`
}

// SegmentVector pairs a segment with its embedding. Segments and vectors are
// created together during ingestion and never mutated afterwards.
type SegmentVector struct {
	Segment
	Embedding []float32 `json:"embedding_vector"`
}

// Scope narrows a retrieval to one department. The zero value searches the
// whole store.
type Scope struct {
	DepartmentID int64
}

func (s Scope) IsZero() bool {
	return s.DepartmentID == 0
}

// Matches reports whether a segment participates in a scoped retrieval.
func (s Scope) Matches(seg Segment) bool {
	return s.IsZero() || seg.DepartmentID == s.DepartmentID
}

// RankedSegment is one retrieval hit handed to the generation collaborator.
type RankedSegment struct {
	Text       string  `json:"text"`
	Similarity float64 `json:"similarity"`
	MaterialID int64   `json:"material_id"`
	CourseID   int64   `json:"course_id"`
}

type DocType string

var (
	PDF  DocType = "PDF"
	DOCX DocType = "DOCX"
	TXT  DocType = "TXT"
	ERR  DocType = "ERROR"
)
