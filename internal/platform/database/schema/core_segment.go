package schema

// SegmentTable represents the 'core.segment' table
type SegmentTable struct {
	Table       string
	ID          string
	OwnerID     string
	Title       string
	Description string
	VideoURL    string
	StartTime   string
	EndTime     string
	Scenes      string
	Tags        string
	IsPublic    string
	Views       string
	Likes       string
	Search      string
	CreatedAt   string
	UpdatedAt   string
}

// Segment is the schema definition for core.segment
var Segment = SegmentTable{
	Table:       "core.segment",
	ID:          "id",
	OwnerID:     "ownerid",
	Title:       "title",
	Description: "description",
	VideoURL:    "videourl",
	StartTime:   "starttime",
	EndTime:     "endtime",
	Scenes:      "scenes",
	Tags:        "tags",
	IsPublic:    "ispublic",
	Views:       "views",
	Likes:       "likes",
	Search:      "search",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names.
// The generated search vector is excluded; it is never read or written directly.
func (t SegmentTable) Columns() []string {
	return []string{
		t.ID, t.OwnerID, t.Title, t.Description, t.VideoURL,
		t.StartTime, t.EndTime, t.Scenes, t.Tags, t.IsPublic,
		t.Views, t.Likes, t.CreatedAt, t.UpdatedAt,
	}
}
