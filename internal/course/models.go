package course

const FirestoreCoursesCollection = "courses"

// Lecture is a single playable unit inside a chapter. URL is blanked on read
// paths unless the lecture is preview-free or the caller is entitled.
type Lecture struct {
	ID              string `json:"id" mapstructure:"id"`
	Order           int    `json:"order" mapstructure:"order"`
	Title           string `json:"title" mapstructure:"title"`
	URL             string `json:"url" mapstructure:"url"`
	DurationMinutes int    `json:"durationMinutes" mapstructure:"durationMinutes"`
	IsPreviewFree   bool   `json:"isPreviewFree" mapstructure:"isPreviewFree"`
}

// Chapter is an ordered group of lectures within a course.
type Chapter struct {
	ID       string    `json:"id" mapstructure:"id"`
	Order    int       `json:"order" mapstructure:"order"`
	Title    string    `json:"title" mapstructure:"title"`
	Lectures []Lecture `json:"lectures" mapstructure:"lectures"`
}

// Rating is a single user's rating of a course. At most one entry exists per
// user; re-rating replaces the value.
type Rating struct {
	UserID string `json:"userId" mapstructure:"userId"`
	Value  int    `json:"value" mapstructure:"value"`
}

type Course struct {
	ID               string    `json:"id" mapstructure:"id"`
	EducatorID       string    `json:"educatorId" mapstructure:"educatorId"`
	Title            string    `json:"title" mapstructure:"title"`
	Price            float64   `json:"price" mapstructure:"price"`
	DiscountPercent  int       `json:"discountPercent" mapstructure:"discountPercent"`
	IsPublished      bool      `json:"isPublished" mapstructure:"isPublished"`
	Content          []Chapter `json:"content" mapstructure:"content"`
	EnrolledStudents []string  `json:"enrolledStudents" mapstructure:"enrolledStudents"`
	Ratings          []Rating  `json:"ratings" mapstructure:"ratings"`
}

// Normalize replaces nil sequences with empty ones so downstream aggregation
// never needs existence guards. Every decode path calls this before the course
// is handed out.
func (c *Course) Normalize() {
	if c.Content == nil {
		c.Content = []Chapter{}
	}
	for i := range c.Content {
		if c.Content[i].Lectures == nil {
			c.Content[i].Lectures = []Lecture{}
		}
	}
	if c.EnrolledStudents == nil {
		c.EnrolledStudents = []string{}
	}
	if c.Ratings == nil {
		c.Ratings = []Rating{}
	}
}

// GetCourseRequest is the parameter struct for course reads.
type GetCourseRequest struct {
	CourseID string `json:"courseID"`
}
