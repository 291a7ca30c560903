package progress

const FirestoreProgressCollection = "progress"

// Record tracks the lectures a user has completed in a course. The document
// id is the (user, course) pair, so each pair owns exactly one record.
type Record struct {
	UserID            string   `json:"userId" mapstructure:"userId"`
	CourseID          string   `json:"courseId" mapstructure:"courseId"`
	CompletedLectures []string `json:"completedLectures" mapstructure:"completedLectures"`
}

// RecordID builds the document id for a (user, course) pair.
func RecordID(userID string, courseID string) string {
	return userID + "_" + courseID
}

// MarkCompleteRequest is the parameter struct for marking a lecture complete.
type MarkCompleteRequest struct {
	CourseID  string `json:"courseId"`
	LectureID string `json:"lectureId"`
}
