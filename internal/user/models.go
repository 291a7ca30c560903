package user

const FirestoreUsersCollection = "users"

// User is the local projection of an identity-provider account. It is created,
// updated and deleted only by identity notifications; EnrolledCourses is
// mutated only by the purchase reconciler.
type User struct {
	ID              string   `json:"id" mapstructure:"id"`
	Email           string   `json:"email" mapstructure:"email"`
	Name            string   `json:"name" mapstructure:"name"`
	ImageURL        string   `json:"imageUrl" mapstructure:"imageUrl"`
	EnrolledCourses []string `json:"enrolledCourses" mapstructure:"enrolledCourses"`
}

// Update carries the fields of a partial profile update. Nil fields were
// absent from the notification payload and are left untouched.
type Update struct {
	Email    *string
	Name     *string
	ImageURL *string
}
