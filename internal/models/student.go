package models

// Class groups students by year and branch, e.g. "TY-CSE".
type Class struct {
	ID        int64  `db:"class_id" json:"class_id"`
	ClassName string `db:"class_name" json:"class_name"`
	ClassCode string `db:"class_code" json:"class_code"`
}

// Student represents a learner registered in the college.
type Student struct {
	ID            int64  `db:"student_id" json:"student_id"`
	UserID        int64  `db:"user_id" json:"user_id"`
	RollNo        string `db:"roll_no" json:"roll_no"`
	ClassID       int64  `db:"class_id" json:"class_id"`
	AdmissionYear *int   `db:"admission_year" json:"admission_year,omitempty"`
}

// StudentDetail joins the student with the owning user and class.
type StudentDetail struct {
	Student
	Name      string  `db:"name" json:"name"`
	Email     string  `db:"email" json:"email"`
	ContactNo *string `db:"contact_no" json:"contact_no,omitempty"`
	ClassName string  `db:"class_name" json:"class_name"`
}

// StudentFilter encapsulates allowed search parameters for listing students.
type StudentFilter struct {
	ClassName string
	Search    string
	Page      int
	PageSize  int
}
