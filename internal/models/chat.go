package models

import "time"

// Intent is the symbolic label the keyword classifier assigns to a message.
type Intent string

const (
	IntentGoodbye           Intent = "goodbye"
	IntentHowAreYou         Intent = "ask_howareyou"
	IntentWhoAreYou         Intent = "ask_whoareyou"
	IntentAreYouBot         Intent = "ask_areyoubot"
	IntentCreator           Intent = "ask_creator"
	IntentHelp              Intent = "ask_help"
	IntentGreet             Intent = "greet"
	IntentFeeQuery          Intent = "fee_query"
	IntentAttendanceQuery   Intent = "attendance_query"
	IntentEventQuery        Intent = "event_query"
	IntentAnnouncementQuery Intent = "announcement_query"
	IntentAdmission         Intent = "ask_admission"
	IntentCutoff            Intent = "ask_cutoff"
	IntentCollegeInfo       Intent = "ask_college_info"
	IntentHostel            Intent = "ask_hostel"
	IntentTransport         Intent = "ask_transport"
	IntentPlacement         Intent = "ask_placement"
	IntentScholarship       Intent = "ask_scholarship"
	IntentDocuments         Intent = "ask_documents"
	IntentGuidance          Intent = "ask_guidance"
	IntentMarksQuery        Intent = "marks_query"
	IntentHelpQuery         Intent = "help_query"
	IntentStudentInfo       Intent = "student_info"
	IntentUnknown           Intent = "unknown"
)

// AdminScoped reports whether the intent reads per-student records that an
// admin may narrow with filters.
func (i Intent) AdminScoped() bool {
	return i == IntentMarksQuery || i == IntentFeeQuery || i == IntentAttendanceQuery
}

// AdminFilters narrows an admin query to a student, class, roll or name.
type AdminFilters struct {
	ClassFilter     string `json:"class_filter,omitempty"`
	RollFilter      string `json:"roll_filter,omitempty"`
	NameFilter      string `json:"name_filter,omitempty"`
	TargetStudentID *int64 `json:"target_student_id,omitempty"`
}

// Reply is the composed answer to a chatbot message. Data is the structured
// payload behind Text, an empty object when there is none.
type Reply struct {
	Intent     Intent      `json:"intent"`
	Text       string      `json:"response"`
	Confidence float64     `json:"confidence"`
	Data       interface{} `json:"data"`
}

// Sentiment labels.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Sentiment is the polarity score of a message in [-1, 1] with its label.
type Sentiment struct {
	Polarity float64 `json:"polarity"`
	Label    string  `json:"sentiment"`
}

// ChatLogEntry is the append-only audit row written for every /chat exchange.
type ChatLogEntry struct {
	ID                  int64     `db:"id" json:"id"`
	UserID              *int64    `db:"user_id" json:"user_id"`
	Message             string    `db:"message" json:"message"`
	Response            string    `db:"response" json:"response"`
	Intent              string    `db:"intent" json:"intent"`
	Confidence          float64   `db:"confidence" json:"confidence"`
	SentimentPolarity   float64   `db:"sentiment_polarity" json:"sentiment_polarity"`
	SentimentLabel      string    `db:"sentiment_label" json:"sentiment_label"`
	HasEmpatheticPrefix bool      `db:"has_empathetic_prefix" json:"has_empathetic_prefix"`
	Timestamp           time.Time `db:"timestamp" json:"timestamp"`
}

// TableColumn describes one column of a chat table.
type TableColumn struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Table is the role-based tabular payload attached to /chat replies.
type Table struct {
	Title   string              `json:"title"`
	Columns []TableColumn       `json:"columns"`
	Rows    []map[string]string `json:"rows"`
}
