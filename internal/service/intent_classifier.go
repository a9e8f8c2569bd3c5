package service

import (
	"strings"

	"github.com/noah-isme/smartedu-api/internal/models"
)

// IntentRule pairs an intent with the phrases that select it. A rule matches
// when any phrase occurs in the lowercased message.
type IntentRule struct {
	Intent  models.Intent
	Phrases []string
}

// Matches reports whether msg, already lowercased, contains one of the rule phrases.
func (r IntentRule) Matches(msg string) bool {
	for _, phrase := range r.Phrases {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}

// IntentRules is evaluated top to bottom and the first match wins, so farewells
// and small talk are listed ahead of the greeting and data intents.
var IntentRules = []IntentRule{
	{models.IntentGoodbye, []string{"bye", "goodbye", "see you later", "catch you later", "talk to you soon", "take care", "see ya", "good night", "bye smartedu", "thanks bye", "ok bye", "bye for now"}},
	{models.IntentHowAreYou, []string{"how are you", "how are you doing", "how's it going", "how's your day", "how have you been", "what's up smartedu", "are you fine", "you good"}},
	{models.IntentWhoAreYou, []string{"who are you", "what are you", "tell me about yourself", "what's your name", "introduce yourself", "are you smartedu", "who is smartedu", "what is smartedu"}},
	{models.IntentAreYouBot, []string{"are you a bot", "are you a robot", "are you real", "are you human", "are you alive", "do you have feelings", "are you ai", "are you chatbot"}},
	{models.IntentCreator, []string{"who made you", "who created you", "who developed you", "who built you", "who designed you", "tell me your developer name", "who is your owner"}},
	{models.IntentHelp, []string{"can you help me", "i need help", "please help", "what can you do", "what services do you provide", "how can you help me", "help me smartedu", "anyone here", "are you there", "are you online", "smartedu can you assist me"}},
	{models.IntentGreet, []string{"hi", "hello", "hey", "heya", "yo", "hola", "namaste", "good morning", "good afternoon", "good evening", "hello there", "hi bot", "hi smartedu", "hello smartedu", "hey smartedu", "smartedu are you there"}},
	{models.IntentFeeQuery, []string{"fee", "fees", "payment", "due", "balance", "show my fees", "fee details", "fee status"}},
	{models.IntentAttendanceQuery, []string{"attendance", "present", "absent", "percentage", "attend", "show my attendance", "attendance details"}},
	{models.IntentEventQuery, []string{"event", "events", "upcoming", "schedule", "seminar", "workshop", "fest", "summit", "show events", "list events"}},
	{models.IntentAnnouncementQuery, []string{"announcement", "announcements", "notification", "notifications", "show announcements"}},
	{models.IntentAdmission, []string{"admission", "admit", "apply", "application", "eligibility", "entrance", "mht-cet", "jee", "seat", "intake"}},
	{models.IntentCutoff, []string{"cutoff", "merit", "rank", "percentile"}},
	{models.IntentCollegeInfo, []string{"college", "campus", "about", "info", "information", "skn", "sinhgad", "approved", "affiliated", "established"}},
	{models.IntentHostel, []string{"hostel", "accommodation", "boarding", "room", "mess", "lodging"}},
	{models.IntentTransport, []string{"transport", "bus", "vehicle", "commute", "travel"}},
	{models.IntentPlacement, []string{"placement", "recruiter", "package", "salary", "company", "career"}},
	{models.IntentScholarship, []string{"scholarship", "financial aid", "tfws", "ebc", "fee waiver"}},
	{models.IntentDocuments, []string{"document", "certificate", "marksheet", "id proof", "aadhaar", "caste"}},
	{models.IntentGuidance, []string{"guidance", "suggest", "which branch", "best branch", "change branch"}},
	{models.IntentStudentInfo, []string{"profile", "who am i", "student id", "roll number", "department", "class"}},
	{models.IntentMarksQuery, []string{"mark", "marks", "score", "result", "grade", "academic", "performance"}},
	{models.IntentHelpQuery, []string{"help", "what can you do", "features", "how to use", "assistance"}},
}

// KeywordConfidence is reported for every keyword classification.
const KeywordConfidence = 1.0

// IntentClassifier maps a free-text message to exactly one intent.
type IntentClassifier struct {
	rules []IntentRule
}

// NewIntentClassifier builds a classifier over rules, defaulting to IntentRules.
func NewIntentClassifier(rules []IntentRule) *IntentClassifier {
	if len(rules) == 0 {
		rules = IntentRules
	}
	return &IntentClassifier{rules: rules}
}

// Classify returns the intent of the first matching rule, or unknown.
func (c *IntentClassifier) Classify(message string) models.Intent {
	msg := strings.ToLower(message)
	for _, rule := range c.rules {
		if rule.Matches(msg) {
			return rule.Intent
		}
	}
	return models.IntentUnknown
}
