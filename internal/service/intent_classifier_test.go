package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/smartedu-api/internal/models"
)

func TestIntentClassifierClassify(t *testing.T) {
	classifier := NewIntentClassifier(nil)

	cases := []struct {
		message string
		want    models.Intent
	}{
		{"bye for now", models.IntentGoodbye},
		{"bye smartedu", models.IntentGoodbye},
		{"Hello SmartEdu", models.IntentGreet},
		{"good morning", models.IntentGreet},
		{"how are you doing", models.IntentHowAreYou},
		{"who made you", models.IntentCreator},
		{"are you a robot", models.IntentAreYouBot},
		{"what can you do", models.IntentHelp},
		{"fee", models.IntentFeeQuery},
		{"show my attendance", models.IntentAttendanceQuery},
		{"upcoming workshop", models.IntentEventQuery},
		{"latest announcements", models.IntentAnnouncementQuery},
		{"mht-cet eligibility", models.IntentAdmission},
		{"cutoff for cse", models.IntentCutoff},
		{"hostel room", models.IntentHostel},
		{"placement package", models.IntentPlacement},
		{"tfws quota", models.IntentScholarship},
		{"aadhaar card needed?", models.IntentDocuments},
		{"guidance needed", models.IntentGuidance},
		{"my profile", models.IntentStudentInfo},
		{"marks", models.IntentMarksQuery},
		{"features", models.IntentHelpQuery},
		{"xyz123", models.IntentUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.message, func(t *testing.T) {
			assert.Equal(t, tc.want, classifier.Classify(tc.message))
		})
	}
}

func TestIntentClassifierFirstRuleWins(t *testing.T) {
	// "bye" and "hi" are both present; goodbye is declared first.
	classifier := NewIntentClassifier(nil)
	assert.Equal(t, models.IntentGoodbye, classifier.Classify("hi and bye"))

	// "fee" is declared before "attendance".
	assert.Equal(t, models.IntentFeeQuery, classifier.Classify("fee attendance"))
}

func TestIntentClassifierSubstringMatching(t *testing.T) {
	classifier := NewIntentClassifier(nil)
	// "this" contains "hi", so the greeting rule fires before marks.
	assert.Equal(t, models.IntentGreet, classifier.Classify("this marks"))
}

func TestIntentClassifierCustomRules(t *testing.T) {
	classifier := NewIntentClassifier([]IntentRule{{Intent: models.IntentEventQuery, Phrases: []string{"hackathon"}}})
	assert.Equal(t, models.IntentEventQuery, classifier.Classify("Any HACKATHON soon?"))
	assert.Equal(t, models.IntentUnknown, classifier.Classify("bye"))
}

func TestIntentRulesOrder(t *testing.T) {
	var order []models.Intent
	for _, rule := range IntentRules {
		order = append(order, rule.Intent)
	}
	assert.Equal(t, models.IntentGoodbye, order[0])
	assert.Equal(t, models.IntentGreet, order[6])
	assert.Equal(t, models.IntentHelpQuery, order[len(order)-1])
	assert.Len(t, order, 23)
}
