package service

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/noah-isme/smartedu-api/internal/models"
)

// Picker chooses an index in [0, n). Tests inject a fixed picker.
type Picker interface {
	Pick(n int) int
}

type randomPicker struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomPicker returns a goroutine-safe picker seeded from the clock.
func NewRandomPicker() Picker {
	return &randomPicker{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (p *randomPicker) Pick(n int) int {
	if n <= 1 {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rnd.Intn(n)
}

var smallTalkReplies = map[models.Intent][]string{
	models.IntentGoodbye: {
		"Goodbye 👋! Have a great day ahead!",
		"Bye for now! 😊 Don't forget to study smart!",
		"See you soon! 📚 SmartEdu is always here when you need help.",
		"Take care! 🌟 Come back anytime for more info.",
		"Goodbye from SmartEdu 🤖 — wishing you success ahead!",
	},
	models.IntentHowAreYou: {
		"I'm doing great! 🤖 Ready to help you with college info. How about you?",
		"Feeling smart as always 😎! What brings you here today?",
		"All systems go! 🚀 How can I assist you today?",
		"I'm always good when students come to chat with me! 😊",
	},
	models.IntentWhoAreYou: {
		"I'm **SmartEdu**, your AI-powered college assistant chatbot. I can help you with admissions, fees, results, and more!",
		"I'm SmartEdu 🤖 — your digital academic buddy built to guide students and answer queries.",
		"I'm SmartEdu, developed to make your campus life easier and smarter! 🎓",
	},
	models.IntentAreYouBot: {
		"Yes, I'm a chatbot 🤖 — built smart to help students like you!",
		"Absolutely! I'm a virtual assistant designed to answer all your college-related queries.",
		"Yup! I'm your friendly digital assistant — SmartEdu at your service. 💬",
	},
	models.IntentCreator: {
		"I was created by the SmartEdu development team 💻 — guided by talented computer science students!",
		"SmartEdu was developed by passionate tech minds from your college. 🎓",
		"I was built with love ❤️ and code 💻 by the SmartEdu team!",
	},
	models.IntentHelp: {
		"Sure! 😊 I can help you with admissions, fees, courses, results, events, and more. What do you want to know?",
		"I'm here to assist! 🎓 You can ask about academics, hostel, placement, or any campus info.",
		"Of course! 🤖 Tell me your question — admissions, attendance, marks, or events?",
		"Always ready to help you! 💬 What's your query today?",
	},
}

type greetingKind int

const (
	greetingSimple greetingKind = iota
	greetingPolite
	greetingFriendly
	greetingIntroductory
	greetingReturn
	greetingChecking
)

// greetingKinds is checked in order; the first kind with a phrase in the message wins.
var greetingKinds = []struct {
	kind    greetingKind
	phrases []string
}{
	{greetingPolite, []string{"good morning", "good afternoon", "good evening"}},
	{greetingFriendly, []string{"what's up", "how's it going", "how are you", "how are you doing", "how's your day", "how are things", "what's new"}},
	{greetingIntroductory, []string{"who are you", "what's your name", "are you a bot", "are you real", "are you human", "who made you"}},
	{greetingReturn, []string{"nice to meet you", "glad to see you", "good to see you again", "long time no see"}},
	{greetingChecking, []string{"are you there", "you there", "can you help me", "anyone here", "are you online"}},
}

// SmallTalk answers greetings and conversational intents.
type SmallTalk struct {
	picker Picker
	now    func() time.Time
}

// NewSmallTalk builds a responder. Nil arguments fall back to a random picker and the wall clock.
func NewSmallTalk(picker Picker, now func() time.Time) *SmallTalk {
	if picker == nil {
		picker = NewRandomPicker()
	}
	if now == nil {
		now = time.Now
	}
	return &SmallTalk{picker: picker, now: now}
}

// Handles reports whether intent is conversational.
func (s *SmallTalk) Handles(intent models.Intent) bool {
	if intent == models.IntentGreet {
		return true
	}
	_, ok := smallTalkReplies[intent]
	return ok
}

// Reply returns the text for a conversational intent.
func (s *SmallTalk) Reply(intent models.Intent, msg string) string {
	if intent == models.IntentGreet {
		return s.greet(strings.ToLower(msg))
	}
	options := smallTalkReplies[intent]
	if len(options) == 0 {
		return ""
	}
	return options[s.picker.Pick(len(options))]
}

func classifyGreeting(msg string) greetingKind {
	for _, g := range greetingKinds {
		if containsAny(msg, g.phrases...) {
			return g.kind
		}
	}
	return greetingSimple
}

func (s *SmallTalk) greet(msg string) string {
	switch classifyGreeting(msg) {
	case greetingPolite:
		hour := s.now().Hour()
		switch {
		case hour < 12:
			return "Good morning! 🌅 I'm SmartEdu, your friendly college assistant. I'm here to help you with admission information, fees, hostels, placements, and more. How can I assist you today?"
		case hour < 17:
			return "Good afternoon! ☀️ I'm SmartEdu, your college information assistant. Ask me about SKN Sinhgad College's admissions, courses, fees, or anything else you'd like to know!"
		default:
			return "Good evening! 🌙 I'm SmartEdu, here to help you with college information. I can provide details about admissions, hostels, placements, and more. What would you like to know?"
		}
	case greetingFriendly:
		if strings.Contains(msg, "how are you") {
			return "I'm doing great, thanks for asking! 😊 I'm SmartEdu, your college assistant. I'm here and ready to help you with admission information for SKN Sinhgad College. What can I help you with today?"
		}
		return "Hey there! 👋 I'm SmartEdu, your college information buddy! I'm doing great and excited to help you. Want to know about admissions, fees, hostels, or placements at SKN Sinhgad College?"
	case greetingIntroductory:
		switch {
		case strings.Contains(msg, "name"):
			return "Hi! My name is SmartEdu 🤖 - your smart college assistant! I was created to help students and visitors get information about SKN Sinhgad College of Engineering. I can answer questions about admissions, courses, fees, hostels, and more. Nice to meet you!"
		case containsAny(msg, "bot", "human", "real"):
			return "Yes, I'm SmartEdu! 🤖 I'm an AI chatbot created to help you with college information. While I'm not human, I'm here 24/7 to assist you with everything about SKN Sinhgad College - admissions, courses, fees, placements, and more. How can I help you?"
		default:
			return "I'm SmartEdu! 🤖 Your smart college information assistant at SKN Sinhgad College. I'm designed to help you with admissions, courses, fees, hostels, placements, and more. I'm here to make your college journey easier!"
		}
	case greetingReturn:
		return "Welcome back! 🙌 Good to see you again! I'm SmartEdu, and I'm always here to help you with college information. Ready to assist you with admissions, fees, or anything else you need. What would you like to know?"
	case greetingChecking:
		return "Yes, I'm here! 👋 Hello! I'm SmartEdu, your college assistant, and I'm online and ready to help. I can assist you with admission information, fees, hostels, placements, or any questions about SKN Sinhgad College. How can I help you today?"
	default:
		return "Hello! 👋 I'm SmartEdu, your college information assistant. Nice to meet you! I can help you with admissions, courses, fees, hostels, placements, and more at SKN Sinhgad College. What would you like to know?"
	}
}
