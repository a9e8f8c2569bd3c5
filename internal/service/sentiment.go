package service

import (
	"math"
	"strings"

	"github.com/noah-isme/smartedu-api/internal/models"
)

const sentimentThreshold = 0.1

// sentimentLexicon scores common chat words in [-1, 1].
var sentimentLexicon = map[string]float64{
	"good": 0.7, "great": 0.8, "excellent": 1.0, "amazing": 0.6, "awesome": 1.0,
	"nice": 0.6, "happy": 0.8, "glad": 0.5, "love": 0.5, "like": 0.2,
	"thanks": 0.2, "thank": 0.2, "helpful": 0.5, "best": 1.0, "wonderful": 1.0,
	"perfect": 1.0, "easy": 0.4, "interesting": 0.5, "excited": 0.4, "fine": 0.4,
	"bad": -0.7, "terrible": -1.0, "awful": -1.0, "horrible": -1.0, "worst": -1.0,
	"sad": -0.5, "angry": -0.5, "hate": -0.8, "poor": -0.4, "wrong": -0.5,
	"confused": -0.4, "confusing": -0.4, "difficult": -0.5, "hard": -0.3, "stressed": -0.6,
	"worried": -0.5, "upset": -0.6, "frustrated": -0.7, "frustrating": -0.7, "annoying": -0.8,
	"fail": -0.5, "failed": -0.5, "failing": -0.5, "low": -0.2, "late": -0.3,
	"problem": -0.3, "issue": -0.2, "broken": -0.4, "unable": -0.5, "disappointed": -0.75,
}

var sentimentIntensifiers = map[string]float64{
	"very": 1.3, "really": 1.3, "so": 1.3, "extremely": 1.5, "too": 1.2, "quite": 1.1,
}

var sentimentNegators = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "dont": {}, "don't": {}, "isnt": {}, "isn't": {}, "cant": {}, "can't": {},
}

// SentimentAnalyzer scores message polarity from a word lexicon. A negator
// before a scored word flips and halves it; an intensifier scales it.
type SentimentAnalyzer struct{}

// NewSentimentAnalyzer constructs a SentimentAnalyzer.
func NewSentimentAnalyzer() *SentimentAnalyzer {
	return &SentimentAnalyzer{}
}

// Analyze returns the mean polarity of the scored words and its label.
func (a *SentimentAnalyzer) Analyze(text string) models.Sentiment {
	words := strings.Fields(strings.ToLower(text))
	var (
		sum    float64
		scored int
	)
	for i, raw := range words {
		word := strings.Trim(raw, ".,!?;:\"()")
		score, ok := sentimentLexicon[word]
		if !ok {
			continue
		}
		if i > 0 {
			prev := strings.Trim(words[i-1], ".,!?;:\"()")
			if factor, ok := sentimentIntensifiers[prev]; ok {
				score *= factor
				if i > 1 {
					prev = strings.Trim(words[i-2], ".,!?;:\"()")
				}
			}
			if _, ok := sentimentNegators[prev]; ok {
				score *= -0.5
			}
		}
		sum += score
		scored++
	}

	var polarity float64
	if scored > 0 {
		polarity = math.Max(-1, math.Min(1, sum/float64(scored)))
	}
	return models.Sentiment{Polarity: polarity, Label: sentimentLabel(polarity)}
}

func sentimentLabel(polarity float64) string {
	switch {
	case polarity > sentimentThreshold:
		return models.SentimentPositive
	case polarity < -sentimentThreshold:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}
