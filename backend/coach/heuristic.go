package coach

import "strings"

// Quest types understood by the scorer.
const (
	QuestOutreach    = "outreach"
	QuestCoffee      = "coffee"
	QuestFollowup    = "followup"
	QuestReciprocity = "reciprocity"
)

// HeuristicScore rates a practice answer 0-10 with keyword rules, used when
// the text-generation service is unreachable. It returns improvement tips
// when the score is low.
func HeuristicScore(questType, text, choice string) (int, []string) {
	score := 0
	var tips []string
	lower := strings.ToLower(strings.TrimSpace(text))
	choiceLower := strings.ToLower(strings.TrimSpace(choice))

	hasAny := func(keywords ...string) bool {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
		return false
	}

	switch questType {
	case QuestOutreach:
		if len(strings.Fields(lower)) >= 30 {
			score++
		}
		if hasAny("accessibility", "design", "los angeles", " la ", "ux") {
			score += 2
		}
		if hasAny("i'm", "i am", "student", "engineer", "uwaterloo", "cs") {
			score += 2
		}
		if hasAny("15", "15-min", "15 minute", "15 minutes") {
			score += 2
		}
		if hasAny("thanks", "appreciate", "understand if not", "no worries", "totally fine if not") {
			score += 3
		}
		if score < 10 {
			tips = append(tips,
				"Reference their work/location directly (e.g., \"your accessibility case study in LA\").",
				"Make a specific, time-boxed ask (e.g., 15 minutes next week).",
				"Add a respectful opt-out line.",
			)
		}
	case QuestCoffee:
		questions := splitQuestions(text)
		if n := len(questions); n >= 2 && n <= 4 {
			score += 3
		}
		for _, q := range questions {
			if strings.HasSuffix(q, "?") {
				score += 3
				break
			}
		}
		joined := strings.ToLower(strings.Join(questions, " "))
		for _, kw := range []string{"roadmap", "a/b", "experiment", "tradeoff", "stakeholder", "impact"} {
			if strings.Contains(joined, kw) {
				score += 2
				break
			}
		}
		if distinctOpeners(questions) > 1 {
			score += 2
		}
		if score < 10 {
			tips = append(tips, "Ask <=3 open-ended, product-specific questions (e.g., trade-offs, experiment design).")
		}
	case QuestFollowup:
		switch choiceLower {
		case "monday", "tuesday", "48h", "2 days", "early next week":
			score += 3
		}
		if hasAny("thanks", "great meeting", "appreciate") {
			score += 2
		}
		if score < 5 {
			tips = append(tips, "Follow up within 48-72 hours (e.g., Monday). Keep the subject clear and short.")
		}
	case QuestReciprocity:
		if hasAny("share", "resource", "intro", "connect", "notes", "feedback", "link") {
			score += 3
		}
		if len(strings.Fields(lower)) >= 10 {
			score += 2
		}
		if score < 5 {
			tips = append(tips, "Offer something concrete: relevant article, intro, or feedback summary.")
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 10 {
		score = 10
	}
	return score, tips
}

func splitQuestions(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		q := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-• "))
		if q != "" {
			out = append(out, q)
		}
	}
	return out
}

func distinctOpeners(questions []string) int {
	openers := make(map[string]struct{})
	for _, q := range questions {
		fields := strings.Fields(q)
		if len(fields) == 0 {
			openers[""] = struct{}{}
			continue
		}
		openers[strings.ToLower(fields[0])] = struct{}{}
	}
	return len(openers)
}
