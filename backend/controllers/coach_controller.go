package controllers

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"

	"netquest/backend/coach"
	"netquest/backend/config"
	"netquest/backend/game"
	"netquest/backend/storage"

	"github.com/gofiber/fiber/v2"
)

const fallbackScenario = "You're a student reaching out to a mentor about their recent project."

// CoachController serves the practice-quest and chat endpoints backed by the
// Cortex service, with local heuristics when the service is unreachable.
type CoachController struct {
	Engine *game.Game
	Store  *storage.SnapshotStore
	Client *coach.Client
	Cfg    *config.Config
	Logger *log.Logger
	Mu     *sync.Mutex
}

func NewCoachController(engine *game.Game, store *storage.SnapshotStore, client *coach.Client, cfg *config.Config, logger *log.Logger, mu *sync.Mutex) *CoachController {
	return &CoachController{Engine: engine, Store: store, Client: client, Cfg: cfg, Logger: logger, Mu: mu}
}

func (cc *CoachController) persist(u *game.User) {
	if cc.Store == nil {
		return
	}
	if err := cc.Store.SaveUser(u.Snapshot()); err != nil {
		cc.Logger.Printf("save player %s: %v", u.Username, err)
	}
}

// QuestStart godoc
// @Summary Start a practice quest
// @Description Generates a short practice scenario for the requested quest type
// @Tags coach
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body map[string]interface{} true "Quest type"
// @Success 200 {object} map[string]interface{}
// @Router /quest/start [post]
func (cc *CoachController) QuestStart(c *fiber.Ctx) error {
	var input struct {
		Type string `json:"type"`
	}
	c.BodyParser(&input)
	if input.Type == "" {
		input.Type = coach.QuestOutreach
	}

	prompt := "Generate a realistic, concise 2-3 sentence practice scenario for student networking. " +
		"Return JSON only as: {\"prompt\":\"...\"}.\n\n" +
		fmt.Sprintf("TASK=%s. Audience: student networking practice.", input.Type)

	scenario := fallbackScenario
	source := "local"
	if content, err := cc.Client.Complete(c.UserContext(), prompt); err == nil {
		var obj struct {
			Prompt string `json:"prompt"`
		}
		if strings.HasPrefix(strings.TrimSpace(content), "{") {
			json.Unmarshal([]byte(content), &obj)
		}
		if obj.Prompt != "" {
			scenario = obj.Prompt
		}
		source = "cortex"
	} else {
		cc.Logger.Printf("quest start via cortex: %v", err)
	}

	return c.JSON(fiber.Map{
		"type":     input.Type,
		"scenario": fiber.Map{"prompt": scenario},
		"source":   source,
	})
}

// QuestScore godoc
// @Summary Score a practice answer
// @Description Scores the answer 0-10, awards the score as bonus points and returns tips
// @Tags coach
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body map[string]interface{} true "Quest type, answer text and choice"
// @Success 200 {object} map[string]interface{}
// @Router /quest/score [post]
func (cc *CoachController) QuestScore(c *fiber.Ctx) error {
	var input struct {
		Type   string `json:"type"`
		Text   string `json:"text"`
		Choice string `json:"choice"`
	}
	c.BodyParser(&input)
	if input.Type == "" {
		input.Type = coach.QuestOutreach
	}

	rubric := "Return JSON exactly: {\"score\": <0-10>, \"tips\": [\"tip1\",\"tip2\"]}.\n" +
		"Rubrics:\n" +
		"- outreach: personalization(2), clarity(2), specific ask(3), respectful tone/opt-out(3).\n" +
		"- coffee: relevance(3), open-ended(3), depth(2), variety(2).\n" +
		"- followup: timing(3), subject clarity(2).\n" +
		"- reciprocity: actionable(3), appropriate(2).\n"
	prompt := fmt.Sprintf("You are a concise networking coach. Reply with compact JSON only.\n\nTask=%s\nText:\n%s\nChoice:%s\n%s",
		input.Type, input.Text, input.Choice, rubric)

	score := 0
	var tips []string
	source := "cortex"
	content, err := cc.Client.Complete(c.UserContext(), prompt)
	if err == nil && strings.HasPrefix(strings.TrimSpace(content), "{") {
		var obj struct {
			Score int      `json:"score"`
			Tips  []string `json:"tips"`
		}
		if jsonErr := json.Unmarshal([]byte(content), &obj); jsonErr == nil {
			score = obj.Score
			tips = obj.Tips
			if len(tips) > 2 {
				tips = tips[:2]
			}
		} else {
			err = jsonErr
		}
	}
	if err != nil {
		cc.Logger.Printf("quest score via cortex: %v", err)
		source = "local"
		score, tips = coach.HeuristicScore(input.Type, input.Text, input.Choice)
		if len(tips) == 0 {
			tips = []string{
				"Be specific about why you're reaching out.",
				"Make a 15-min time-boxed ask.",
			}
		}
	}
	if score < 0 {
		score = 0
	}
	if score > 10 {
		score = 10
	}

	cc.Mu.Lock()
	defer cc.Mu.Unlock()

	username, _ := c.Locals("username").(string)
	u := cc.Engine.RegisterUser(username)
	cc.Engine.AwardBonusPoints(u, score)
	cc.persist(u)

	return c.JSON(fiber.Map{
		"earned":      score,
		"tips":        tips,
		"leaderboard": cc.Engine.Leaderboard(10),
		"points":      u.Points,
		"source":      source,
	})
}

// QuestRewrite godoc
// @Summary Rewrite an outreach message
// @Description Rewrites the message into a few tight, friendly sentences
// @Tags coach
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body map[string]interface{} true "Message text"
// @Success 200 {object} map[string]interface{}
// @Router /quest/rewrite [post]
func (cc *CoachController) QuestRewrite(c *fiber.Ctx) error {
	var input struct {
		Text string `json:"text"`
	}
	c.BodyParser(&input)
	text := strings.TrimSpace(input.Text)

	prompt := "Rewrite the message into 2-4 tight, friendly sentences. " +
		"Keep it specific and include a 15-minute time-boxed ask. " +
		"Return JSON exactly as {\"text\":\"...\"}.\n\n" + text

	rewritten := text
	source := "local"
	if content, err := cc.Client.Complete(c.UserContext(), prompt); err == nil {
		trimmed := strings.TrimSpace(content)
		if strings.HasPrefix(trimmed, "{") {
			var obj struct {
				Text string `json:"text"`
			}
			json.Unmarshal([]byte(trimmed), &obj)
			trimmed = strings.TrimSpace(obj.Text)
		}
		if trimmed != "" {
			rewritten = trimmed
		}
		source = "cortex"
	} else {
		cc.Logger.Printf("quest rewrite via cortex: %v", err)
	}

	return c.JSON(fiber.Map{
		"text":   rewritten,
		"source": source,
	})
}

// Chat godoc
// @Summary Ask the networking coach
// @Description Free-form coaching question, answered in a few concise sentences
// @Tags coach
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body map[string]interface{} true "Question text"
// @Success 200 {object} map[string]interface{}
// @Router /coach/chat [post]
func (cc *CoachController) Chat(c *fiber.Ctx) error {
	var input struct {
		Text string `json:"text"`
	}
	c.BodyParser(&input)

	prompt := "You are a practical networking coach. Answer in 2-4 concise sentences with concrete examples. Avoid fluff.\n\n" +
		strings.TrimSpace(input.Text)

	reply, err := cc.Client.Complete(c.UserContext(), prompt)
	source := "cortex"
	if err != nil {
		cc.Logger.Printf("coach chat via cortex: %v", err)
		reply = "The coach is busy, try again shortly. Tip: include a concrete detail and a 15-min ask."
		source = "local"
	} else if reply == "" {
		reply = "Try again with one specific situation."
	}

	return c.JSON(fiber.Map{
		"reply":  reply,
		"source": source,
	})
}

// Health godoc
// @Summary Cortex connectivity check
// @Description Sends a tiny prompt to verify the text-generation service is reachable
// @Tags coach
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /coach/health [get]
func (cc *CoachController) Health(c *fiber.Ctx) error {
	out, err := cc.Client.Complete(c.UserContext(), "Reply with the single word: OK.")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"ok":    false,
			"error": err.Error(),
		})
	}
	if len(out) > 80 {
		out = out[:80]
	}
	return c.JSON(fiber.Map{
		"ok":     true,
		"sample": out,
	})
}
