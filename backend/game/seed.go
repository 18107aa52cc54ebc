package game

// DefaultDailyTemplates returns the stock daily task pool.
func DefaultDailyTemplates() []TaskTemplate {
	return []TaskTemplate{
		{Description: "Write a 30-second elevator pitch using the chat coach.", Points: 5},
		{Description: "Send a personalized intro message to a mentor or peer.", Points: 5},
		{Description: "Review a recommended article and post one insight.", Points: 4},
		{Description: "Connect with two alumni or classmates in your field.", Points: 6},
	}
}

// DefaultWeeklyTemplates returns the stock weekly task pool.
func DefaultWeeklyTemplates() []TaskTemplate {
	return []TaskTemplate{
		{Description: "Attend a recommended networking event and share a takeaway.", Points: 12},
		{Description: "Complete a mock coffee chat session in Practice Mode.", Points: 10},
		{Description: "Enroll in a mini-course from the resource recommender.", Points: 8},
	}
}

// DefaultModules returns the stock learning modules. Prerequisite edges
// form a DAG rooted at Profile Optimization.
func DefaultModules() *ModuleCatalog {
	return NewModuleCatalog([]Module{
		{
			Name:        "Profile Optimization",
			Description: "Craft a compelling LinkedIn profile that highlights your strengths and goals.",
			TaskTemplates: []TaskTemplate{
				{Description: "Update your LinkedIn headline with targeted keywords.", Points: 5, Hint: "Highlight your core skills and aspirations."},
				{Description: "Add at least three relevant skills to your profile.", Points: 4, Hint: "Research skills valued in your desired roles."},
				{Description: "Write a compelling summary that tells your story.", Points: 5, Hint: "Share your career goals and personal narrative."},
			},
			MasteryThreshold: 12,
		},
		{
			Name:        "Pitch Mastery",
			Description: "Develop and refine your elevator pitch to confidently introduce yourself.",
			TaskTemplates: []TaskTemplate{
				{Description: "Write a 30-second elevator pitch using the chat coach.", Points: 5, Hint: "Focus on who you are, what you do and your aspirations."},
				{Description: "Record your pitch and evaluate its clarity.", Points: 5, Hint: "Practice speaking with a timer and watch your pace."},
				{Description: "Polish your pitch and integrate a personal story.", Points: 6, Hint: "Add a memorable hook that shows your passion."},
			},
			MasteryThreshold: 14,
			Prerequisites:    []string{"Profile Optimization"},
		},
		{
			Name:        "Mentor Outreach",
			Description: "Learn how to identify and approach mentors effectively.",
			TaskTemplates: []TaskTemplate{
				{Description: "Identify a potential mentor's profile and note common interests.", Points: 4, Hint: "Look for shared experiences or values."},
				{Description: "Draft a personalized outreach message to a potential mentor.", Points: 5, Hint: "Mention shared interests and what you hope to learn."},
				{Description: "Send your message and log the response.", Points: 6, Hint: "Follow up politely and thank them for their time."},
			},
			MasteryThreshold: 12,
			Prerequisites:    []string{"Profile Optimization", "Pitch Mastery"},
		},
		{
			Name:        "Event Participation",
			Description: "Engage meaningfully with networking events and follow up afterwards.",
			TaskTemplates: []TaskTemplate{
				{Description: "Find a networking event using the event finder.", Points: 4, Hint: "Search for events that align with your goals and schedule."},
				{Description: "Attend the event and make two new connections.", Points: 6, Hint: "Prepare icebreakers and focus on listening."},
				{Description: "Send follow-up messages to your new connections.", Points: 5, Hint: "Reference your conversation and express interest in staying in touch."},
			},
			MasteryThreshold: 12,
			Prerequisites:    []string{"Profile Optimization", "Pitch Mastery"},
		},
		{
			Name:        "Resource Integration",
			Description: "Integrate learning resources into your professional growth.",
			TaskTemplates: []TaskTemplate{
				{Description: "Read a recommended article and summarise key takeaways.", Points: 4, Hint: "Note the main arguments and how they apply to your career."},
				{Description: "Enroll in a short course and share your reflections.", Points: 6, Hint: "Focus on actionable insights and new skills."},
				{Description: "Write a post or journal entry about what you learned.", Points: 5, Hint: "Connect the material to your personal goals and experiences."},
			},
			MasteryThreshold: 12,
			Prerequisites:    []string{"Profile Optimization"},
		},
	})
}
