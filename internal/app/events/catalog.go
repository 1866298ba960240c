// Package events holds the static event catalog. Registrations, applications,
// stats, and teammate posts live in the document store keyed by eventSlug;
// the catalog drives the visible content for each event page.
package events

// EventSection is a titled body of event page copy.
type EventSection struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Sponsor names an event sponsor.
type Sponsor struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// Prize is one prize line on an event page.
type Prize struct {
	Label  string `json:"label"`
	Detail string `json:"detail,omitempty"`
}

// Judge names a judge and their role.
type Judge struct {
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

// JudgingCriterion is one scored dimension of event judging.
type JudgingCriterion struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// EventConfig is the static metadata for one event, addressed by slug.
type EventConfig struct {
	Slug              string             `json:"slug"`
	Title             string             `json:"title"`
	Description       string             `json:"description"`
	Tagline           string             `json:"tagline,omitempty"`
	DateRange         string             `json:"dateRange"`
	Tags              []string           `json:"tags"`
	ImagePath         string             `json:"imagePath,omitempty"`
	ImageAlt          string             `json:"imageAlt,omitempty"`
	Location          string             `json:"location,omitempty"`
	Format            string             `json:"format,omitempty"`
	Tracks            []string           `json:"tracks,omitempty"`
	About             []string           `json:"about,omitempty"`
	WhatToBuild       string             `json:"whatToBuild,omitempty"`
	WhatToSubmit      []string           `json:"whatToSubmit,omitempty"`
	WhoCanParticipate string             `json:"whoCanParticipate,omitempty"`
	Sections          []EventSection     `json:"sections"`
	Timeline          []string           `json:"timeline"`
	RulesURL          string             `json:"rulesUrl,omitempty"`
	ScheduleURL       string             `json:"scheduleUrl,omitempty"`
	Sponsors          []Sponsor          `json:"sponsors,omitempty"`
	Prizes            []Prize            `json:"prizes,omitempty"`
	Judges            []Judge            `json:"judges,omitempty"`
	JudgingCriteria   []JudgingCriterion `json:"judgingCriteria,omitempty"`
}

var catalog = []EventConfig{
	{
		Slug:        "lent-hack-2026",
		Title:       "Lent Hack 2026",
		Description: "A 50-day challenge for developers, designers, and innovators to build products that help people grow spiritually or help the Church take its next leap into the future.",
		Tagline:     "Build What's Eternal. This Lent, don't just give up something. Build something.",
		DateRange:   "February 18, 2026 – Easter Week 2026",
		Tags:        []string{"50-day challenge", "Team or Individual", "WhatsApp Community"},
		ImagePath:   "/lent-hack-logo.png",
		ImageAlt:    "Lent Hack — Build What's Eternal.",
		Location:    "Online",
		Format:      "Public",
		Tracks:      []string{"FaithTech", "Education", "Parish Ops", "Digital Mission"},
		About: []string{
			"We are calling all developers, designers, and innovators to a 50-day challenge. Our mission? To create products that help people grow spiritually or help the Church take its next giant leap into the future.",
			"The prompt is simple: Build a NEW product or tool in 50 days. Whether it's an AI-powered prayer assistant, a community coordination platform, a liturgical tool, or a digital mission experience—if it serves the Kingdom, we want to see it.",
		},
		WhatToBuild: "Build a NEW product or tool in 50 days. Examples: AI-powered prayer assistant, community coordination platform, liturgical tool, or digital mission experience. If it serves the Kingdom, we want to see it.",
		WhatToSubmit: []string{
			"Phase 1 (Ideation): Submit a Problem Statement or Product Concept to the Ideation Board.",
			"Phase 2 (The Build): Form teams, join Discord/WhatsApp technical channels, develop your MVP. Weekly check-in calls and mentorship from Tech Mission team.",
			"Phase 3 (Submission): Submit your GitHub repo, deployed website or app, and a 3-minute demo video on how the app works. Deadline: Easter Week.",
		},
		WhoCanParticipate: "Developers, designers, and innovators. Team or individual. All builders welcome.",
		Sections: []EventSection{
			{
				Title: "Why Participate?",
				Body:  "Purpose-Driven Code: Shift your focus from deprivation to creation. Use your professional skills for a higher mission. Community: Connect with like-minded Catholic/Christian techies who share your passion for faith and innovation. Impact: Your project could be the tool that helps thousands of people pray better or helps a parish run more effectively.",
			},
			{
				Title: "Phase 1: Ideation (The Seed)",
				Body:  "Identify the Need. Don't have a team or a line of code yet? No problem. Submit a Problem Statement or a Product Concept to our Ideation Board. Goal: Surface the most impactful ideas that developers can then choose to build.",
			},
			{
				Title: "Phase 2: The Build (The Growth)",
				Body:  "Build the Solution. This is the 50-day sprint. Pick an idea from the Ideation Phase—or bring your own—and start crafting. Form teams, join the Discord/WhatsApp technical channels, and develop your MVP. Support: Weekly check-in calls and mentorship from the Tech Mission team.",
			},
			{
				Title: "Phase 3: Submission (The Harvest)",
				Body:  "Easter Week: Show the Fruit. Finalize your code, record your demo, and show the world what can be built in 50 days of prayer and work. Submit your GitHub repo, deployed website or app, and a 3-minute demo video on how the app works.",
			},
			{
				Title: "Ready to Start?",
				Body:  "The journey begins on Ash Wednesday. Join the WhatsApp Community for more information and weekly check-ins. Scan the QR code (on the event page or community) to join.",
			},
		},
		Timeline: []string{
			"Launch: Ash Wednesday (February 18, 2026)",
			"The Build: 50 Days of Innovation",
			"Submission Deadline: Easter Week",
		},
		Prizes: []Prize{
			{Label: "Community showcase", Detail: "Featured on Catholic Product Hunt and the broader community."},
		},
		JudgingCriteria: []JudgingCriterion{
			{Name: "Impact & relevance", Description: "Serves the Kingdom; helps people grow spiritually or the Church move forward."},
			{Name: "Technical quality", Description: "Solid implementation and sensible architecture."},
			{Name: "Presentation", Description: "Clear 3-minute demo and communication."},
		},
	},
}

var bySlug = func() map[string]*EventConfig {
	m := make(map[string]*EventConfig, len(catalog))
	for i := range catalog {
		m[catalog[i].Slug] = &catalog[i]
	}
	return m
}()

// GetBySlug returns the event with the given slug, or nil.
func GetBySlug(slug string) *EventConfig {
	return bySlug[slug]
}

// AllSlugs returns every catalog event slug.
func AllSlugs() []string {
	slugs := make([]string, len(catalog))
	for i, event := range catalog {
		slugs[i] = event.Slug
	}
	return slugs
}

// All returns the full event catalog.
func All() []EventConfig {
	return append([]EventConfig(nil), catalog...)
}
