package main

// PageAnchor is an element on the page that reports a line anchor.
type PageAnchor struct {
	ID     string
	Align  string
	Offset int
	Adjust int
	Edge   string // "top" or "bottom" of the section
}

// Section is one block of the page the line passes through.
type Section struct {
	ID      string
	Number  int
	Title   string
	Body    string
	Anchors []PageAnchor
}

var Sections = []Section{
	{
		ID:     "hero",
		Number: 1,
		Title:  "Zach Kordas-Potter",
		Body:   `Software developer building useful and fun things in Go.`,
		Anchors: []PageAnchor{
			{ID: "hero-start", Align: "left", Offset: 48, Edge: "top"},
			{ID: "hero-end", Align: "left", Offset: 48, Edge: "bottom", Adjust: -24},
		},
	},
	{
		ID:     "about",
		Number: 2,
		Title:  "About",
		Body: `Most of my projects start with a simple idea and turn into a chance to learn
	something new, whether it's a different language, a new tool or a tricky problem.`,
		Anchors: []PageAnchor{
			{ID: "about-left", Align: "left", Offset: 96, Edge: "top", Adjust: 24},
			{ID: "about-bottom", Align: "left", Offset: 96, Edge: "bottom"},
		},
	},
	{
		ID:     "projects",
		Number: 3,
		Title:  "Projects",
		Body: `A terminal email client, a TUI music streamer, a game recommender and
	this site, built with Go, Gin and HTMX.`,
		Anchors: []PageAnchor{
			{ID: "projects-right", Align: "right", Offset: 96, Edge: "top", Adjust: 24},
			{ID: "projects-bottom", Align: "right", Offset: 96, Edge: "bottom"},
		},
	},
	{
		ID:     "experience",
		Number: 4,
		Title:  "Experience",
		Body:   `Presentation Expert at Target. Manager at Jasons Catered Events.`,
		Anchors: []PageAnchor{
			{ID: "experience-center", Align: "center", Offset: 0, Edge: "top", Adjust: 24},
		},
	},
	{
		ID:     "contact",
		Number: 5,
		Title:  "Contact",
		Body:   `Say hello.`,
		Anchors: []PageAnchor{
			{ID: "contact-center", Align: "center", Offset: 0, Edge: "top", Adjust: 24},
		},
	},
}
