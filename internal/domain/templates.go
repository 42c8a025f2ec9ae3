package domain

// BaseTemplates returns the built-in script library. A fresh script store is
// seeded with these so a first-time user can run a test without authoring a
// script.
func BaseTemplates() []Script {
	return []Script{
		{
			ID:   "first_impressions",
			Name: "First Impressions",
			Questions: []Question{
				{ID: "01", Text: "Can you please explain what you are seeing and what this is about?"},
				{ID: "02", Text: "What kind of interactions would you expect to be able to do? What would you try to do and what is the expected behavior?"},
				{ID: "03", Text: "Can you please generate describe the other screens you would expect to see?"},
				{ID: "04", Text: "Can you please describe what the main areas of focus are and what grabs your attention the most. If at all possible try to rank them numerically. If nothing grabs your attention please mention that."},
				{ID: "05", Text: "Can you please mention what was not too clear to you?"},
				{ID: "06", Text: "Any ideas for improvements you might make?"},
			},
		},
		{
			ID:   "graphic_design_feedback",
			Name: "Graphic Design Feedback",
			Questions: []Question{
				{ID: "01", Text: "Where does your eye first go when looking at this design?"},
				{ID: "02", Text: "Can you please spot if I am using too many fonts? Ideally no more than 3 variations."},
				{ID: "03", Text: "Can you please comment on the visual hierarchy of the designs and if it makes any sense or what might confuse a user?"},
			},
		},
		{
			ID:   "compare_multiple_designs",
			Name: "Compare Multiple Designs",
			Questions: []Question{
				{ID: "01", Text: "Can you please tell me what you think you are seeing?"},
				{ID: "02", Text: "Which of these do you prefer and why?"},
				{ID: "03", Text: "Which of these distinct (two, three) designs do you prefer and why? What are their strengths and weaknesses?"},
			},
		},
		{
			ID:   "reword_ui_text",
			Name: "Reword UI Text",
			Questions: []Question{
				{ID: "01", Text: "Can you please reword the UI elements in these design (buttons, headings, etc) to make them clearer? Please provide your reasoning (pros and cons, etc)."},
			},
		},
		{
			ID:   "quick_impressions",
			Name: "Quick Feedback & Impressions",
			Questions: []Question{
				{ID: "01", Text: "Can you please explain what you are seeing and what this is about?"},
				{ID: "02", Text: "Can you please mention what was not too clear to you?"},
			},
		},
	}
}
