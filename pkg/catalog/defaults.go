package catalog

// Default returns the reference catalog: seven benefit indicators, four
// candidate assistants with reference ratings, three department presets and
// the mined quality attributes. Each call returns a fresh copy.
func Default() *Catalog {
	return &Catalog{
		Indicators:  defaultIndicators(),
		Options:     defaultOptions(),
		Departments: defaultDepartments(),
		Attributes:  defaultAttributes(),
	}
}

func defaultIndicators() []Indicator {
	return []Indicator{
		{ID: "accuracy", Name: "Accuracy", LocalName: "Akurasi", Weight: 0.20, Direction: Benefit,
			Description: "Factual, precise answers free of misleading information"},
		{ID: "relevance", Name: "Relevance", LocalName: "Relevansi", Weight: 0.15, Direction: Benefit,
			Description: "How well answers fit the question and the company's business context"},
		{ID: "clarity", Name: "Clarity", LocalName: "Kejelasan", Weight: 0.10, Direction: Benefit,
			Description: "Clear language, structure and delivery of information"},
		{ID: "coherence", Name: "Coherence", LocalName: "Koherensi", Weight: 0.10, Direction: Benefit,
			Description: "Logical links between paragraphs and a consistent line of explanation"},
		{ID: "completeness", Name: "Completeness", LocalName: "Kelengkapan", Weight: 0.15, Direction: Benefit,
			Description: "Covers every key point and offers practical solutions"},
		{ID: "appropriateness", Name: "Appropriateness", LocalName: "Kesesuaian", Weight: 0.10, Direction: Benefit,
			Description: "Tone and register that respect company values"},
		{ID: "responseTime", Name: "Response Time", LocalName: "Waktu Respons", Weight: 0.20, Direction: Benefit,
			Description: "Speed and stability of response times"},
	}
}

func defaultOptions() []Option {
	return []Option{
		{
			ID:          "chatgpt",
			DisplayName: "ChatGPT",
			Description: "OpenAI's flagship model, known for strong conversational ability",
			Ratings: Ratings{
				"accuracy": 4, "relevance": 4, "clarity": 5, "coherence": 5,
				"completeness": 4, "appropriateness": 5, "responseTime": 4,
			},
		},
		{
			ID:          "perplexity",
			DisplayName: "Perplexity",
			Description: "AI search engine with strong research and citation support",
			Ratings: Ratings{
				"accuracy": 5, "relevance": 5, "clarity": 4, "coherence": 4,
				"completeness": 5, "appropriateness": 4, "responseTime": 4,
			},
		},
		{
			ID:          "gemini",
			DisplayName: "Gemini",
			Description: "Google's multimodal model integrated with the Google ecosystem",
			Ratings: Ratings{
				"accuracy": 4, "relevance": 4, "clarity": 4, "coherence": 4,
				"completeness": 4, "appropriateness": 4, "responseTime": 5,
			},
		},
		{
			ID:          "deepseek",
			DisplayName: "DeepSeek",
			Description: "Model focused on reasoning and coding",
			Ratings: Ratings{
				"accuracy": 5, "relevance": 4, "clarity": 4, "coherence": 4,
				"completeness": 4, "appropriateness": 3, "responseTime": 5,
			},
		},
	}
}

func defaultDepartments() []Department {
	return []Department{
		{
			ID:          "hcd",
			Name:        "Human Capital Development",
			Description: "People development and e-learning",
			Weights: Weights{
				"accuracy": 0.20, "relevance": 0.15, "clarity": 0.10, "coherence": 0.10,
				"completeness": 0.15, "appropriateness": 0.10, "responseTime": 0.20,
			},
		},
		{
			ID:          "it",
			Name:        "Information Technology",
			Description: "Infrastructure and technology solutions",
			Weights: Weights{
				"accuracy": 0.25, "relevance": 0.15, "clarity": 0.10, "coherence": 0.10,
				"completeness": 0.15, "appropriateness": 0.05, "responseTime": 0.20,
			},
		},
		{
			ID:          "research",
			Name:        "Research & Development",
			Description: "Innovation and research",
			Weights: Weights{
				"accuracy": 0.25, "relevance": 0.20, "clarity": 0.10, "coherence": 0.10,
				"completeness": 0.20, "appropriateness": 0.05, "responseTime": 0.10,
			},
		},
	}
}

// attr is shorthand for the attribute table below.
func attr(id, text, indicator, category string, lit, internal, voice bool, freq int) Attribute {
	return Attribute{
		ID:             id,
		Text:           text,
		Indicator:      indicator,
		Category:       category,
		Sources:        Sources{Literature: lit, Internal: internal, UserVoice: voice},
		FreqLiterature: freq,
	}
}

func defaultAttributes() []Attribute {
	return []Attribute{
		attr("A1", "Answers are factual and match trusted sources", "Accuracy", "content", true, true, true, 8),
		attr("A2", "Answers rarely contain wrong or misleading information", "Accuracy", "content", true, false, false, 8),
		attr("A3", "Answers stay consistent when the same topic is asked again", "Accuracy", "content", true, false, false, 6),
		attr("A4", "Can cite references or sources when needed", "Accuracy", "content", true, true, true, 8),
		attr("A5", "Avoids speculative answers on company-sensitive topics", "Accuracy", "governance", false, true, true, 0),

		attr("R1", "Answers are relevant to the question asked", "Relevance", "content", false, false, true, 0),
		attr("R2", "Understands the company's business context", "Relevance", "context", false, true, true, 0),
		attr("R3", "Adapts answers to the knowledge-management context", "Relevance", "context", true, false, false, 6),
		attr("R4", "Relates answers to the work processes of the unit", "Relevance", "context", true, true, true, 8),
		attr("R5", "Stays on topic for specific questions", "Relevance", "context", true, false, false, 4),

		attr("C1", "Language is clear and easy to understand", "Clarity", "style", false, true, true, 2),
		attr("C2", "Answer structure is tidy and organised", "Clarity", "style", true, false, true, 7),
		attr("C3", "Technical terms are explained simply", "Clarity", "style", true, true, true, 5),
		attr("C4", "Uses examples that help understanding", "Clarity", "style", false, true, false, 0),
		attr("C5", "Minimises ambiguity in explanations", "Clarity", "style", false, false, true, 0),

		attr("CC1", "Answers are not long-winded", "Coherence", "style", false, true, true, 2),
		attr("CC2", "Paragraphs connect logically", "Coherence", "style", true, true, true, 7),
		attr("CC3", "Summarises key points briefly", "Coherence", "style", true, true, true, 2),
		attr("CC4", "Limits irrelevant information", "Coherence", "style", true, true, true, 6),
		attr("CC5", "Keeps the explanation in order from start to finish", "Coherence", "style", true, true, true, 7),

		attr("CP1", "Answers every key point of the question", "Completeness", "coverage", true, true, false, 5),
		attr("CP2", "Gives steps or recommendations that can be applied", "Completeness", "coverage", false, false, true, 0),
		attr("CP3", "Adds relevant extra context when needed", "Completeness", "coverage", true, false, true, 5),
		attr("CP4", "Offers alternative solutions where possible", "Completeness", "coverage", true, false, true, 5),
		attr("CP5", "Includes risks or caveats for its recommendations", "Completeness", "coverage", true, false, true, 5),

		attr("T1", "Tone is professional and polite", "Appropriateness", "tone", true, true, true, 7),
		attr("T2", "Respects company values and culture", "Appropriateness", "tone", false, false, true, 2),
		attr("T3", "Avoids sensitive or offensive content", "Appropriateness", "tone", true, true, true, 4),
		attr("T4", "Responds supportively without blaming", "Appropriateness", "tone", true, true, false, 3),
		attr("T5", "Adapts register to the internal audience", "Appropriateness", "tone", false, false, false, 0),

		attr("RT1", "Response time is fast", "Response Time", "performance", true, true, false, 5),
		attr("RT2", "Response time is stable without frequent delays", "Response Time", "performance", false, false, true, 0),
		attr("RT3", "Users can control answer length or detail", "Response Time", "usability", false, true, true, 0),
		attr("RT4", "Users can easily correct or redirect answers", "Response Time", "usability", true, false, true, 7),
		attr("RT5", "Handles several consecutive questions without quality loss", "Response Time", "usability", true, true, true, 2),
	}
}
