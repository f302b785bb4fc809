package generation

var instructions = map[Style]string{
	StyleGeneral: "You are a helpful AI content writer.",
	StyleBlog:    "You are an expert blog writer. Write high-quality, engaging, SEO-optimized blog posts.",
	StyleSocial:  "You are a social media expert. Write catchy, engaging social media posts.",
	StyleAd:      "You are a copywriting expert. Write powerful, high-converting ad copy.",
}

// Instruction returns the system instruction for s, falling back to the general writer
func (s Style) Instruction() string {
	if text, ok := instructions[s]; ok {
		return text
	}
	return instructions[StyleGeneral]
}
