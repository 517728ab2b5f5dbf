package search

var catalog = []Subject{
	{Name: "Python Programming", Description: "Learn Python from basics to advanced concepts", Category: "programming"},
	{Name: "Web Development", Description: "HTML, CSS, JavaScript and modern frameworks", Category: "web_development"},
	{Name: "Data Science", Description: "Analytics, machine learning, and visualization", Category: "data_science"},
	{Name: "React Development", Description: "Build modern web applications with React", Category: "web_development"},
	{Name: "Mobile App Development", Description: "iOS and Android app development", Category: "mobile"},
	{Name: "Machine Learning", Description: "AI and machine learning fundamentals", Category: "ai_ml"},
}

var topicSuggestions = []string{
	"Python Programming", "Web Development", "Data Science", "Machine Learning",
	"JavaScript", "React Development", "Mobile App Development", "Digital Marketing",
	"Cybersecurity", "Game Development", "UI/UX Design", "DevOps", "Blockchain",
	"Cloud Computing", "Artificial Intelligence", "Database Management",
}

// Catalog returns the popular subjects offered for search and generation.
func Catalog() []Subject {
	out := make([]Subject, len(catalog))
	copy(out, catalog)
	return out
}

// TopicSuggestions returns example topics for the generator form.
func TopicSuggestions() []string {
	out := make([]string, len(topicSuggestions))
	copy(out, topicSuggestions)
	return out
}
