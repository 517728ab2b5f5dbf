package curriculum

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an experienced instructional designer. You build practical, progressive self-study curricula that mix video, reading, hands-on exercises and short self-assessments.`

func buildUserMessage(req Request) string {
	var b strings.Builder

	goals := strings.TrimSpace(req.Goals)
	if goals == "" {
		goals = "General mastery of the topic"
	}

	b.WriteString(fmt.Sprintf("Create a comprehensive learning path for %q.\n\n", strings.TrimSpace(req.Topic)))
	b.WriteString("Requirements:\n")
	b.WriteString(fmt.Sprintf("- Duration: %d days\n", req.DurationDays))
	b.WriteString(fmt.Sprintf("- Skill level: %s\n", req.SkillLevel))
	b.WriteString(fmt.Sprintf("- Daily time commitment: %g hours\n", req.DailyTimeHours))
	b.WriteString(fmt.Sprintf("- Specific goals: %s\n", goals))

	b.WriteString(fmt.Sprintf(`
Instructions:
1. List 3-5 overall learning objectives and the prerequisites.
2. Provide exactly %d daily modules numbered 1 to %d in order. Each module has:
   - a specific objective
   - one video: a realistic YouTube video title and a popular channel in the field
   - reading materials (articles, documentation, books)
   - a practical exercise with a clear expected outcome
   - 3-4 assessment questions
   - a realistic time estimate that fits the daily commitment
3. Build a resource library: YouTube channels, books, websites and tools.
4. Progress from basics to advanced material with real-world applications and clear milestones.
Make it actionable for %s learners.`, req.DurationDays, req.DurationDays, req.SkillLevel))

	return b.String()
}
