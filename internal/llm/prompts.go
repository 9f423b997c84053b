package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"skillup/api/internal/models"
)

const englishOnly = "IMPORTANT: Write all content in English language."

func assessmentPrompt() string {
	return `Generate a career assessment quiz with 8 questions in ENGLISH for Filipino students and job seekers.
Each question should have 4 options (A, B, C, D). Keep options concise (max 15 words each).
Assess interests, skills, values, and personality traits for career planning.
` + englishOnly + `
Return ONLY a JSON array, no markdown or extra text:
[
  {
    "id": 1,
    "question": "Brief question text",
    "options": {
      "A": "Concise option A",
      "B": "Concise option B",
      "C": "Concise option C",
      "D": "Concise option D"
    }
  }
]`
}

func analysisPrompt(responses []models.AssessmentResponse) (string, error) {
	encoded, err := json.Marshal(responses)
	if err != nil {
		return "", fmt.Errorf("encode responses: %w", err)
	}

	return `Analyze these career assessment responses: ` + string(encoded) + `

Based on the responses, provide in ENGLISH:
1. Top 3 career paths (title, brief description, match %)
2. 3 key strengths
3. 2 development areas
4. 3 learning recommendations

` + englishOnly + `
Return ONLY JSON, no markdown:
{
  "career_paths": [
    {"title": "Career", "description": "Brief fit (max 30 words)", "match_percentage": 90}
  ],
  "strengths": ["strength 1", "strength 2", "strength 3"],
  "development_areas": ["area 1", "area 2"],
  "learning_recommendations": ["rec 1", "rec 2", "rec 3"]
}`, nil
}

func modulesPrompt(careerPath string, hasAssessment bool) string {
	var b strings.Builder
	if hasAssessment && careerPath != "" {
		fmt.Fprintf(&b, "Generate 6 personalized microlearning modules in ENGLISH for a Filipino student pursuing a career in %s.\n", careerPath)
		b.WriteString("Each module should be practical, relevant to the Philippine job market, and include specific skills.")
	} else {
		b.WriteString("Generate 6 general useful microlearning modules in ENGLISH for Filipino students and job seekers.\n")
		b.WriteString("Focus on universal career skills like communication, digital literacy, problem-solving, etc.")
	}

	b.WriteString("\n\n" + englishOnly + `
Return ONLY a JSON array, no markdown:
[
  {
    "id": "module-1",
    "title": "Module Title",
    "description": "Brief description (max 20 words)",
    "category": "Category",
    "duration": "15 min",
    "level": "Beginner",
    "icon": "BookOpen"
  }
]`)
	return b.String()
}

func lessonPrompt(title, description string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a comprehensive microlearning lesson for Filipino learners on %q.\n", title)
	if description != "" {
		fmt.Fprintf(&b, "Context: %s\n", description)
	}
	b.WriteString(`
Include:
1. Clear learning objectives in English (3 points)
2. Main content broken into 3-4 sections with headings and concise explanations in English
3. 2 practical examples relevant to Filipino context (in English)
4. Key takeaways in English (3 points)
5. A quiz with 3 multiple choice questions in English to test understanding

IMPORTANT: Write ALL content in English language, not Filipino/Tagalog.

Format as JSON:
{
  "objectives": ["objective 1", "objective 2", "objective 3"],
  "sections": [
    {"heading": "Section Title", "content": "Detailed explanation text"}
  ],
  "examples": ["example 1", "example 2"],
  "key_takeaways": ["takeaway 1", "takeaway 2", "takeaway 3"],
  "quiz": [
    {
      "question": "Question text",
      "options": ["A) option 1", "B) option 2", "C) option 3", "D) option 4"],
      "correct_answer": "A",
      "explanation": "Why this is correct"
    }
  ]
}

Only return the JSON, no additional text.`)
	return b.String()
}
