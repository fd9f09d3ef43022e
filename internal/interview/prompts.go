package interview

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/muhammadolammi/interviewmate/internal/extract"
)

func resumeAnalysisPrompt(resumeText string) string {
	return fmt.Sprintf(`
Analyze the following resume and produce a structured technical summary.

Resume:
%s

Focus on:
1. Technical skills and proficiency levels
2. Years of experience with each technology
3. Project highlights and technical achievements
4. Technical roles and responsibilities
5. Areas that need clarification or more detail

Return a JSON object with exactly these keys:
- primary_skills (list of strings)
- experience_summary (string)
- key_projects (list of strings)
- areas_for_clarification (list of strings)
- suggested_question_topics (list of strings)

Return ONLY the JSON object with no surrounding text, code blocks, or markdown.
`, resumeText)
}

func technicalQuestionsPrompt(analysis extract.Record, position string) string {
	skills := formatList(analysis["primary_skills"])
	projects := formatList(analysis["key_projects"])
	topics := formatList(analysis["suggested_question_topics"])
	experience := ""
	if analysis["experience_summary"] != nil {
		experience = fmt.Sprint(analysis["experience_summary"])
	}

	firstSkill, secondSkill := "a relevant skill", "another relevant skill"
	if len(skills) > 0 {
		firstSkill = skills[0]
	}
	if len(skills) > 1 {
		secondSkill = skills[1]
	}
	firstProject := "one of your projects"
	if len(projects) > 0 {
		firstProject = projects[0]
	}

	return fmt.Sprintf(`
You are a technical interviewer. Generate %d unique and diverse interview questions for a candidate.

Candidate details:
- Position applied: %s
- Skills: %s
- Projects: %s
- Experience summary: %s
- Suggested topics: %s

Rules:
- 2 questions about past projects (real-world challenges).
- 3 questions about primary technical skills (hands-on depth).
- 2 system design or architecture questions (scalability and performance).
- 3 problem-solving or algorithm questions that require explanations.
- Every question must be unique.
- Difficulty increases from question 1 to question %d.

Examples of the expected style (do not copy):
1. (project) "Can you describe a challenging problem you faced in %s and how you solved it?"
2. (skill) "How does %s compare to %s in terms of performance and scalability?"
3. (design) "How would you design a fault-tolerant system for a %s role?"

Output strictly as JSON, no extra text:
{
  "question1": {"question": "...", "type": "project|skill|design|problem", "focus_area": "specific skill or project"},
  ...
  "question%d": {"question": "...", "type": "project|skill|design|problem", "focus_area": "specific skill or project"}
}
`, QuestionCount, position, joinOr(skills), joinOr(projects), experience, joinOr(topics),
		QuestionCount, firstProject, firstSkill, secondSkill, position, QuestionCount)
}

func evaluationPrompt(analysis extract.Record, answers map[string]Answer) (string, error) {
	analysisJSON, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return "", err
	}
	answersJSON, err := json.MarshalIndent(answers, "", "  ")
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`
Carefully evaluate the candidate's technical interview responses.

Resume analysis:
%s

Candidate answers:
%s

Instructions:
1. Assess technical knowledge, problem-solving and communication skills.
2. Compare the answers against the skills and experience in the resume.
3. Provide constructive feedback.
4. Return ONLY a valid JSON object with:
   - overall_score (0-100)
   - category_scores (object of category name to 0-20)
   - strengths (list of strings)
   - areas_for_improvement (list of strings)
   - detailed_feedback (string)

Return the JSON without any additional text or formatting.
`, analysisJSON, answersJSON), nil
}

// formatList flattens a generated list into display strings. Object items
// use their "name" or "skill" member when present.
func formatList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		if s, ok := v.(string); ok && s != "" {
			return []string{s}
		}
		return nil
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		switch t := item.(type) {
		case string:
			out = append(out, t)
		case map[string]any:
			if name, ok := t["name"]; ok {
				out = append(out, fmt.Sprint(name))
			} else if skill, ok := t["skill"]; ok {
				out = append(out, fmt.Sprint(skill))
			} else {
				b, _ := json.Marshal(t)
				out = append(out, string(b))
			}
		default:
			out = append(out, fmt.Sprint(t))
		}
	}
	return out
}

func joinOr(items []string) string {
	if len(items) == 0 {
		return "Not specified"
	}
	return strings.Join(items, ", ")
}
