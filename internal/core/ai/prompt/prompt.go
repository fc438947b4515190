package prompt

import (
	"strings"
	"text/template"

	"recipe-importer/internal/pkg/common"
)

// FreeformData freeform 擷取提示詞的輸入欄位
type FreeformData struct {
	URL  string
	HTML string
}

// TechniqueData 技巧擷取提示詞的輸入欄位
type TechniqueData struct {
	Title      string
	URL        string
	Text       string
	Categories []common.TechniqueCategory
}

var (
	freeformTemplate  = template.Must(template.New("freeform").Parse(freeformText))
	techniqueTemplate = template.Must(template.New("technique").Parse(techniqueText))
)

// RenderFreeform 組裝 freeform 食譜擷取的提示詞
func RenderFreeform(data FreeformData) (string, error) {
	var sb strings.Builder
	if err := freeformTemplate.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// RenderTechnique 組裝技巧擷取的提示詞
func RenderTechnique(data TechniqueData) (string, error) {
	var sb strings.Builder
	if err := techniqueTemplate.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

const freeformText = `You are a recipe extraction assistant. Extract the complete recipe from the web page below.

Page URL: {{.URL}}

Requirements:
1. Use only information present in the page content, do not invent ingredients or steps
2. All time fields are integer minutes
3. "quantity" must be a number (decimals allowed) or null when the page gives none
4. "course" values must be chosen from: breakfast, lunch, dinner, snack, dessert
5. Leave unknown string fields as "" and unknown numbers as null
6. All fields must be present, none may be omitted
7. Return a single JSON object only, no markdown fences, no commentary

Return JSON in exactly this shape:
{
    "title": "recipe title",
    "description": "short description",
    "author": "author name",
    "cuisine": "cuisine",
    "course": ["dinner"],
    "tags": ["tag"],
    "prepTime": 0,
    "cookTime": 0,
    "totalTime": 0,
    "servings": 4,
    "ingredients": [
        {"name": "ingredient name", "quantity": 1.5, "unit": "cup", "preparation": "", "optional": false}
    ],
    "steps": [
        {"stepNumber": 1, "instruction": "step text", "duration": null, "tip": ""}
    ],
    "chefNotes": "",
    "requiredEquipment": ["equipment name"]
}

Page HTML (truncated):
{{.HTML}}`

const techniqueText = `You are a culinary instructor. From the recipe page text below, extract the cooking techniques that are explicitly described in the text.

Recipe: {{.Title}}
Page URL: {{.URL}}

Each technique must use exactly one of these categories:
{{range .Categories}}- {{.}}
{{end}}
Requirements:
1. Only include techniques explicitly present in the text, never invent techniques
2. "category" must be one of the listed values, exactly as written
3. Keep descriptions short and practical
4. Return a single JSON object only, no markdown fences, no commentary

Return JSON in exactly this shape:
{
    "techniques": [
        {
            "title": "technique name",
            "category": "knife_skills",
            "description": "what the technique is",
            "whyItWorks": "",
            "commonMistakes": ["mistake"],
            "keyTips": ["tip"],
            "relatedIngredients": ["ingredient"]
        }
    ]
}

Page text (truncated):
{{.Text}}`
