package export

import "github.com/boxmate/backend/internal/model"

var categoryLabels = map[string]string{
	model.CategoryBusiness:    "Affärsverksamhet (företag)",
	model.CategoryElectronics: "Elektronik",
	model.CategoryOther:       "Övrigt",
}

var subcategoryLabels = map[string]string{
	model.SubcategoryComputersGaming:   "Datorer och TV-spel",
	model.SubcategoryAudioVideo:        "Ljud och Bild",
	model.SubcategoryPhonesAccessories: "Telefoner & tillbehör",
}

var conditionLabels = map[string]string{
	model.ConditionNew:       "Nytt skick - Helt ny",
	model.ConditionExcellent: "Mycket bra skick - Som ny",
	model.ConditionGood:      "Bra skick - Sparsamt använd",
	model.ConditionFair:      "Okej skick - Synligt använd",
	model.ConditionBroken:    "Funkar inte - Kan fixas",
}

// CategoryLabel returns the display label for a category value, falling back
// to the raw value for anything unknown.
func CategoryLabel(category string) string {
	if label, ok := categoryLabels[category]; ok {
		return label
	}
	return category
}

func SubcategoryLabel(subcategory string) string {
	if label, ok := subcategoryLabels[subcategory]; ok {
		return label
	}
	return subcategory
}

func ConditionLabel(condition string) string {
	if label, ok := conditionLabels[condition]; ok {
		return label
	}
	return condition
}
