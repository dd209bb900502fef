package packlist

import (
	"regexp"
	"strings"
)

// Category is one of the fixed packing list groups.
type Category string

const (
	CategoryTV        Category = "tv"
	CategoryCounter   Category = "counter"
	CategoryFurniture Category = "furniture"
	CategoryTech      Category = "tech"
	CategoryPrint     Category = "print"
	CategoryFrame     Category = "frame"
	CategoryMisc      Category = "misc"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryTV,
	CategoryCounter,
	CategoryFurniture,
	CategoryTech,
	CategoryPrint,
	CategoryFrame,
	CategoryMisc,
}

var categoryTitles = map[Category]string{
	CategoryTV:        "TV & Skärmar",
	CategoryCounter:   "Disk",
	CategoryFurniture: "Möbler & Växter",
	CategoryTech:      "Teknik & Belysning",
	CategoryPrint:     "Tryck & Grafik",
	CategoryFrame:     "beMatrix-ramar",
	CategoryMisc:      "Övrigt",
}

// Title is the Swedish heading used in documents.
func (c Category) Title() string {
	if t, ok := categoryTitles[c]; ok {
		return t
	}
	return string(c)
}

// Rule assigns a label to a category when Match reports true. Rules are
// evaluated in Priority order and the first match wins.
type Rule struct {
	Priority int
	Name     string
	Category Category
	Match    func(label string) bool
}

var (
	counterPrefixes = []string{"Disk ", "Bematrix ram", "Barskiva", "Grafik "}
	counterLiterals = map[string]bool{
		"Lister forex":      true,
		"Corners":           true,
		"M8pin":             true,
		"Special connector": true,
	}

	furnitureNames = map[string]bool{
		"Soffa":          true,
		"Fåtölj":         true,
		"Barbord":        true,
		"Barstol":        true,
		"Pall":           true,
		"Sidobord":       true,
		"Klädställning":  true,
		"Hylla":          true,
		"Hyllkonsol":     true,
		"Monstera":       true,
		"Ficus":          true,
		"Strelitzia":     true,
		"Olivträd":       true,
		"Kentia palm":    true,
		"Yucca":          true,
		"Sansevieria":    true,
		"Zamioculcas":    true,
		"Dracaena":       true,
		"Bambu":          true,
		"Blomma":         true,
		"Espressomaskin": true,
		"Godisskål":      true,
	}

	techNames = map[string]bool{
		"SAM-led":        true,
		"Högtalare":      true,
		"Högtalarstativ": true,
	}

	printFragments = []string{"Vepa", "VEPA", "Forex", "FOREX", "Hyrgrafik", "grafik"}

	framePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d+\.\d+ x \d+\.\d+`),
		regexp.MustCompile(`\d+ x \d+`),
		regexp.MustCompile(`\d+\.\d+ x \d+`),
	}
	frameLiterals = map[string]bool{
		"connectors": true,
		"baseplate":  true,
	}
)

// Rules is the ordered rule table. The order resolves overlaps: a counter
// part such as "Grafik disk" or "Corners" must never reach the print or
// frame rules.
var Rules = []Rule{
	{Priority: 1, Name: "tv-prefix", Category: CategoryTV, Match: matchTV},
	{Priority: 2, Name: "counter-parts", Category: CategoryCounter, Match: matchCounter},
	{Priority: 3, Name: "furniture-plants", Category: CategoryFurniture, Match: matchFurniture},
	{Priority: 4, Name: "tech-lighting", Category: CategoryTech, Match: matchTech},
	{Priority: 5, Name: "print-graphics", Category: CategoryPrint, Match: matchPrint},
	{Priority: 6, Name: "bematrix-frame", Category: CategoryFrame, Match: matchFrame},
}

// Classify returns the category of label.
func Classify(label string) Category {
	for _, rule := range Rules {
		if rule.Match(label) {
			return rule.Category
		}
	}
	return CategoryMisc
}

func matchTV(label string) bool {
	return strings.HasPrefix(label, "TV ")
}

func matchCounter(label string) bool {
	if strings.Contains(strings.ToLower(label), "disk") {
		return true
	}
	if counterLiterals[label] {
		return true
	}
	for _, prefix := range counterPrefixes {
		if strings.HasPrefix(label, prefix) {
			return true
		}
	}
	return false
}

func matchFurniture(label string) bool {
	return furnitureNames[label]
}

func matchTech(label string) bool {
	return techNames[label] || strings.Contains(label, "Högtalar")
}

func matchPrint(label string) bool {
	if label == "Matta" || strings.HasPrefix(label, "Grafik ") {
		return true
	}
	for _, fragment := range printFragments {
		if strings.Contains(label, fragment) {
			return true
		}
	}
	return false
}

func matchFrame(label string) bool {
	if counterLiterals[label] {
		return false
	}
	if frameLiterals[label] || strings.Contains(label, "corner") || strings.Contains(label, "_pin") {
		return true
	}
	for _, re := range framePatterns {
		if re.MatchString(label) {
			return true
		}
	}
	return false
}
