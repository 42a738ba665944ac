// Package occupation holds the occupation domain model: SOC codes, the
// category table, the static title table and title normalization.
package occupation

import (
	"fmt"
	"regexp"
	"strings"
)

// Category is a coarse occupation classification derived from the SOC major group.
type Category string

// Categories keyed by SOC major group. General covers unknown prefixes.
const (
	CategoryManagement             Category = "Management"
	CategoryBusinessFinancial      Category = "Business and Financial Operations"
	CategoryComputerMath           Category = "Computer and Mathematical"
	CategoryArchitectureEngineer   Category = "Architecture and Engineering"
	CategoryScience                Category = "Life, Physical, and Social Science"
	CategoryCommunityService       Category = "Community and Social Service"
	CategoryLegal                  Category = "Legal"
	CategoryEducation              Category = "Educational Instruction and Library"
	CategoryArtsMedia              Category = "Arts, Design, Entertainment, Sports, and Media"
	CategoryHealthcarePractitioner Category = "Healthcare Practitioners and Technical"
	CategoryHealthcareSupport      Category = "Healthcare Support"
	CategoryProtectiveService      Category = "Protective Service"
	CategoryFoodService            Category = "Food Preparation and Serving Related"
	CategoryBuildingGrounds        Category = "Building and Grounds Cleaning and Maintenance"
	CategoryPersonalCare           Category = "Personal Care and Service"
	CategorySales                  Category = "Sales and Related"
	CategoryOfficeAdmin            Category = "Office and Administrative Support"
	CategoryFarming                Category = "Farming, Fishing, and Forestry"
	CategoryConstruction           Category = "Construction and Extraction"
	CategoryInstallationRepair     Category = "Installation, Maintenance, and Repair"
	CategoryProduction             Category = "Production"
	CategoryTransportation         Category = "Transportation and Material Moving"
	CategoryMilitary               Category = "Military Specific"
	CategoryGeneral                Category = "General"
)

var allCategories = []Category{
	CategoryManagement,
	CategoryBusinessFinancial,
	CategoryComputerMath,
	CategoryArchitectureEngineer,
	CategoryScience,
	CategoryCommunityService,
	CategoryLegal,
	CategoryEducation,
	CategoryArtsMedia,
	CategoryHealthcarePractitioner,
	CategoryHealthcareSupport,
	CategoryProtectiveService,
	CategoryFoodService,
	CategoryBuildingGrounds,
	CategoryPersonalCare,
	CategorySales,
	CategoryOfficeAdmin,
	CategoryFarming,
	CategoryConstruction,
	CategoryInstallationRepair,
	CategoryProduction,
	CategoryTransportation,
	CategoryMilitary,
	CategoryGeneral,
}

var prefixCategories = mustPrefixTable(map[string]Category{
	"11": CategoryManagement,
	"13": CategoryBusinessFinancial,
	"15": CategoryComputerMath,
	"17": CategoryArchitectureEngineer,
	"19": CategoryScience,
	"21": CategoryCommunityService,
	"23": CategoryLegal,
	"25": CategoryEducation,
	"27": CategoryArtsMedia,
	"29": CategoryHealthcarePractitioner,
	"31": CategoryHealthcareSupport,
	"33": CategoryProtectiveService,
	"35": CategoryFoodService,
	"37": CategoryBuildingGrounds,
	"39": CategoryPersonalCare,
	"41": CategorySales,
	"43": CategoryOfficeAdmin,
	"45": CategoryFarming,
	"47": CategoryConstruction,
	"49": CategoryInstallationRepair,
	"51": CategoryProduction,
	"53": CategoryTransportation,
	"55": CategoryMilitary,
})

var (
	socCodePattern   = regexp.MustCompile(`^\d{2}-\d{4}$`)
	socDigitsPattern = regexp.MustCompile(`^\d{6}$`)
	prefixPattern    = regexp.MustCompile(`^\d{2}$`)
)

// Categories returns every known category, General last.
func Categories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// Valid reports whether c is one of the closed set of categories.
func (c Category) Valid() bool {
	for _, known := range allCategories {
		if c == known {
			return true
		}
	}
	return false
}

// CategoryForCode maps a SOC code to its category via the two-digit prefix.
func CategoryForCode(code string) Category {
	if len(code) < 2 {
		return CategoryGeneral
	}
	if cat, ok := prefixCategories[code[:2]]; ok {
		return cat
	}
	return CategoryGeneral
}

// ParseCategory converts a stored category label back to a Category.
func ParseCategory(raw string) Category {
	c := Category(strings.TrimSpace(raw))
	if c.Valid() {
		return c
	}
	return CategoryGeneral
}

// ValidCode reports whether code has the NN-NNNN SOC shape.
func ValidCode(code string) bool {
	return socCodePattern.MatchString(code)
}

// NormalizeCode accepts "15-1252", "151252" or "15-1252.00" and returns "15-1252".
func NormalizeCode(raw string) (string, error) {
	code := strings.TrimSpace(raw)
	if i := strings.Index(code, "."); i > 0 {
		code = code[:i]
	}
	if socDigitsPattern.MatchString(code) {
		code = code[:2] + "-" + code[2:]
	}
	if !ValidCode(code) {
		return "", fmt.Errorf("invalid soc code %q", raw)
	}
	return code, nil
}

// DigitsOnly returns the six-digit form used inside BLS series IDs.
func DigitsOnly(code string) string {
	return strings.ReplaceAll(code, "-", "")
}

func mustPrefixTable(table map[string]Category) map[string]Category {
	for prefix, cat := range table {
		if !prefixPattern.MatchString(prefix) {
			panic(fmt.Sprintf("occupation: malformed category prefix %q", prefix))
		}
		if !cat.Valid() || cat == CategoryGeneral {
			panic(fmt.Sprintf("occupation: prefix %s maps to unknown category %q", prefix, cat))
		}
	}
	return table
}
