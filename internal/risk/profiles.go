package risk

import (
	"fmt"

	"github.com/JakeFAU/occupation-risk/internal/occupation"
)

// Profile holds the scoring parameters for one occupation category.
type Profile struct {
	BaseRisk          float64
	YearlyIncrease    float64
	Variance          float64
	RiskFactors       []string
	ProtectiveFactors []string
}

// Override raises the floors of a category profile for a specific SOC code.
type Override struct {
	MinBaseRisk       float64
	MinYearlyIncrease float64
	TopRiskFactor     string
	TopProtective     string
}

const minFactors = 3

var profiles = mustProfiles(map[occupation.Category]Profile{
	occupation.CategoryManagement: {
		BaseRisk: 18, YearlyIncrease: 2.5, Variance: 6,
		RiskFactors:       []string{"Automated reporting and dashboards", "AI-assisted scheduling and planning", "Algorithmic performance tracking"},
		ProtectiveFactors: []string{"Strategic judgment under uncertainty", "Stakeholder negotiation", "Accountability for organizational outcomes"},
	},
	occupation.CategoryBusinessFinancial: {
		BaseRisk: 32, YearlyIncrease: 4, Variance: 8,
		RiskFactors:       []string{"Automated bookkeeping and reconciliation", "AI-driven financial analysis", "Rules-based compliance checks"},
		ProtectiveFactors: []string{"Client advisory relationships", "Regulatory interpretation", "Complex deal structuring"},
	},
	occupation.CategoryComputerMath: {
		BaseRisk: 28, YearlyIncrease: 4.5, Variance: 10,
		RiskFactors:       []string{"AI code generation", "Automated testing and debugging", "Low-code development platforms"},
		ProtectiveFactors: []string{"System architecture and design", "Ambiguous requirements translation", "Oversight of AI-generated output"},
	},
	occupation.CategoryArchitectureEngineer: {
		BaseRisk: 20, YearlyIncrease: 3, Variance: 6,
		RiskFactors:       []string{"Generative design tools", "Automated simulation and analysis", "AI-assisted drafting"},
		ProtectiveFactors: []string{"Professional licensure and liability", "On-site problem solving", "Cross-discipline coordination"},
	},
	occupation.CategoryScience: {
		BaseRisk: 18, YearlyIncrease: 3, Variance: 6,
		RiskFactors:       []string{"Automated data analysis", "AI literature synthesis", "Lab automation"},
		ProtectiveFactors: []string{"Novel hypothesis generation", "Experimental design", "Field research"},
	},
	occupation.CategoryCommunityService: {
		BaseRisk: 10, YearlyIncrease: 1.5, Variance: 4,
		RiskFactors:       []string{"Automated case documentation", "Chatbot-based intake", "Algorithmic eligibility screening"},
		ProtectiveFactors: []string{"Empathy and trust building", "Crisis intervention", "Community relationships"},
	},
	occupation.CategoryLegal: {
		BaseRisk: 30, YearlyIncrease: 4, Variance: 8,
		RiskFactors:       []string{"AI document review", "Automated contract drafting", "Legal research tools"},
		ProtectiveFactors: []string{"Courtroom advocacy", "Client counseling", "Ethical judgment"},
	},
	occupation.CategoryEducation: {
		BaseRisk: 14, YearlyIncrease: 2, Variance: 5,
		RiskFactors:       []string{"AI tutoring systems", "Automated grading", "Online course platforms"},
		ProtectiveFactors: []string{"Mentorship and motivation", "Classroom management", "Social-emotional development"},
	},
	occupation.CategoryArtsMedia: {
		BaseRisk: 30, YearlyIncrease: 4.5, Variance: 10,
		RiskFactors:       []string{"Generative image and video models", "AI writing assistants", "Automated editing tools"},
		ProtectiveFactors: []string{"Original creative vision", "Live performance", "Audience relationships"},
	},
	occupation.CategoryHealthcarePractitioner: {
		BaseRisk: 12, YearlyIncrease: 2, Variance: 5,
		RiskFactors:       []string{"AI diagnostic imaging", "Clinical decision support", "Automated documentation"},
		ProtectiveFactors: []string{"Hands-on patient care", "Clinical judgment and liability", "Patient trust and bedside manner"},
	},
	occupation.CategoryHealthcareSupport: {
		BaseRisk: 16, YearlyIncrease: 2, Variance: 6,
		RiskFactors:       []string{"Automated scheduling and records", "Speech recognition documentation", "Remote patient monitoring"},
		ProtectiveFactors: []string{"Physical patient assistance", "Personal care interactions", "Variable care environments"},
	},
	occupation.CategoryProtectiveService: {
		BaseRisk: 10, YearlyIncrease: 1.5, Variance: 4,
		RiskFactors:       []string{"Automated surveillance", "Predictive analytics", "Drone monitoring"},
		ProtectiveFactors: []string{"Physical intervention", "Split-second judgment", "Legal authority"},
	},
	occupation.CategoryFoodService: {
		BaseRisk: 26, YearlyIncrease: 3, Variance: 8,
		RiskFactors:       []string{"Self-service ordering kiosks", "Kitchen automation", "Delivery robotics"},
		ProtectiveFactors: []string{"Customer hospitality", "Culinary creativity", "Fast-paced physical multitasking"},
	},
	occupation.CategoryBuildingGrounds: {
		BaseRisk: 14, YearlyIncrease: 1.5, Variance: 5,
		RiskFactors:       []string{"Robotic cleaning equipment", "Smart building systems", "Autonomous mowers"},
		ProtectiveFactors: []string{"Unstructured physical environments", "Fine motor dexterity", "On-site judgment"},
	},
	occupation.CategoryPersonalCare: {
		BaseRisk: 10, YearlyIncrease: 1.5, Variance: 4,
		RiskFactors:       []string{"Online booking automation", "Virtual fitness coaching", "Automated retail recommendations"},
		ProtectiveFactors: []string{"Personal touch and rapport", "Physical service delivery", "Individual customization"},
	},
	occupation.CategorySales: {
		BaseRisk: 34, YearlyIncrease: 4, Variance: 8,
		RiskFactors:       []string{"E-commerce and self-checkout", "AI-driven lead scoring", "Chatbot product support"},
		ProtectiveFactors: []string{"Relationship selling", "Complex negotiation", "Product demonstration"},
	},
	occupation.CategoryOfficeAdmin: {
		BaseRisk: 45, YearlyIncrease: 5.5, Variance: 10,
		RiskFactors:       []string{"Document processing automation", "AI virtual assistants", "Robotic process automation"},
		ProtectiveFactors: []string{"Office coordination", "Interpersonal communication", "Handling exceptions"},
	},
	occupation.CategoryFarming: {
		BaseRisk: 22, YearlyIncrease: 2.5, Variance: 6,
		RiskFactors:       []string{"Agricultural robotics", "Precision farming sensors", "Autonomous harvesters"},
		ProtectiveFactors: []string{"Variable outdoor conditions", "Animal handling", "Seasonal adaptability"},
	},
	occupation.CategoryConstruction: {
		BaseRisk: 12, YearlyIncrease: 1.5, Variance: 5,
		RiskFactors:       []string{"Prefabrication and modular building", "Construction robotics", "3D printing of structures"},
		ProtectiveFactors: []string{"Unique site conditions", "Skilled manual trades", "Safety-critical judgment"},
	},
	occupation.CategoryInstallationRepair: {
		BaseRisk: 14, YearlyIncrease: 2, Variance: 5,
		RiskFactors:       []string{"Predictive maintenance systems", "Remote diagnostics", "Self-repairing equipment"},
		ProtectiveFactors: []string{"Hands-on troubleshooting", "Diverse equipment knowledge", "Field service adaptability"},
	},
	occupation.CategoryProduction: {
		BaseRisk: 38, YearlyIncrease: 4, Variance: 8,
		RiskFactors:       []string{"Industrial robotics", "Machine vision inspection", "Lights-out manufacturing"},
		ProtectiveFactors: []string{"Custom and small-batch work", "Equipment setup and maintenance", "Quality problem solving"},
	},
	occupation.CategoryTransportation: {
		BaseRisk: 30, YearlyIncrease: 4, Variance: 8,
		RiskFactors:       []string{"Autonomous vehicles", "Warehouse robotics", "Route optimization software"},
		ProtectiveFactors: []string{"Complex urban navigation", "Customer-facing delivery", "Regulatory barriers to autonomy"},
	},
	occupation.CategoryMilitary: {
		BaseRisk: 12, YearlyIncrease: 2, Variance: 5,
		RiskFactors:       []string{"Autonomous weapons systems", "AI-driven intelligence analysis", "Remote-operated platforms"},
		ProtectiveFactors: []string{"Command responsibility", "Rules of engagement judgment", "Unpredictable field conditions"},
	},
	occupation.CategoryGeneral: {
		BaseRisk: 25, YearlyIncrease: 3, Variance: 8,
		RiskFactors:       []string{"Task automation", "AI-assisted workflows", "Process digitization"},
		ProtectiveFactors: []string{"Human judgment", "Interpersonal skills", "Physical dexterity"},
	},
})

var overrides = mustOverrides(map[string]Override{
	"31-9094": {MinBaseRisk: 70, MinYearlyIncrease: 5, TopRiskFactor: "Speech-to-text transcription models", TopProtective: "Specialty terminology review"},
	"43-9021": {MinBaseRisk: 65, MinYearlyIncrease: 5, TopRiskFactor: "Optical character recognition and form extraction", TopProtective: "Exception handling for unreadable sources"},
	"43-9022": {MinBaseRisk: 60, MinYearlyIncrease: 5, TopRiskFactor: "Dictation and speech recognition", TopProtective: "Formatting judgment for bespoke documents"},
	"27-3092": {MinBaseRisk: 55, MinYearlyIncrease: 5, TopRiskFactor: "Real-time automatic captioning", TopProtective: "Certified legal record requirements"},
	"27-3091": {MinBaseRisk: 50, MinYearlyIncrease: 5, TopRiskFactor: "Neural machine translation", TopProtective: "Cultural nuance and live interpretation"},
	"41-9041": {MinBaseRisk: 65, MinYearlyIncrease: 5, TopRiskFactor: "Automated outbound calling agents", TopProtective: "Regulated consent requirements"},
	"43-4051": {MinBaseRisk: 50, MinYearlyIncrease: 5, TopRiskFactor: "Conversational AI support agents", TopProtective: "Escalated and emotional customer issues"},
	"43-3031": {MinBaseRisk: 55, MinYearlyIncrease: 5, TopRiskFactor: "Automated ledger reconciliation", TopProtective: "Small-business client relationships"},
	"13-2082": {MinBaseRisk: 50, MinYearlyIncrease: 5, TopRiskFactor: "Consumer tax software", TopProtective: "Complex return preparation"},
	"43-9081": {MinBaseRisk: 55, MinYearlyIncrease: 5, TopRiskFactor: "AI grammar and style checkers", TopProtective: "Domain-specific editorial standards"},
	"15-1251": {MinBaseRisk: 45, MinYearlyIncrease: 5, TopRiskFactor: "Code generation from specifications", TopProtective: "Legacy system knowledge"},
	"23-2011": {MinBaseRisk: 45, MinYearlyIncrease: 5, TopRiskFactor: "AI legal research and discovery", TopProtective: "Attorney-supervised case preparation"},
	"27-3042": {MinBaseRisk: 45, MinYearlyIncrease: 5, TopRiskFactor: "Generated documentation from source code", TopProtective: "Subject-matter interviews"},
})

// ProfileFor returns a copy of the profile of category, falling back to General.
func ProfileFor(category occupation.Category) Profile {
	p, ok := profiles[category]
	if !ok {
		p = profiles[occupation.CategoryGeneral]
	}
	return p.clone()
}

func (p Profile) clone() Profile {
	p.RiskFactors = append([]string(nil), p.RiskFactors...)
	p.ProtectiveFactors = append([]string(nil), p.ProtectiveFactors...)
	return p
}

// OverrideFor returns the code-specific override if one exists.
func OverrideFor(code string) (Override, bool) {
	o, ok := overrides[code]
	return o, ok
}

// effectiveProfile applies the override for code on top of the category profile.
func effectiveProfile(category occupation.Category, code string) Profile {
	p := ProfileFor(category)
	o, ok := overrides[code]
	if !ok {
		return p
	}
	p.BaseRisk = max(p.BaseRisk, o.MinBaseRisk)
	p.YearlyIncrease = max(p.YearlyIncrease, o.MinYearlyIncrease)
	if o.TopRiskFactor != "" {
		p.RiskFactors[0] = o.TopRiskFactor
	}
	if o.TopProtective != "" {
		p.ProtectiveFactors[0] = o.TopProtective
	}
	return p
}

func (p Profile) validate() error {
	switch {
	case p.BaseRisk < 0 || p.BaseRisk > 100:
		return fmt.Errorf("base risk %.1f out of range", p.BaseRisk)
	case p.YearlyIncrease < 0 || p.YearlyIncrease > 20:
		return fmt.Errorf("yearly increase %.1f out of range", p.YearlyIncrease)
	case p.Variance < 0 || p.Variance > 30:
		return fmt.Errorf("variance %.1f out of range", p.Variance)
	case len(p.RiskFactors) < minFactors:
		return fmt.Errorf("need %d risk factors, have %d", minFactors, len(p.RiskFactors))
	case len(p.ProtectiveFactors) < minFactors:
		return fmt.Errorf("need %d protective factors, have %d", minFactors, len(p.ProtectiveFactors))
	}
	return nil
}

func mustProfiles(table map[occupation.Category]Profile) map[occupation.Category]Profile {
	for _, cat := range occupation.Categories() {
		p, ok := table[cat]
		if !ok {
			panic(fmt.Sprintf("risk: no profile for category %q", cat))
		}
		if err := p.validate(); err != nil {
			panic(fmt.Sprintf("risk: profile %q: %v", cat, err))
		}
	}
	return table
}

func mustOverrides(table map[string]Override) map[string]Override {
	for code, o := range table {
		if !occupation.ValidCode(code) {
			panic(fmt.Sprintf("risk: malformed override code %q", code))
		}
		if o.MinBaseRisk < 0 || o.MinBaseRisk > 100 || o.MinYearlyIncrease < 0 || o.MinYearlyIncrease > 20 {
			panic(fmt.Sprintf("risk: override %s out of range", code))
		}
	}
	return table
}
