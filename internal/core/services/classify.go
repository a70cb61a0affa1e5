package services

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/docmind/internal/core/domain"
)

// subcategoryPattern labels a secondary category when its trigger fires.
type subcategoryPattern struct {
	label string
	re    *regexp.Regexp
}

// categoryGroup is one primary category's fixed pattern group.
// The classifier score is the count of distinct matching patterns.
type categoryGroup struct {
	category      domain.PrimaryCategory
	patterns      []*regexp.Regexp
	subcategories []subcategoryPattern
}

// categoryGroups is evaluated in declaration order; equal scores break
// to the earlier group. CategoryOther carries no patterns and wins only
// when nothing matches.
var categoryGroups = []categoryGroup{
	{
		category: domain.CategoryLegal,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\bwhereas\b`),
			regexp.MustCompile(`\bagreement\b`),
			regexp.MustCompile(`\bpart(?:y|ies)\b`),
			regexp.MustCompile(`\bterms and conditions\b`),
			regexp.MustCompile(`\bhereby\b`),
			regexp.MustCompile(`\bwitness\b`),
			regexp.MustCompile(`\bsignature\b`),
			regexp.MustCompile(`\bcontract\b`),
			regexp.MustCompile(`\b(?:last )?will and testament\b`),
			regexp.MustCompile(`\bpower of attorney\b`),
		},
		subcategories: []subcategoryPattern{
			{"will", regexp.MustCompile(`\b(?:last will|testament|bequeath|executor)\b`)},
			{"power-of-attorney", regexp.MustCompile(`\bpower of attorney\b|\battorney-in-fact\b`)},
			{"contract", regexp.MustCompile(`\bcontract\b|\bagreement\b|\bterms and conditions\b`)},
		},
	},
	{
		category: domain.CategoryFinancial,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\binvoice\b`),
			regexp.MustCompile(`\b(?:bank statement|account balance)\b`),
			regexp.MustCompile(`\bpayment\b`),
			regexp.MustCompile(`\b(?:tax(?:es)?|irs)\b`),
			regexp.MustCompile(`\binterest rate\b`),
			regexp.MustCompile(`\bdeposit\b`),
			regexp.MustCompile(`\bwithdrawal\b`),
			regexp.MustCompile(`\bloan\b`),
			regexp.MustCompile(`\b(?:portfolio|investment)\b`),
		},
		subcategories: []subcategoryPattern{
			{"invoice", regexp.MustCompile(`\binvoice\b`)},
			{"statement", regexp.MustCompile(`\b(?:bank statement|account balance)\b`)},
			{"tax-return", regexp.MustCompile(`\b(?:tax return|form 1040|irs)\b`)},
			{"loan", regexp.MustCompile(`\bloan\b|\bpromissory\b`)},
		},
	},
	{
		category: domain.CategoryMedical,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\bpatient\b`),
			regexp.MustCompile(`\bdiagnosis\b`),
			regexp.MustCompile(`\bprescription\b`),
			regexp.MustCompile(`\b(?:physician|doctor)\b`),
			regexp.MustCompile(`\btreatment\b`),
			regexp.MustCompile(`\bmedical record\b`),
			regexp.MustCompile(`\bdosage\b`),
			regexp.MustCompile(`\b(?:hospital|clinic)\b`),
		},
		subcategories: []subcategoryPattern{
			{"prescription", regexp.MustCompile(`\bprescription\b|\bdosage\b`)},
			{"lab-result", regexp.MustCompile(`\b(?:lab|test) results?\b`)},
			{"record", regexp.MustCompile(`\bmedical record\b`)},
		},
	},
	{
		category: domain.CategoryInsurance,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\bpolicy\b`),
			regexp.MustCompile(`\bpremium\b`),
			regexp.MustCompile(`\bcoverage\b`),
			regexp.MustCompile(`\bclaim\b`),
			regexp.MustCompile(`\binsured\b`),
			regexp.MustCompile(`\bbeneficiary\b`),
			regexp.MustCompile(`\bdeductible\b`),
			regexp.MustCompile(`\bunderwriter\b`),
		},
		subcategories: []subcategoryPattern{
			{"policy", regexp.MustCompile(`\bpolicy (?:number|holder)\b|\bpremium\b`)},
			{"claim", regexp.MustCompile(`\bclaim\b`)},
		},
	},
	{
		category: domain.CategoryProperty,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\bdeed\b`),
			regexp.MustCompile(`\blease\b`),
			regexp.MustCompile(`\bmortgage\b`),
			regexp.MustCompile(`\b(?:landlord|tenant)\b`),
			regexp.MustCompile(`\bproperty\b`),
			regexp.MustCompile(`\breal estate\b`),
			regexp.MustCompile(`\beasement\b`),
			regexp.MustCompile(`\bescrow\b`),
		},
		subcategories: []subcategoryPattern{
			{"deed", regexp.MustCompile(`\bdeed\b`)},
			{"lease", regexp.MustCompile(`\blease\b|\btenant\b`)},
			{"mortgage", regexp.MustCompile(`\bmortgage\b`)},
		},
	},
	{
		category: domain.CategoryGovernment,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\bpassport\b`),
			regexp.MustCompile(`\blicen[cs]e\b`),
			regexp.MustCompile(`\bpermit\b`),
			regexp.MustCompile(`\bgovernment\b`),
			regexp.MustCompile(`\bcertificate\b`),
			regexp.MustCompile(`\bregistration\b`),
			regexp.MustCompile(`\bvisa\b`),
			regexp.MustCompile(`\bdepartment of\b`),
		},
		subcategories: []subcategoryPattern{
			{"license", regexp.MustCompile(`\blicen[cs]e\b`)},
			{"permit", regexp.MustCompile(`\bpermit\b`)},
			{"certificate", regexp.MustCompile(`\bcertificate\b`)},
		},
	},
	{
		category: domain.CategoryPersonal,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\bdear\b`),
			regexp.MustCompile(`\bsincerely\b`),
			regexp.MustCompile(`\bbirthday\b`),
			regexp.MustCompile(`\bfamily\b`),
			regexp.MustCompile(`\bletter\b`),
			regexp.MustCompile(`\b(?:diary|journal)\b`),
			regexp.MustCompile(`\b(?:best|warm) regards\b`),
		},
		subcategories: []subcategoryPattern{
			{"letter", regexp.MustCompile(`\bdear\b|\bsincerely\b`)},
			{"note", regexp.MustCompile(`\b(?:diary|journal)\b`)},
		},
	},
	{
		category: domain.CategoryBusiness,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\bmeeting minutes\b`),
			regexp.MustCompile(`\bmemo(?:randum)?\b`),
			regexp.MustCompile(`\bbusiness plan\b`),
			regexp.MustCompile(`\bquarterly\b`),
			regexp.MustCompile(`\brevenue\b`),
			regexp.MustCompile(`\bstakeholder\b`),
			regexp.MustCompile(`\bproposal\b`),
		},
		subcategories: []subcategoryPattern{
			{"minutes", regexp.MustCompile(`\bmeeting minutes\b`)},
			{"plan", regexp.MustCompile(`\bbusiness plan\b`)},
			{"proposal", regexp.MustCompile(`\bproposal\b`)},
		},
	},
	{
		category: domain.CategoryEducation,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\btranscript\b`),
			regexp.MustCompile(`\bdiploma\b`),
			regexp.MustCompile(`\bdegree\b`),
			regexp.MustCompile(`\b(?:university|college)\b`),
			regexp.MustCompile(`\bcourse\b`),
			regexp.MustCompile(`\b(?:gpa|grade point)\b`),
			regexp.MustCompile(`\bsemester\b`),
			regexp.MustCompile(`\benrollment\b`),
		},
		subcategories: []subcategoryPattern{
			{"transcript", regexp.MustCompile(`\btranscript\b|\bgpa\b`)},
			{"diploma", regexp.MustCompile(`\bdiploma\b|\bdegree\b`)},
		},
	},
	{
		// No patterns: wins only via the explicit zero-score fallback.
		category: domain.CategoryOther,
	},
}

// classifyContent scores lower-cased content against every pattern group.
// The score per category is the count of distinct matching patterns; the
// maximum wins, ties break to the first declared group. A zero maximum
// falls through to CategoryOther with low confidence.
func classifyContent(content, filename string) (domain.Category, float64) {
	lower := strings.ToLower(content)
	if filename != "" {
		lower += " " + strings.ToLower(filename)
	}

	best := categoryGroups[len(categoryGroups)-1] // other
	bestScore := 0

	for _, group := range categoryGroups {
		score := 0
		for _, re := range group.patterns {
			if re.MatchString(lower) {
				score++
			}
		}
		// Strict > keeps the first-declared winner on ties.
		if score > bestScore {
			bestScore = score
			best = group
		}
	}

	if bestScore == 0 {
		return domain.Category{Primary: domain.CategoryOther}, 0.2
	}

	category := domain.Category{Primary: best.category}
	for _, sub := range best.subcategories {
		if sub.re.MatchString(lower) {
			category.Secondary = sub.label
			break
		}
	}

	confidence := 0.3 + float64(bestScore)/float64(len(best.patterns))
	if confidence > 0.95 {
		confidence = 0.95
	}

	return category, confidence
}
