package reconcile

import (
	"career-portal-backend/internal/domain"
)

// identityFields are the scalar fields merged between the basic account
// record and the detailed profile record, with the key each is stored under
// on the account.
var identityFields = []struct {
	field      string
	accountKey string
}{
	{"fullName", "displayName"},
	{"jobTitle", "jobTitle"},
	{"email", "email"},
	{"phone", "phone"},
	{"location", "location"},
	{"summary", "summary"},
}

// MergeProfile combines the basic account record with the detailed profile
// record for display. Either may be nil. It never fails: with neither
// record the all-default profile is returned.
func MergeProfile(basic, detailed domain.Document) domain.ResolvedProfile {
	return mergeProfile(basic, detailed, domain.DisplayPolicy)
}

// MergeProfileForEdit is MergeProfile with edit-context list defaults.
func MergeProfileForEdit(basic, detailed domain.Document) domain.ResolvedProfile {
	return mergeProfile(basic, detailed, domain.EditPolicy)
}

// MergeProfileWith merges under an explicit list policy.
func MergeProfileWith(basic, detailed domain.Document, policy domain.ListPolicy) domain.ResolvedProfile {
	return mergeProfile(basic, detailed, policy)
}

func mergeProfile(basic, detailed domain.Document, policy domain.ListPolicy) domain.ResolvedProfile {
	values := make(map[string]string, len(identityFields))
	for _, f := range identityFields {
		values[f.field] = ResolveString(basic, f.accountKey, legacyKeys(KindAccount, f.accountKey)...)
		// Detailed wins whenever it holds a non-empty value, at the top
		// level or inside personalInfo.
		if v := ResolveString(detailed, f.field, legacyKeys(KindProfile, f.field)...); v != "" {
			values[f.field] = v
		}
	}

	out := domain.ResolvedProfile{
		FullName:        values["fullName"],
		JobTitle:        values["jobTitle"],
		Email:           values["email"],
		Phone:           values["phone"],
		Location:        values["location"],
		Summary:         values["summary"],
		ProfileComplete: ResolveBool(basic, "profileComplete") || ResolveBool(detailed, "metadata.profileComplete", "profileComplete"),
		HasDetails:      detailed != nil,
	}

	// Lists and preferences come from the detailed record or not at all.
	if detailed == nil {
		out.Education = emptyList(domain.EducationEntry{}, policy)
		out.Experience = emptyList(domain.ExperienceEntry{}, policy)
		out.Certifications = emptyList(domain.CertificationEntry{}, policy)
		out.Skills = emptyList("", policy)
		return out
	}

	out.Education = CoerceList(detailed["education"], NormalizeEducation, domain.EducationEntry{}, policy)
	out.Experience = CoerceList(detailed["experience"], NormalizeExperience, domain.ExperienceEntry{}, policy)
	out.Certifications = CoerceList(detailed["certifications"], NormalizeCertification, domain.CertificationEntry{}, policy)
	out.Skills = CoerceStrings(detailed["skills"], policy)
	out.JobPreferences = NormalizePreferences(Sub(detailed, "jobPreferences"))

	// The desired title supersedes the generic title.
	if out.JobPreferences.DesiredJobTitle != "" {
		out.JobTitle = out.JobPreferences.DesiredJobTitle
	}
	return out
}

// NormalizePreferences fills every job preference field, "" when absent.
func NormalizePreferences(doc domain.Document) domain.JobPreferences {
	f := fieldsOf(doc, KindPreferences)
	return domain.JobPreferences{
		DesiredJobTitle: f.str("desiredJobTitle"),
		JobType:         f.str("jobType"),
		WorkEnvironment: f.str("workEnvironment"),
		SalaryMin:       f.str("salaryMin"),
		SalaryMax:       f.str("salaryMax"),
		Availability:    f.str("availability"),
	}
}

// NormalizeAccount reads a BasicAccountRecord out of a stored account
// document. A nil document gives the zero record for uid.
func NormalizeAccount(uid string, doc domain.Document) domain.BasicAccountRecord {
	f := fieldsOf(doc, KindAccount)
	role := f.str("role")
	if role == "" {
		role = domain.RoleCandidate
	}
	return domain.BasicAccountRecord{
		UID:             uid,
		DisplayName:     f.str("displayName"),
		JobTitle:        f.str("jobTitle"),
		Email:           f.str("email"),
		Phone:           f.str("phone"),
		Location:        f.str("location"),
		Summary:         f.str("summary"),
		PhotoURL:        f.str("photoURL"),
		Role:            role,
		ProfileComplete: f.flag("profileComplete"),
		CreatedAt:       ResolveTime(doc, "createdAt"),
		LastUpdated:     ResolveTime(doc, "lastUpdated", legacyKeys(KindAccount, "lastUpdated")...),
	}
}
