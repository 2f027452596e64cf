package reconcile

// Kind identifies a record shape in the alias table.
type Kind string

const (
	KindAccount       Kind = "account"
	KindProfile       Kind = "profile"
	KindPreferences   Kind = "jobPreferences"
	KindEducation     Kind = "education"
	KindExperience    Kind = "experience"
	KindCertification Kind = "certification"
	KindResume        Kind = "resume"
	KindResumePerson  Kind = "resumePersonal"
	KindResumeEdu     Kind = "resumeEducation"
	KindResumeExp     Kind = "resumeExperience"
	KindResumeSkill   Kind = "resumeSkill"
	KindResumeProject Kind = "resumeProject"
)

// Aliases lists, per record kind and canonical field, the historical key
// names stored data may use instead. New aliases are added here and nowhere
// else.
var Aliases = map[Kind]map[string][]string{
	KindAccount: {
		"displayName": {"fullName", "name"},
		"jobTitle":    {"title"},
		"phone":       {"phoneNumber"},
		"summary":     {"bio"},
		"photoURL":    {"photoUrl", "avatar"},
		"lastUpdated": {"updatedAt"},
	},
	KindProfile: {
		"fullName": {"displayName", "name"},
		"phone":    {"phoneNumber"},
		"summary":  {"bio", "professionalSummary"},
	},
	KindPreferences: {
		"desiredJobTitle": {"desiredPosition", "desiredRole"},
		"jobType":         {"employmentType"},
		"workEnvironment": {"workMode", "remotePreference"},
		"salaryMin":       {"minSalary", "expectedSalaryMin"},
		"salaryMax":       {"maxSalary", "expectedSalaryMax"},
		"availability":    {"noticePeriod"},
	},
	KindEducation: {
		"institution": {"school", "university", "universityName"},
		"field":       {"fieldOfStudy", "major"},
		"endDate":     {"graduationDate"},
	},
	KindExperience: {
		"company":  {"companyName", "employer"},
		"position": {"title", "jobTitle", "role"},
		"current":  {"currentlyWorking", "isCurrent"},
	},
	KindCertification: {
		"name":         {"title", "certificationName"},
		"organization": {"issuer", "issuingOrganization"},
		"issueDate":    {"date", "issuedDate"},
		"expiryDate":   {"expirationDate", "expiresDate"},
		"credentialID": {"url", "credentialId", "credentialUrl"},
	},
	KindResume: {
		"summary":     {"professionalSummary", "summery"},
		"lastUpdated": {"updatedAt"},
	},
	KindResumePerson: {
		"address": {"location"},
		"phone":   {"phoneNumber"},
	},
	KindResumeEdu: {
		"universityName": {"institution", "school"},
		"major":          {"field", "fieldOfStudy"},
	},
	KindResumeExp: {
		"title":            {"position", "jobTitle"},
		"companyName":      {"company"},
		"workSummary":      {"description"},
		"currentlyWorking": {"current"},
	},
	KindResumeSkill: {
		"name":   {"skill"},
		"rating": {"level"},
	},
	KindResumeProject: {
		"projectName":    {"name", "title"},
		"techStack":      {"technologies", "stack"},
		"projectSummary": {"description", "summary"},
	},
}

func legacyKeys(kind Kind, field string) []string {
	return Aliases[kind][field]
}
