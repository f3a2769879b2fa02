package model

// Severity represents the risk level of a security finding.
// This allows categorizing findings by their potential impact on app security.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// human-readable output when needed.
type Severity int

const (
	// SeverityInfo indicates informational findings with no direct security impact.
	// Examples: signature-protected permissions, web deep-link candidates.
	// These surface context for human review but require no action by themselves.
	SeverityInfo Severity = iota

	// SeverityLow indicates minor issues with limited impact.
	// Examples: custom-scheme deep links, permissions missing from the taxonomy.
	// These warrant a look but are rarely exploitable on their own.
	SeverityLow

	// SeverityMedium indicates moderate issues that warrant attention.
	// Examples: dangerous permissions, exported components whose filters accept
	// arbitrary external data, providers that grant URI permissions.
	SeverityMedium

	// SeverityHigh indicates serious issues that need to be fixed.
	// Example: a component exported to every other app on the device with no
	// permission requirement protecting it.
	SeverityHigh
)

// String returns a human-readable representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityLow:
		return "LOW"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityHigh:
		return "HIGH"
	default:
		return "UNKNOWN"
	}
}

// Finding categories. Each finding belongs to exactly one category; the
// category groups findings in reports regardless of severity.
const (
	// CategoryExportedComponent groups findings about components reachable
	// from other applications.
	CategoryExportedComponent = "exported-component"

	// CategoryDangerousPermission groups findings about runtime-dangerous
	// permission usage.
	CategoryDangerousPermission = "dangerous-permission"

	// CategoryDeepLink groups findings about URI schemes the app claims.
	CategoryDeepLink = "deep-link"

	// CategoryInformational groups findings that only provide context,
	// including permissions the taxonomy cannot classify.
	CategoryInformational = "informational"
)

// FindingInfo contains metadata about a finding type including severity,
// category, impact description, and remediation recommendation.
type FindingInfo struct {
	Severity       Severity
	Category       string
	Impact         string
	Recommendation string
}

// findingInfoMapping maps finding types to their metadata.
// This centralized mapping ensures consistent risk assessment across the application.
//
// Design decision: We use a map rather than embedding severity in each finding
// site because:
// 1. It allows updating risk assessments without touching analyzer logic
// 2. It provides a single source of truth for risk levels
// 3. It makes it easy to generate severity documentation
var findingInfoMapping = map[string]FindingInfo{
	// HIGH - directly reachable attack surface
	"exported_no_permission": {
		Severity:       SeverityHigh,
		Category:       CategoryExportedComponent,
		Impact:         "The component is reachable by any app on the device with no permission requirement, allowing arbitrary third-party interaction.",
		Recommendation: "Set android:exported=\"false\" or guard the component with an android:permission attribute.",
	},

	// MEDIUM - guarded but still risky surface
	"exported_open_filter": {
		Severity:       SeverityMedium,
		Category:       CategoryExportedComponent,
		Impact:         "The component requires a permission but its intent filter accepts VIEW/SEND intents with no data scheme restriction, so it may process arbitrary external data.",
		Recommendation: "Restrict the intent filter with explicit data schemes and validate all incoming intent data.",
	},
	"provider_grants_uri_permissions": {
		Severity:       SeverityMedium,
		Category:       CategoryExportedComponent,
		Impact:         "The exported content provider grants URI permissions, which can leak protected data to apps that receive a granted URI.",
		Recommendation: "Remove android:grantUriPermissions=\"true\" or limit grants with <grant-uri-permission> path elements.",
	},
	"dangerous_permission": {
		Severity:       SeverityMedium,
		Category:       CategoryDangerousPermission,
		Impact:         "The app requests a runtime-dangerous permission that exposes sensitive user data or device capabilities.",
		Recommendation: "Verify the permission is required, request it at time of use, and degrade gracefully when denied.",
	},

	// LOW - needs human review
	"unclassified_permission": {
		Severity:       SeverityLow,
		Category:       CategoryInformational,
		Impact:         "The permission is not in the built-in taxonomy, so its risk is unknown. It may be a custom or vendor permission.",
		Recommendation: "Review the permission definition and classify it in a rule file if it is used routinely.",
	},
	"custom_scheme_deep_link": {
		Severity:       SeverityLow,
		Category:       CategoryDeepLink,
		Impact:         "The app claims a custom URI scheme. Any app or web page can craft links for it, and custom schemes have no ownership verification.",
		Recommendation: "Validate all deep-link parameters and consider verified App Links for sensitive entry points.",
	},

	// INFO - context only
	"normal_permission": {
		Severity:       SeverityInfo,
		Category:       CategoryInformational,
		Impact:         "The permission is install-time normal and granted automatically; it carries minimal risk.",
		Recommendation: "No action needed; listed for completeness.",
	},
	"signature_permission": {
		Severity:       SeverityInfo,
		Category:       CategoryInformational,
		Impact:         "The permission is signature-protected and only grantable to apps signed with the same certificate.",
		Recommendation: "No action needed; listed for completeness.",
	},
	"web_deep_link": {
		Severity:       SeverityInfo,
		Category:       CategoryDeepLink,
		Impact:         "The app claims an http/https host association (App Links candidate). Without verification the link may also open in other handlers.",
		Recommendation: "Publish an assetlinks.json for the host and set android:autoVerify=\"true\".",
	},
}

// GetFindingInfo returns the full finding information for a finding type.
// Returns a default FindingInfo with SeverityInfo if the type is not in the mapping.
func GetFindingInfo(findingType string) FindingInfo {
	if info, ok := findingInfoMapping[findingType]; ok {
		return info
	}
	return FindingInfo{
		Severity:       SeverityInfo,
		Category:       CategoryInformational,
		Impact:         "Unknown finding type. Review manually.",
		Recommendation: "Investigate the finding and assess risk.",
	}
}

// GetSeverity returns the severity level for a finding type.
// Returns SeverityInfo if the finding type is not in the mapping.
func GetSeverity(findingType string) Severity {
	return GetFindingInfo(findingType).Severity
}
